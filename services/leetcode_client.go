// services/leetcode_client.go - LeetCode GraphQL submission source
package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultLeetCodeEndpoint = "https://leetcode.com/graphql"

	// The recent-submissions feed is bounded; LeetCode caps it anyway.
	recentSubmissionLimit = 20

	sourceTimeout = 10 * time.Second
)

var (
	// ErrSourceUnavailable covers transport failures, non-2xx responses and
	// GraphQL-level errors. Transient; the next sync acts as the retry.
	ErrSourceUnavailable = errors.New("submission source unavailable")

	// ErrSourceProtocol covers payloads that arrive but cannot be trusted:
	// malformed JSON, missing fields, unparseable timestamps.
	ErrSourceProtocol = errors.New("submission source protocol error")
)

// RecentSubmission is one accepted submission from the source feed,
// validated at the boundary.
type RecentSubmission struct {
	ID        string
	Title     string
	TitleSlug string
	Timestamp int64
}

// SubmissionSource fetches a user's recent accepted submissions,
// newest-first. Implemented by LeetCodeClient; mocked in tests.
type SubmissionSource interface {
	FetchRecent(username string) ([]RecentSubmission, error)
}

// LeetCodeClient queries the public LeetCode GraphQL API. No retries here;
// retry policy belongs to the scheduler cadence.
type LeetCodeClient struct {
	endpoint string
	http     *http.Client
}

// NewLeetCodeClient builds a client against the public endpoint, or against
// LEETCODE_API_URL when set (integration tests point it at a local server).
func NewLeetCodeClient() *LeetCodeClient {
	endpoint := os.Getenv("LEETCODE_API_URL")
	if endpoint == "" {
		endpoint = defaultLeetCodeEndpoint
	}
	return &LeetCodeClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: sourceTimeout},
	}
}

const recentAcSubmissionsQuery = `
query recentAcSubmissions($username: String!, $limit: Int!) {
  recentAcSubmissionList(username: $username, limit: $limit) {
    id
    title
    titleSlug
    timestamp
  }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type recentAcResponse struct {
	Data struct {
		RecentAcSubmissionList []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			TitleSlug string `json:"titleSlug"`
			Timestamp string `json:"timestamp"`
		} `json:"recentAcSubmissionList"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchRecent returns the user's most recent accepted submissions,
// newest-first, bounded to recentSubmissionLimit.
func (c *LeetCodeClient) FetchRecent(username string) ([]RecentSubmission, error) {
	body, err := json.Marshal(graphqlRequest{
		Query: recentAcSubmissionsQuery,
		Variables: map[string]interface{}{
			"username": username,
			"limit":    recentSubmissionLimit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceProtocol, err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", "https://leetcode.com")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("LeetCode API returned %d for user %s", resp.StatusCode, username)
		return nil, fmt.Errorf("%w: status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var parsed recentAcResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceProtocol, err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, parsed.Errors[0].Message)
	}

	subs := make([]RecentSubmission, 0, len(parsed.Data.RecentAcSubmissionList))
	for _, item := range parsed.Data.RecentAcSubmissionList {
		if item.ID == "" || item.TitleSlug == "" {
			return nil, fmt.Errorf("%w: submission missing id or slug", ErrSourceProtocol)
		}
		ts, err := strconv.ParseInt(item.Timestamp, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q", ErrSourceProtocol, item.Timestamp)
		}
		subs = append(subs, RecentSubmission{
			ID:        item.ID,
			Title:     item.Title,
			TitleSlug: item.TitleSlug,
			Timestamp: ts,
		})
	}

	return subs, nil
}
