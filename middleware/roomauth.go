// middleware/roomauth.go
package middleware

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Room session tokens replace the old client-side "verified room" flag: a
// successful PIN check issues a signed token scoped to one room, and
// mutating room endpoints require it. Session lifetime is bounded; clients
// re-verify when it expires.

const roomSessionLifetime = 12 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueRoomToken creates a session token for a verified room.
func IssueRoomToken(roomID uint, roomCode string) (string, error) {
	claims := jwt.MapClaims{
		"room_id":   roomID,
		"room_code": roomCode,
		"exp":       time.Now().Add(roomSessionLifetime).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// RoomAuthMiddleware validates a Bearer room session token and exposes the
// verified room via Locals("roomId") / Locals("roomCode").
func RoomAuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authorization header format"})
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired room session"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	roomID, ok := claims["room_id"].(float64)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	c.Locals("roomId", uint(roomID))
	if code, ok := claims["room_code"].(string); ok {
		c.Locals("roomCode", code)
	}

	return c.Next()
}

// VerifiedRoomID returns the room ID carried by the validated session token.
func VerifiedRoomID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals("roomId").(uint)
	if !ok {
		return 0, errors.New("no verified room in context")
	}
	return id, nil
}
