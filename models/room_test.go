package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomWithoutPINAcceptsAnything(t *testing.T) {
	room := Room{Name: "Daily Grind", RoomCode: "ab12cd"}

	assert.False(t, room.HasPIN())
	assert.True(t, room.CheckPIN(""))
	assert.True(t, room.CheckPIN("1234"))
	assert.True(t, room.CheckPIN("anything at all"))
}

func TestRoomPINVerification(t *testing.T) {
	room := Room{Name: "Daily Grind", RoomCode: "ab12cd"}
	require.NoError(t, room.SetPIN("4821"))

	assert.True(t, room.HasPIN())
	assert.True(t, room.CheckPIN("4821"))
	assert.False(t, room.CheckPIN("0000"))
	assert.False(t, room.CheckPIN(""))
}

func TestRoomPINIsHashed(t *testing.T) {
	room := Room{}
	require.NoError(t, room.SetPIN("4821"))

	require.NotNil(t, room.PINHash)
	assert.NotContains(t, *room.PINHash, "4821")
}

func TestRoomClearPIN(t *testing.T) {
	room := Room{}
	require.NoError(t, room.SetPIN("4821"))
	require.NoError(t, room.SetPIN(""))

	assert.False(t, room.HasPIN())
	assert.True(t, room.CheckPIN("whatever"))
}
