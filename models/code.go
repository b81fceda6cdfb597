package models

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

// RoomCodeLength is the number of characters in a room code
const RoomCodeLength = 6

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var roomCodePattern = regexp.MustCompile("^[A-Z0-9]{6}$")

// GenerateRoomCode returns a candidate room code: 6 characters drawn uniformly
// from uppercase letters and digits. Uniqueness among active rooms is the
// caller's responsibility.
func GenerateRoomCode() string {
	result := make([]byte, RoomCodeLength)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		result[i] = codeCharset[n.Int64()]
	}
	return string(result)
}

// ValidRoomCode reports whether code has the shape of a room code
func ValidRoomCode(code string) bool {
	return roomCodePattern.MatchString(code)
}
