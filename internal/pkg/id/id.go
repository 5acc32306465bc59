package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// New generates a new UUID string. Used for users and message ids.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether id is a well-formed UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// NewConversationID generates a conversation id of the form
// conv-<unix millis>-<8 hex chars>. The millisecond prefix keeps ids
// roughly sortable by creation time; the random suffix keeps two
// first-appends in the same millisecond from colliding.
func NewConversationID() string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return fmt.Sprintf("conv-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}

// IsConversationID reports whether id matches the conv-<millis>-<hex> scheme.
func IsConversationID(id string) bool {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] != "conv" {
		return false
	}
	if _, err := strconv.ParseInt(parts[1], 10, 64); err != nil {
		return false
	}
	if len(parts[2]) != 8 {
		return false
	}
	_, err := hex.DecodeString(parts[2])
	return err == nil
}
