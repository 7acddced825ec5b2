package pkg

import (
	"crypto/rand"
	"crypto/sha1" //nolint: gosec // RFC 6455 requires SHA-1 for the handshake
	"encoding/base64"
	"encoding/hex"
)

// Static GUID defined in RFC 6455 for WebSocket.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// GenerateAcceptKey - generates the Sec-WebSocket-Accept value for a
// handshake key.
func GenerateAcceptKey(key string) string {
	h := sha1.New() //nolint: gosec // see import comment

	h.Write([]byte(key + websocketGUID))

	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// GenerateGameID - generates a short unique game ID.
func GenerateGameID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-game-id"
	}

	return hex.EncodeToString(b)
}

// GenerateNewSessionID - generates a new unique sessionID for a connection.
func GenerateNewSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-session-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}
