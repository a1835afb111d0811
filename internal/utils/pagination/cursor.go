package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Cursor is the opaque pagination state we encode/decode.
// ID + Unix (in millis) of the last row establish a stable position.
type Cursor struct {
	ID   string `json:"id"`
	Unix int64  `json:"unix,omitempty"`
}

// IsZero reports whether the cursor points at the first page.
func (c Cursor) IsZero() bool {
	return c.ID == "" && c.Unix == 0
}

// Encode converts a Cursor into a Base64 string.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Decode parses a Base64 string into a Cursor.
// Empty token → empty cursor (first page).
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token")
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token")
	}
	return c, nil
}

// Deref safely dereferences an optional token.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
