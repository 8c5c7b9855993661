package book

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// CursorData is the keyset position encoded in a list cursor.
type CursorData struct {
	AfterID   string    `json:"after_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// IsZero reports whether the cursor points at the start of the list.
func (c CursorData) IsZero() bool {
	return c.AfterID == ""
}

// EncodeCursor encodes cursor data to a base64 string
func EncodeCursor(data CursorData) string {
	if data.AfterID == "" {
		return ""
	}
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(jsonBytes)
}

// DecodeCursor decodes a base64 cursor string to CursorData
func DecodeCursor(cursor string) (CursorData, error) {
	if cursor == "" {
		return CursorData{}, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return CursorData{}, fmt.Errorf("decode cursor: %w", err)
	}

	var data CursorData
	if err := json.Unmarshal(decoded, &data); err != nil {
		return CursorData{}, fmt.Errorf("decode cursor: %w", err)
	}
	if data.AfterID != "" && data.CreatedAt.IsZero() {
		return CursorData{}, fmt.Errorf("decode cursor: missing created_at")
	}
	return data, nil
}

func cursorFor(b Book) string {
	return EncodeCursor(CursorData{AfterID: b.ID, CreatedAt: b.CreatedAt})
}
