package domain

import (
	"encoding/json"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

// Cursor marks the last record of a page: its sort value plus its id as tie breaker.
type Cursor struct {
	SortValue time.Time `json:"sort_value"`
	ID        string    `json:"id"`
}

type Pageable interface {
	Cursor() Cursor
}

// Same reports whether c and o point at the same record.
func (c Cursor) Same(o Cursor) bool {
	return c.ID == o.ID && c.SortValue.Equal(o.SortValue)
}

func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return goshortcute.StringtoBase64Encode(string(b))
}

func DecodeCursor(token string) (*Cursor, error) {
	raw := goshortcute.StringtoBase64Decode(token)
	if raw == "" {
		return nil, ErrInvalidCursor
	}

	var c Cursor
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, ErrInvalidCursor
	}
	if c.ID == "" {
		return nil, ErrInvalidCursor
	}

	return &c, nil
}
