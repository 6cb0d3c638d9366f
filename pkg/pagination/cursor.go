// Package pagination provides cursor-based pagination utilities for the
// contributor dashboard endpoints. Cursors encode a stable position using a
// monotonic sequence number + ID for keyset pagination over the backing
// entity store's natural insertion order.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the default number of opportunities per page.
	DefaultPageSize = 20
	// MaxPageSize is the maximum allowed page size.
	MaxPageSize = 100
)

// Cursor represents a stable pagination position. The sequence number is the
// primary sort key; the ID breaks ties so the (seq, id) pair is a total order.
// Cursors are forward-only: callers can round-trip them but never construct
// arbitrary positions.
type Cursor struct {
	Seq int64
	ID  string
}

// Encode serializes the cursor to an opaque string for clients.
// Format: base64("sk:{seq}:id:{id}")
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("sk:%d:id:%s", c.Seq, c.ID)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses an encoded cursor string. An empty string decodes to
// nil, meaning "start from the beginning". Returns an error if the cursor
// format is invalid.
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	raw := string(data)
	if !strings.HasPrefix(raw, "sk:") {
		return nil, fmt.Errorf("invalid cursor format: missing sk prefix")
	}

	parts := strings.SplitN(raw[len("sk:"):], ":id:", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format: missing id segment")
	}

	seq, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor key: %w", err)
	}

	return &Cursor{Seq: seq, ID: parts[1]}, nil
}

// EncodeCursor is a convenience function to create and encode a cursor.
func EncodeCursor(seq int64, id string) string {
	return Cursor{Seq: seq, ID: id}.Encode()
}

// ClampLimit ensures limit is within valid bounds. Zero is preserved: a
// zero-size page is a legal request that consumes nothing.
func ClampLimit(limit int) int {
	if limit < 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// KeysetBuilder helps construct keyset pagination SQL queries over the
// (sequence, id) total order, ascending.
type KeysetBuilder struct {
	// SeqColumn is the column name for the sequence number (e.g., "seq").
	SeqColumn string
	// IDColumn is the column name for the unique ID (e.g., "id").
	IDColumn string
}

// Condition returns a SQL WHERE clause fragment resuming after the cursor.
// Returns empty string and nil args if no cursor is provided. The placeholder
// style uses $N for PostgreSQL.
func (b *KeysetBuilder) Condition(cursor *Cursor, startArgIdx int) (string, []interface{}) {
	if cursor == nil {
		return "", nil
	}
	return fmt.Sprintf("(%s, %s) > ($%d, $%d)",
			b.SeqColumn, b.IDColumn, startArgIdx, startArgIdx+1),
		[]interface{}{cursor.Seq, cursor.ID}
}

// OrderBy returns the SQL ORDER BY clause matching Condition.
func (b *KeysetBuilder) OrderBy() string {
	return fmt.Sprintf("ORDER BY %s ASC, %s ASC", b.SeqColumn, b.IDColumn)
}
