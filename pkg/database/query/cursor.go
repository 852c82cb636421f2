package query

import (
	"encoding/binary"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Cursor is an opaque paging position, encoded as a big endian record id
type Cursor []byte

var (
	EmptyCursor Cursor = Cursor([]byte{})
)

func ToCursor(val uint64) Cursor {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, val)
	return b
}

func (c Cursor) ToUint64() uint64 {
	if len(c) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(c)
}

func (c Cursor) ToBase58() string {
	return base58.Encode(c)
}

// CursorFromBase58 parses a cursor previously produced by ToBase58
func CursorFromBase58(val string) (Cursor, error) {
	decoded, err := base58.Decode(val)
	if err != nil {
		return nil, errors.Wrap(err, "invalid cursor encoding")
	}
	if len(decoded) != 8 {
		return nil, errors.Errorf("invalid cursor length: %d", len(decoded))
	}
	return decoded, nil
}
