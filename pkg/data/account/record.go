package account

import (
	"bytes"
	"errors"
	"time"
)

// Record is the persisted state of a single account
type Record struct {
	Id uint64

	Address string
	Owner   string

	Lamports uint64
	Data     []byte

	// Version is used for optimistic concurrency. Zero indicates an account
	// that has never been saved.
	Version uint64

	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.New("address is required")
	}

	if len(r.Owner) == 0 {
		return errors.New("owner is required")
	}

	return nil
}

// IsEmpty returns whether the account holds nothing, and is equivalent to an
// account that was never created.
func (r *Record) IsEmpty() bool {
	return r.Lamports == 0 && len(r.Data) == 0
}

func (r *Record) Equals(other *Record) bool {
	return r.Address == other.Address &&
		r.Owner == other.Owner &&
		r.Lamports == other.Lamports &&
		bytes.Equal(r.Data, other.Data)
}

func (r *Record) Clone() *Record {
	return &Record{
		Id: r.Id,

		Address: r.Address,
		Owner:   r.Owner,

		Lamports: r.Lamports,
		Data:     cloneBytes(r.Data),

		Version: r.Version,

		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Owner = r.Owner

	dst.Lamports = r.Lamports
	dst.Data = cloneBytes(r.Data)

	dst.Version = r.Version

	dst.LastUpdatedAt = r.LastUpdatedAt
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	cloned := make([]byte, len(b))
	copy(cloned, b)
	return cloned
}
