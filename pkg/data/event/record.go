package event

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Record is a program event emitted by a committed transaction
type Record struct {
	Id uint64

	EventId string

	// Base58 signature of the transaction that emitted the event
	Transaction string

	Program string
	Name    string
	Data    []byte

	CreatedAt time.Time
}

func (r *Record) Validate() error {
	if _, err := uuid.Parse(r.EventId); err != nil {
		return errors.New("event id must be a uuid")
	}

	if len(r.Transaction) == 0 {
		return errors.New("transaction is required")
	}

	if len(r.Program) == 0 {
		return errors.New("program is required")
	}

	if len(r.Name) == 0 {
		return errors.New("name is required")
	}

	return nil
}

func (r *Record) Clone() *Record {
	var data []byte
	if r.Data != nil {
		data = make([]byte, len(r.Data))
		copy(data, r.Data)
	}

	return &Record{
		Id: r.Id,

		EventId: r.EventId,

		Transaction: r.Transaction,

		Program: r.Program,
		Name:    r.Name,
		Data:    data,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	cloned := r.Clone()
	*dst = *cloned
}
