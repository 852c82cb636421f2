package query

import (
	"errors"
	"time"
)

var (
	ErrQueryNotSupported = errors.New("the requested query option is not supported")
)

type SupportedOptions byte

const (
	CanLimitResults     SupportedOptions = 0x01
	CanSortBy           SupportedOptions = 0x01 << 1
	CanQueryByCursor    SupportedOptions = 0x01 << 2
	CanQueryByStartTime SupportedOptions = 0x01 << 3
	CanQueryByEndTime   SupportedOptions = 0x01 << 4
)

type QueryOptions struct {
	Supported SupportedOptions

	Start time.Time
	End   time.Time

	SortBy Ordering
	Limit  uint64
	Cursor Cursor
}

type Option func(*QueryOptions) error

func (qo *QueryOptions) unsupported(cap SupportedOptions) bool {
	return qo.Supported&cap != cap
}

func (qo *QueryOptions) Apply(opts ...Option) error {
	for _, o := range opts {
		err := o(qo)
		if err != nil {
			return err
		}
	}
	return nil
}

// InWindow returns whether t falls within the optional [Start, End) window
func (qo *QueryOptions) InWindow(t time.Time) bool {
	if !qo.Start.IsZero() && t.Before(qo.Start) {
		return false
	}
	if !qo.End.IsZero() && !t.Before(qo.End) {
		return false
	}
	return true
}

func WithDirection(val Ordering) Option {
	return func(qo *QueryOptions) error {
		if qo.unsupported(CanSortBy) {
			return ErrQueryNotSupported
		}
		qo.SortBy = val
		return nil
	}
}

func WithLimit(val uint64) Option {
	return func(qo *QueryOptions) error {
		if qo.unsupported(CanLimitResults) {
			return ErrQueryNotSupported
		}
		qo.Limit = val
		return nil
	}
}

func WithCursor(val []byte) Option {
	return func(qo *QueryOptions) error {
		if qo.unsupported(CanQueryByCursor) {
			return ErrQueryNotSupported
		}
		qo.Cursor = val
		return nil
	}
}

func WithStartTime(val time.Time) Option {
	return func(qo *QueryOptions) error {
		if qo.unsupported(CanQueryByStartTime) {
			return ErrQueryNotSupported
		}
		qo.Start = val
		return nil
	}
}

func WithEndTime(val time.Time) Option {
	return func(qo *QueryOptions) error {
		if qo.unsupported(CanQueryByEndTime) {
			return ErrQueryNotSupported
		}
		qo.End = val
		return nil
	}
}
