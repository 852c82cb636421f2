package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateQuery(t *testing.T) {
	base := "SELECT * FROM events WHERE (program = $1)"

	q, args := PaginateQuery(base, []interface{}{"vault"}, EmptyCursor, 0, Ascending)
	assert.Equal(t, base+" ORDER BY id ASC", q)
	assert.Len(t, args, 1)

	q, args = PaginateQuery(base, []interface{}{"vault"}, ToCursor(10), 5, Descending)
	assert.Equal(t, base+" AND id < $2 ORDER BY id DESC LIMIT $3", q)
	require.Len(t, args, 3)
	assert.EqualValues(t, 10, args[1])
	assert.EqualValues(t, 5, args[2])
}

func TestDefaultPaginationHandler(t *testing.T) {
	req, err := DefaultPaginationHandler()
	require.NoError(t, err)
	assert.EqualValues(t, defaultPagingLimit, req.Limit)
	assert.Equal(t, Ascending, req.SortBy)

	start := time.Now()
	req, err = DefaultPaginationHandler(
		WithLimit(10),
		WithDirection(Descending),
		WithCursor(ToCursor(3)),
		WithStartTime(start),
		WithEndTime(start.Add(time.Minute)),
	)
	require.NoError(t, err)
	assert.EqualValues(t, 10, req.Limit)
	assert.Equal(t, Descending, req.SortBy)
	assert.EqualValues(t, 3, req.Cursor.ToUint64())
	assert.True(t, req.InWindow(start))
	assert.False(t, req.InWindow(start.Add(-time.Second)))
	assert.False(t, req.InWindow(start.Add(time.Minute)))

	_, err = DefaultPaginationHandler(WithLimit(defaultPagingLimit + 1))
	assert.Equal(t, ErrQueryNotSupported, err)

	_, err = DefaultPaginationHandler(WithLimit(0))
	assert.Equal(t, ErrQueryNotSupported, err)
}

func TestUnsupportedOption(t *testing.T) {
	req := QueryOptions{Supported: CanLimitResults}
	assert.NoError(t, req.Apply(WithLimit(1)))
	assert.Equal(t, ErrQueryNotSupported, req.Apply(WithCursor(ToCursor(1))))
}

func TestCursor(t *testing.T) {
	c := ToCursor(1234)
	assert.EqualValues(t, 1234, c.ToUint64())

	parsed, err := CursorFromBase58(c.ToBase58())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = CursorFromBase58("abc")
	assert.Error(t, err)

	assert.EqualValues(t, 0, EmptyCursor.ToUint64())
}

func TestOrdering(t *testing.T) {
	for _, o := range []Ordering{Ascending, Descending} {
		parsed, err := ParseOrdering(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, parsed)
	}

	_, err := ParseOrdering("sideways")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Ordering(10).String())
}
