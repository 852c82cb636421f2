package query

import (
	"github.com/pkg/errors"
)

// Ordering is the direction records are returned in, by ascending or
// descending id.
type Ordering uint

const (
	Ascending Ordering = iota
	Descending
)

func (o Ordering) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	}
	return "unknown"
}

// ParseOrdering parses the "asc" or "desc" form of an ordering
func ParseOrdering(val string) (Ordering, error) {
	switch val {
	case "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return 0, errors.Errorf("unexpected ordering: %q", val)
}

// orderByClause is the ORDER BY clause over the id column, which doubles as
// the paging cursor.
func (o Ordering) orderByClause() string {
	if o == Descending {
		return " ORDER BY id DESC"
	}
	return " ORDER BY id ASC"
}

// cursorClause restricts results to those after the cursor in this ordering
func (o Ordering) cursorClause(param string) string {
	if o == Descending {
		return " AND id < $" + param
	}
	return " AND id > $" + param
}
