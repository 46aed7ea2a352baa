// Package sqlxrepos implements the page services' repositories on postgres.
package sqlxrepos

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/agendai/core"
)

// validID reports whether id can be compared to a uuid column.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// errDBClosed is returned once the connection pool is closed: the server cannot recover from it.
var errDBClosed = core.NewShutdownError("database connection is closed")

// wrapDBErr wraps err with msg, turning a closed pool into errDBClosed.
func wrapDBErr(err error, msg string) error {
	switch errors.Cause(err) {
	case sql.ErrConnDone:
		return errors.Wrap(errDBClosed, msg)
	default:
		return errors.Wrap(err, msg)
	}
}

// trapNoRowsErr maps psql "no rows" err to notFound
func trapNoRowsErr(err, notFound error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return wrapDBErr(err, msg)
}

// whereClause accumulates AND-ed conditions with `?` bindvars.
type whereClause struct {
	conds []string
	args  []interface{}
}

func (w *whereClause) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func orderBy(ordering []core.DBOrdering) string {
	if len(ordering) == 0 {
		return ""
	}
	parts := make([]string, len(ordering))
	for i, ord := range ordering {
		parts[i] = ord.String()
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}
