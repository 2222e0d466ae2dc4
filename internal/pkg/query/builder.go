package query

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// Builder constructs SQL SELECT statements for Cloud Spanner. Every method
// returns a new Builder, so a base query can be shared and specialised.
type Builder struct {
	table      string
	selectCols []string
	orderByCol string
	orderByDir Direction
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{
		table:      table,
		selectCols: []string{},
	}
}

// Select appends columns (or expressions) to the select list.
func (b *Builder) Select(columns ...string) *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = append(newBuilder.selectCols, columns...)
	return newBuilder
}

// OrderBy specifies the column and direction for sorting.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	newBuilder := b.clone()
	newBuilder.orderByCol = column
	newBuilder.orderByDir = direction
	return newBuilder
}

// Count returns a builder for COUNT(*) over the same table. Ordering is dropped.
func (b *Builder) Count() *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = []string{"COUNT(*)"}
	newBuilder.orderByCol = ""
	return newBuilder
}

// Build constructs the final spanner.Statement.
func (b *Builder) Build() spanner.Statement {
	var sql strings.Builder

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if b.orderByCol != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(b.orderByCol)
		if b.orderByDir == Desc {
			sql.WriteString(" DESC")
		} else {
			sql.WriteString(" ASC")
		}
	}

	return spanner.Statement{
		SQL:    sql.String(),
		Params: map[string]interface{}{},
	}
}

func (b *Builder) clone() *Builder {
	newBuilder := &Builder{
		table:      b.table,
		selectCols: make([]string, len(b.selectCols)),
		orderByCol: b.orderByCol,
		orderByDir: b.orderByDir,
	}
	copy(newBuilder.selectCols, b.selectCols)
	return newBuilder
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	stmt := b.Build()
	return fmt.Sprintf("SQL: %s\nParams: %v", stmt.SQL, stmt.Params)
}
