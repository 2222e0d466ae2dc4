// Package memstore is an in-process persistence engine. It keeps rows in a
// map guarded by a mutex and applies the same rules the SQL engines do:
// engine-assigned identity, clock-stamped timestamps, constraint checks
// before every write.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/light-bringer/procat-orm/internal/pkg/clock"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// Row is implemented by the pointer type of a row struct.
type Row[R any, ID comparable] interface {
	*R
	TableName() string
	PrimaryKey() ID
	SetPrimaryKey(ID)
	Stamp(now time.Time, creating bool)
	CopyColumns(src *R, columns []string)
}

// Table stores rows of type R keyed by ID.
type Table[R any, ID comparable, P Row[R, ID]] struct {
	mu     sync.RWMutex
	rows   map[ID]R
	order  []ID
	clock  clock.Clock
	nextID func() ID
}

// NewTable creates an empty table. nextID is called once per insert, under
// the table lock, to allocate the identity of the new row.
func NewTable[R any, ID comparable, P Row[R, ID]](clk clock.Clock, nextID func() ID) *Table[R, ID, P] {
	return &Table[R, ID, P]{
		rows:   make(map[ID]R),
		clock:  clk,
		nextID: nextID,
	}
}

// Sequence returns an identity generator counting up from 1.
func Sequence() func() int64 {
	var last int64
	return func() int64 {
		last++
		return last
	}
}

func (t *Table[R, ID, P]) name() string {
	var zero R
	return P(&zero).TableName()
}

// Insert implements crud.Engine.
func (t *Table[R, ID, P]) Insert(ctx context.Context, row *R) (ID, error) {
	var zero ID

	stored := *row
	if err := crud.CheckConstraints(P(&stored)); err != nil {
		return zero, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID()
	if _, exists := t.rows[id]; exists {
		return zero, fmt.Errorf("duplicate key %v in %s", id, t.name())
	}
	P(&stored).SetPrimaryKey(id)
	P(&stored).Stamp(t.clock.Now(), true)

	t.rows[id] = stored
	t.order = append(t.order, id)

	zerolog.Ctx(ctx).Debug().
		Str("table", t.name()).
		Interface("id", id).
		Msg("row inserted")
	return id, nil
}

// Update implements crud.Engine. Only the listed columns are copied onto the
// stored row; create_date is never among the copyable columns.
func (t *Table[R, ID, P]) Update(ctx context.Context, id ID, row *R, columns []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.rows[id]
	if !ok {
		return crud.ErrNotFound
	}

	updated := current
	P(&updated).CopyColumns(row, columns)
	if err := crud.CheckConstraints(P(&updated)); err != nil {
		return err
	}
	P(&updated).Stamp(t.clock.Now(), false)

	t.rows[id] = updated

	zerolog.Ctx(ctx).Debug().
		Str("table", t.name()).
		Interface("id", id).
		Strs("columns", columns).
		Msg("row updated")
	return nil
}

// Get implements crud.Engine. The returned row is a copy.
func (t *Table[R, ID, P]) Get(_ context.Context, id ID) (*R, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, false, nil
	}
	return &row, true, nil
}

// List implements crud.Engine. Rows come back in insertion order.
func (t *Table[R, ID, P]) List(_ context.Context) ([]R, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]R, 0, len(t.order))
	for _, id := range t.order {
		rows = append(rows, t.rows[id])
	}
	return rows, nil
}

// Delete implements crud.Engine. Absent identities are ignored.
func (t *Table[R, ID, P]) Delete(ctx context.Context, id ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return nil
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(v ID) bool { return v == id })

	zerolog.Ctx(ctx).Debug().
		Str("table", t.name()).
		Interface("id", id).
		Msg("row deleted")
	return nil
}

// Len returns the number of stored rows.
func (t *Table[R, ID, P]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
