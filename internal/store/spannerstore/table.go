// Package spannerstore is the Cloud Spanner persistence engine.
//
// Writes are expressed as mutations collected in a committer.CommitPlan.
// Identities are allocated inside the inserting read-write transaction and
// both timestamp columns take the commit timestamp.
package spannerstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/procat-orm/internal/pkg/committer"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
	"github.com/light-bringer/procat-orm/internal/pkg/query"
)

// Model maps one table between row structs and Spanner mutations.
type Model[R any, ID comparable] interface {
	Table() string
	Columns() []string
	KeyColumn() string
	Key(id ID) spanner.Key
	NextID(ctx context.Context, txn *spanner.ReadWriteTransaction) (ID, error)
	InsertMut(id ID, row *R) *spanner.Mutation
	UpdateMut(id ID, row *R, columns []string) *spanner.Mutation
	DeleteMut(id ID) *spanner.Mutation
	Decode(row *spanner.Row) (*R, error)
}

// Row is implemented by the pointer type of a row struct.
type Row[R any] interface {
	*R
	CopyColumns(src *R, columns []string)
}

// Table is a crud.Engine over one Spanner table.
type Table[R any, ID comparable, P Row[R]] struct {
	client    *spanner.Client
	committer *committer.Committer
	model     Model[R, ID]
}

// NewTable creates a table engine.
func NewTable[R any, ID comparable, P Row[R]](client *spanner.Client, model Model[R, ID]) *Table[R, ID, P] {
	return &Table[R, ID, P]{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     model,
	}
}

// Insert implements crud.Engine.
func (t *Table[R, ID, P]) Insert(ctx context.Context, row *R) (ID, error) {
	var id ID

	if err := crud.CheckConstraints(P(row)); err != nil {
		return id, err
	}

	err := t.committer.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		next, err := t.model.NextID(ctx, txn)
		if err != nil {
			return err
		}
		id = next
		plan.Add(t.model.InsertMut(next, row))
		return nil
	})
	if err != nil {
		var zero ID
		return zero, translateError(t.model.Table(), err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("table", t.model.Table()).
		Interface("id", id).
		Msg("row inserted")
	return id, nil
}

// Update implements crud.Engine. The stored row is read in the same
// transaction so constraints are checked against the merged result.
func (t *Table[R, ID, P]) Update(ctx context.Context, id ID, row *R, columns []string) error {
	err := t.committer.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		stored, err := txn.ReadRow(ctx, t.model.Table(), t.model.Key(id), t.model.Columns())
		if spanner.ErrCode(err) == codes.NotFound {
			return crud.ErrNotFound
		}
		if err != nil {
			return err
		}

		merged, err := t.model.Decode(stored)
		if err != nil {
			return err
		}
		P(merged).CopyColumns(row, columns)
		if err := crud.CheckConstraints(P(merged)); err != nil {
			return err
		}

		plan.Add(t.model.UpdateMut(id, row, columns))
		return nil
	})
	if err != nil {
		return translateError(t.model.Table(), err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("table", t.model.Table()).
		Interface("id", id).
		Strs("columns", columns).
		Msg("row updated")
	return nil
}

// Get implements crud.Engine.
func (t *Table[R, ID, P]) Get(ctx context.Context, id ID) (*R, bool, error) {
	row, err := t.client.Single().ReadRow(ctx, t.model.Table(), t.model.Key(id), t.model.Columns())
	if spanner.ErrCode(err) == codes.NotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read row: %w", err)
	}

	data, err := t.model.Decode(row)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// List implements crud.Engine. Rows are ordered by key.
func (t *Table[R, ID, P]) List(ctx context.Context) ([]R, error) {
	stmt := query.From(t.model.Table()).
		Select(t.model.Columns()...).
		OrderBy(t.model.KeyColumn(), query.Asc).
		Build()

	iter := t.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var rows []R
	for {
		row, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate rows: %w", err)
		}

		data, err := t.model.Decode(row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *data)
	}
	return rows, nil
}

// Delete implements crud.Engine. Spanner ignores deletes of absent keys.
func (t *Table[R, ID, P]) Delete(ctx context.Context, id ID) error {
	plan := committer.NewPlan()
	plan.Add(t.model.DeleteMut(id))

	if err := t.committer.Apply(ctx, plan); err != nil {
		return translateError(t.model.Table(), err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("table", t.model.Table()).
		Interface("id", id).
		Msg("row deleted")
	return nil
}
