package gormstore

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// Row is implemented by the pointer type of a gorm row struct.
type Row[R any, ID comparable] interface {
	*R
	TableName() string
	PrimaryKey() ID
	SetPrimaryKey(ID)
}

// Table is a crud.Engine over one gorm model.
type Table[R any, ID comparable, P Row[R, ID]] struct {
	store *Store
}

// NewTable binds a table to a store, or to a transaction-bound store.
func NewTable[R any, ID comparable, P Row[R, ID]](store *Store) *Table[R, ID, P] {
	return &Table[R, ID, P]{store: store}
}

func (t *Table[R, ID, P]) name() string {
	var zero R
	return P(&zero).TableName()
}

func (t *Table[R, ID, P]) db(ctx context.Context) *gorm.DB {
	return t.store.db.WithContext(ctx)
}

func byPrimaryKey(id any) clause.Expression {
	return clause.Eq{Column: clause.PrimaryColumn, Value: id}
}

// Insert implements crud.Engine. Identity and timestamps are filled by the
// database, the model hooks and gorm's autoCreateTime/autoUpdateTime.
func (t *Table[R, ID, P]) Insert(ctx context.Context, row *R) (ID, error) {
	var zero ID

	created := *row
	if err := t.db(ctx).Create(P(&created)).Error; err != nil {
		return zero, translateError(t.name(), err)
	}

	id := P(&created).PrimaryKey()
	zerolog.Ctx(ctx).Debug().
		Str("table", t.name()).
		Interface("id", id).
		Msg("row inserted")
	return id, nil
}

// Update implements crud.Engine. Only the listed columns are written; gorm
// adds update_date because of its autoUpdateTime tag.
func (t *Table[R, ID, P]) Update(ctx context.Context, id ID, row *R, columns []string) error {
	updated := *row
	P(&updated).SetPrimaryKey(id)

	res := t.db(ctx).Model(P(&updated)).Select(columns).Updates(P(&updated))
	if res.Error != nil {
		return translateError(t.name(), res.Error)
	}
	if res.RowsAffected == 0 {
		return crud.ErrNotFound
	}

	zerolog.Ctx(ctx).Debug().
		Str("table", t.name()).
		Interface("id", id).
		Strs("columns", columns).
		Msg("row updated")
	return nil
}

// Get implements crud.Engine.
func (t *Table[R, ID, P]) Get(ctx context.Context, id ID) (*R, bool, error) {
	var row R
	err := t.db(ctx).Where(byPrimaryKey(id)).Take(P(&row)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &row, true, nil
}

// List implements crud.Engine. Rows are ordered by primary key.
func (t *Table[R, ID, P]) List(ctx context.Context) ([]R, error) {
	var rows []R
	err := t.db(ctx).
		Order(clause.OrderByColumn{Column: clause.PrimaryColumn}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete implements crud.Engine. Deleting an absent identity affects no rows
// and is not an error.
func (t *Table[R, ID, P]) Delete(ctx context.Context, id ID) error {
	var zero R
	res := t.db(ctx).Where(byPrimaryKey(id)).Delete(P(&zero))
	if res.Error != nil {
		return res.Error
	}

	zerolog.Ctx(ctx).Debug().
		Str("table", t.name()).
		Interface("id", id).
		Int64("rows", res.RowsAffected).
		Msg("row deleted")
	return nil
}
