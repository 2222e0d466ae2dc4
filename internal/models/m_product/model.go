package m_product

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/procat-orm/internal/models/m_sequence"
	"github.com/light-bringer/procat-orm/internal/pkg/query"
)

// SpannerDDL creates tbl_product on Cloud Spanner.
const SpannerDDL = `CREATE TABLE tbl_product (
	prod_id INT64 NOT NULL,
	prod_name STRING(30) NOT NULL,
	price INT64 NOT NULL,
	category STRING(20),
	create_date TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true),
	update_date TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true)
) PRIMARY KEY (prod_id)`

// spannerRow mirrors Data with Spanner column types.
type spannerRow struct {
	ProdID     int64              `spanner:"prod_id"`
	ProdName   string             `spanner:"prod_name"`
	Price      int64              `spanner:"price"`
	Category   spanner.NullString `spanner:"category"`
	CreateDate time.Time          `spanner:"create_date"`
	UpdateDate time.Time          `spanner:"update_date"`
}

// Model provides a facade for type-safe operations on the tbl_product table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

func (m *Model) Table() string { return TableName }

func (m *Model) Columns() []string { return Columns() }

func (m *Model) KeyColumn() string { return ProdID }

func (m *Model) Key(id int64) spanner.Key { return spanner.Key{id} }

// NextID allocates the next prod_id inside the inserting transaction. The
// counter in tbl_sequence only grows, so a deleted product's id is never
// handed out again. A database created before the counter existed continues
// after its largest stored prod_id.
func (m *Model) NextID(ctx context.Context, txn *spanner.ReadWriteTransaction) (int64, error) {
	return m_sequence.Next(ctx, txn, TableName, maxID)
}

func maxID(ctx context.Context, txn *spanner.ReadWriteTransaction) (int64, error) {
	stmt := query.From(TableName).
		Select(fmt.Sprintf("COALESCE(MAX(%s), 0)", ProdID)).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to read max %s: %w", ProdID, err)
	}

	var last int64
	if err := row.Columns(&last); err != nil {
		return 0, fmt.Errorf("failed to parse max %s: %w", ProdID, err)
	}
	return last, nil
}

// InsertMut creates a Spanner mutation for inserting a product. Both
// timestamps take the commit timestamp.
func (m *Model) InsertMut(id int64, data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			ProdID,
			ProdName,
			Price,
			Category,
			CreateDate,
			UpdateDate,
		},
		[]interface{}{
			id,
			data.Name,
			int64(data.Price),
			nullCategory(data.Category),
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation writing only the given columns.
// update_date always takes the commit timestamp; create_date is never written.
func (m *Model) UpdateMut(id int64, data *Data, columns []string) *spanner.Mutation {
	cols := make([]string, 0, len(columns)+2)
	vals := make([]interface{}, 0, len(columns)+2)

	cols = append(cols, ProdID)
	vals = append(vals, id)

	for _, col := range columns {
		switch col {
		case ProdName:
			vals = append(vals, data.Name)
		case Price:
			vals = append(vals, int64(data.Price))
		case Category:
			vals = append(vals, nullCategory(data.Category))
		default:
			continue
		}
		cols = append(cols, col)
	}

	cols = append(cols, UpdateDate)
	vals = append(vals, spanner.CommitTimestamp)

	return spanner.Update(TableName, cols, vals)
}

// DeleteMut creates a Spanner mutation for deleting a product.
func (m *Model) DeleteMut(id int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{id})
}

// Decode converts a Spanner row read with Columns() into Data.
func (m *Model) Decode(row *spanner.Row) (*Data, error) {
	var r spannerRow
	if err := row.ToStruct(&r); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	data := &Data{
		ID:         r.ProdID,
		Name:       r.ProdName,
		Price:      int(r.Price),
		CreateDate: r.CreateDate,
		UpdateDate: r.UpdateDate,
	}
	if r.Category.Valid {
		category := r.Category.StringVal
		data.Category = &category
	}
	return data, nil
}

func nullCategory(category *string) spanner.NullString {
	if category == nil {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *category, Valid: true}
}
