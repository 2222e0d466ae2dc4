package m_post

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// SpannerDDL creates tbl_post on Cloud Spanner.
const SpannerDDL = `CREATE TABLE tbl_post (
	post_id STRING(36) NOT NULL,
	title STRING(100) NOT NULL,
	content STRING(MAX),
	writer STRING(30) NOT NULL,
	create_date TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true),
	update_date TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true)
) PRIMARY KEY (post_id)`

// Model provides a facade for type-safe operations on the tbl_post table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

func (m *Model) Table() string { return TableName }

func (m *Model) Columns() []string { return Columns() }

func (m *Model) KeyColumn() string { return PostID }

func (m *Model) Key(id string) spanner.Key { return spanner.Key{id} }

// NextID needs no read: post identities are generated, not counted.
func (m *Model) NextID(_ context.Context, _ *spanner.ReadWriteTransaction) (string, error) {
	return NewID(), nil
}

func (m *Model) InsertMut(id string, data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{PostID, Title, Content, Writer, CreateDate, UpdateDate},
		[]interface{}{
			id,
			data.Title,
			data.Content,
			data.Writer,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

func (m *Model) UpdateMut(id string, data *Data, columns []string) *spanner.Mutation {
	cols := []string{PostID}
	vals := []interface{}{id}

	for _, col := range columns {
		switch col {
		case Title:
			vals = append(vals, data.Title)
		case Content:
			vals = append(vals, data.Content)
		case Writer:
			vals = append(vals, data.Writer)
		default:
			continue
		}
		cols = append(cols, col)
	}

	cols = append(cols, UpdateDate)
	vals = append(vals, spanner.CommitTimestamp)

	return spanner.Update(TableName, cols, vals)
}

func (m *Model) DeleteMut(id string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{id})
}

func (m *Model) Decode(row *spanner.Row) (*Data, error) {
	var data Data
	var content spanner.NullString
	if err := row.Columns(&data.ID, &data.Title, &content, &data.Writer, &data.CreateDate, &data.UpdateDate); err != nil {
		return nil, fmt.Errorf("failed to parse post: %w", err)
	}
	data.Content = content.StringVal
	return &data, nil
}
