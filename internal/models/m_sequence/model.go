// Package m_sequence keeps identity counters for Spanner tables. Spanner has
// no auto-increment column, so each table allocating integer keys stores the
// highest key it ever handed out in one row of tbl_sequence.
package m_sequence

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// SpannerDDL creates tbl_sequence on Cloud Spanner.
const SpannerDDL = `CREATE TABLE tbl_sequence (
	seq_name STRING(64) NOT NULL,
	last_id INT64 NOT NULL
) PRIMARY KEY (seq_name)`

// Seed reports the value a sequence continues from when it has no row yet,
// e.g. the largest key already stored.
type Seed func(ctx context.Context, txn *spanner.ReadWriteTransaction) (int64, error)

// Next reserves the next value of the named sequence. The counter write is
// buffered into txn, so the value is consumed only if txn commits. Values
// freed by deletes are never handed out again.
func Next(ctx context.Context, txn *spanner.ReadWriteTransaction, name string, seed Seed) (int64, error) {
	var last int64

	row, err := txn.ReadRow(ctx, TableName, spanner.Key{name}, []string{LastID})
	switch {
	case spanner.ErrCode(err) == codes.NotFound:
		if seed != nil {
			if last, err = seed(ctx, txn); err != nil {
				return 0, err
			}
		}
	case err != nil:
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	default:
		if err := row.Columns(&last); err != nil {
			return 0, fmt.Errorf("failed to parse sequence %s: %w", name, err)
		}
	}

	next := last + 1
	if err := txn.BufferWrite([]*spanner.Mutation{UpsertMut(name, next)}); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return next, nil
}

// UpsertMut stores value as the last value of the named sequence.
func UpsertMut(name string, value int64) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, []string{SeqName, LastID}, []interface{}{name, value})
}
