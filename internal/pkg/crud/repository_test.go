package crud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	id    int64
	text  string
	dirty []string
}

type noteRow struct {
	ID   int64
	Text string
}

type noteMapper struct{}

func (noteMapper) Identity(n *note) int64        { return n.id }
func (noteMapper) ToRow(n *note) *noteRow        { return &noteRow{ID: n.id, Text: n.text} }
func (noteMapper) FromRow(r *noteRow) *note      { return &note{id: r.ID, text: r.Text} }
func (noteMapper) DirtyColumns(n *note) []string { return n.dirty }

// recordingEngine stores rows in a map and records every write.
type recordingEngine struct {
	rows    map[int64]noteRow
	next    int64
	inserts int
	updates [][]string
	err     error
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{rows: make(map[int64]noteRow)}
}

func (e *recordingEngine) Insert(_ context.Context, row *noteRow) (int64, error) {
	if e.err != nil {
		return 0, e.err
	}
	e.inserts++
	e.next++
	stored := *row
	stored.ID = e.next
	e.rows[e.next] = stored
	return e.next, nil
}

func (e *recordingEngine) Update(_ context.Context, id int64, row *noteRow, columns []string) error {
	if e.err != nil {
		return e.err
	}
	if _, ok := e.rows[id]; !ok {
		return ErrNotFound
	}
	e.updates = append(e.updates, columns)
	e.rows[id] = noteRow{ID: id, Text: row.Text}
	return nil
}

func (e *recordingEngine) Get(_ context.Context, id int64) (*noteRow, bool, error) {
	if e.err != nil {
		return nil, false, e.err
	}
	row, ok := e.rows[id]
	if !ok {
		return nil, false, nil
	}
	return &row, true, nil
}

func (e *recordingEngine) List(_ context.Context) ([]noteRow, error) {
	if e.err != nil {
		return nil, e.err
	}
	rows := make([]noteRow, 0, len(e.rows))
	for _, r := range e.rows {
		rows = append(rows, r)
	}
	return rows, nil
}

func (e *recordingEngine) Delete(_ context.Context, id int64) error {
	if e.err != nil {
		return e.err
	}
	delete(e.rows, id)
	return nil
}

func newNoteRepo() (*EntityRepository[*note, noteRow, int64], *recordingEngine) {
	engine := newRecordingEngine()
	return NewEntityRepository[*note, noteRow, int64](engine, noteMapper{}), engine
}

func TestEntityRepository_SaveInsertsTransient(t *testing.T) {
	ctx := context.Background()
	repo, engine := newNoteRepo()

	arg := &note{text: "hello"}
	saved, err := repo.Save(ctx, arg)
	require.NoError(t, err)

	assert.Equal(t, int64(1), saved.id)
	assert.Equal(t, "hello", saved.text)
	assert.Zero(t, arg.id, "argument must not be modified")
	assert.Equal(t, 1, engine.inserts)
}

func TestEntityRepository_SaveFlushesDirtyColumns(t *testing.T) {
	ctx := context.Background()
	repo, engine := newNoteRepo()

	saved, err := repo.Save(ctx, &note{text: "hello"})
	require.NoError(t, err)

	saved.text = "bye"
	saved.dirty = []string{"text"}
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)

	assert.Equal(t, "bye", updated.text)
	assert.Equal(t, [][]string{{"text"}}, engine.updates)
}

func TestEntityRepository_SaveWithoutChangesDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	repo, engine := newNoteRepo()

	saved, err := repo.Save(ctx, &note{text: "hello"})
	require.NoError(t, err)

	saved.text = "not tracked"
	again, err := repo.Save(ctx, saved)
	require.NoError(t, err)

	assert.Empty(t, engine.updates)
	assert.Equal(t, "hello", again.text, "the stored value is returned")
}

func TestEntityRepository_SaveMissingIdentity(t *testing.T) {
	repo, _ := newNoteRepo()

	_, err := repo.Save(context.Background(), &note{id: 7, text: "x", dirty: []string{"text"}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Save(context.Background(), &note{id: 7, text: "x"})
	assert.ErrorIs(t, err, ErrNotFound, "a clean entity that is gone cannot be reloaded")
}

func TestEntityRepository_FindAndDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newNoteRepo()

	saved, err := repo.Save(ctx, &note{text: "hello"})
	require.NoError(t, err)

	found, ok, err := repo.FindByID(ctx, saved.id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", found.text)

	require.NoError(t, repo.DeleteByID(ctx, saved.id))
	found, ok, err = repo.FindByID(ctx, saved.id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, found)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEntityRepository_EngineErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	repo, engine := newNoteRepo()
	engine.err = errors.New("connection reset")

	_, err := repo.Save(ctx, &note{text: "x"})
	assert.ErrorIs(t, err, engine.err)
	assert.Contains(t, err.Error(), "failed to insert")

	_, _, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, engine.err)

	_, err = repo.FindAll(ctx)
	assert.ErrorIs(t, err, engine.err)

	err = repo.DeleteByID(ctx, 1)
	assert.ErrorIs(t, err, engine.err)
}
