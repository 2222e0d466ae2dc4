package create_posts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-orm/internal/app/post/contracts"
	"github.com/light-bringer/procat-orm/internal/app/post/repo"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
	"github.com/light-bringer/procat-orm/internal/testutil"
)

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()
	postRepo := repo.NewMemoryPostRepo(testutil.NewSteppingClock())

	posts, err := NewInteractor(repo.NewDirectTransactor(postRepo)).Execute(ctx, &Request{
		Count:        3,
		TitlePrefix:  "title",
		WriterPrefix: "writer",
	})
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "title1", posts[0].Title())
	assert.Equal(t, "writer3", posts[2].Writer())
	assert.Equal(t, "2", posts[1].Content())
}

func TestInteractor_Execute_InvalidCount(t *testing.T) {
	postRepo := repo.NewMemoryPostRepo(testutil.NewSteppingClock())

	_, err := NewInteractor(repo.NewDirectTransactor(postRepo)).Execute(context.Background(), &Request{Count: 0})
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestInteractor_Execute_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	postRepo := repo.NewMemoryPostRepo(testutil.NewSteppingClock())

	// prefix plus the counter exceeds the 100 character title limit
	_, err := NewInteractor(repo.NewDirectTransactor(postRepo)).Execute(ctx, &Request{
		Count:        2,
		TitlePrefix:  strings.Repeat("x", 100),
		WriterPrefix: "w",
	})
	require.ErrorIs(t, err, crud.ErrConstraintViolation)
	assert.Contains(t, err.Error(), "post 1")
}

type failingTransactor struct{ err error }

func (f failingTransactor) WithinTransaction(context.Context, func(contracts.PostRepository) error) error {
	return f.err
}

func TestInteractor_Execute_TransactionError(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewInteractor(failingTransactor{err: boom}).Execute(context.Background(), DefaultRequest())
	assert.ErrorIs(t, err, boom)
}
