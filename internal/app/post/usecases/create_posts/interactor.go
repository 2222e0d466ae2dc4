package create_posts

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/light-bringer/procat-orm/internal/app/post/contracts"
	"github.com/light-bringer/procat-orm/internal/app/post/domain"
)

// ErrInvalidCount is returned for a non-positive post count.
var ErrInvalidCount = errors.New("post count must be positive")

// Request describes a batch of generated posts. Post i (1-based) gets
// TitlePrefix+i, ContentPrefix+i and WriterPrefix+i.
type Request struct {
	Count         int
	TitlePrefix   string
	ContentPrefix string
	WriterPrefix  string
}

// DefaultRequest is the demo batch: 378 posts.
func DefaultRequest() *Request {
	return &Request{
		Count:         378,
		TitlePrefix:   "우리 소금이",
		ContentPrefix: "너무 사랑스러워",
		WriterPrefix:  "수만이가",
	}
}

// Interactor handles the bulk post creation use case.
type Interactor struct {
	tx contracts.Transactor
}

// NewInteractor creates a new create posts interactor.
func NewInteractor(tx contracts.Transactor) *Interactor {
	return &Interactor{tx: tx}
}

// Execute saves the whole batch in one unit of work and returns the saved
// posts. On failure no post of the batch is kept when the engine is
// transactional.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.Post, error) {
	if req.Count <= 0 {
		return nil, ErrInvalidCount
	}

	var saved []*domain.Post
	err := i.tx.WithinTransaction(ctx, func(repo contracts.PostRepository) error {
		saved = make([]*domain.Post, 0, req.Count)
		for n := 1; n <= req.Count; n++ {
			suffix := strconv.Itoa(n)
			post, err := repo.Save(ctx, domain.NewPost(
				domain.WithTitle(req.TitlePrefix+suffix),
				domain.WithContent(req.ContentPrefix+suffix),
				domain.WithWriter(req.WriterPrefix+suffix),
			))
			if err != nil {
				return fmt.Errorf("post %d: %w", n, err)
			}
			saved = append(saved, post)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("count", len(saved)).Msg("posts created")
	return saved, nil
}
