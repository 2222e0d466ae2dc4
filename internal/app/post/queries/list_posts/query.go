package list_posts

import (
	"context"

	"github.com/light-bringer/procat-orm/internal/app/post/contracts"
	"github.com/light-bringer/procat-orm/internal/app/post/domain"
)

// Query handles the list posts query use case.
type Query struct {
	repo contracts.PostRepository
}

// NewQuery creates a new list posts query.
func NewQuery(repo contracts.PostRepository) *Query {
	return &Query{repo: repo}
}

// Execute returns every stored post.
func (q *Query) Execute(ctx context.Context) ([]*domain.Post, error) {
	return q.repo.FindAll(ctx)
}
