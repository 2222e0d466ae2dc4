package contracts

import (
	"context"

	"github.com/light-bringer/procat-orm/internal/app/post/domain"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// PostRepository defines the interface for post persistence.
type PostRepository = crud.Repository[*domain.Post, string]

// Transactor runs fn with a repository whose writes commit or roll back
// together. Engines without transactions run fn on the plain repository.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repo PostRepository) error) error
}
