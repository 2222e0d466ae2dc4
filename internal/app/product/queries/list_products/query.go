package list_products

import (
	"context"

	"github.com/light-bringer/procat-orm/internal/app/product/contracts"
	"github.com/light-bringer/procat-orm/internal/app/product/domain"
)

// Query handles the list products query use case.
type Query struct {
	repo contracts.ProductRepository
}

// NewQuery creates a new list products query.
func NewQuery(repo contracts.ProductRepository) *Query {
	return &Query{repo: repo}
}

// Execute returns every stored product.
func (q *Query) Execute(ctx context.Context) ([]*domain.Product, error) {
	return q.repo.FindAll(ctx)
}
