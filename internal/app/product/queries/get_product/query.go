package get_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/procat-orm/internal/app/product/contracts"
	"github.com/light-bringer/procat-orm/internal/app/product/domain"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID int64
}

// Query handles the get product query use case.
type Query struct {
	repo contracts.ProductRepository
}

// NewQuery creates a new get product query.
func NewQuery(repo contracts.ProductRepository) *Query {
	return &Query{repo: repo}
}

// Execute retrieves a product by ID.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	product, ok, err := q.repo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, req.ProductID)
	}
	return product, nil
}
