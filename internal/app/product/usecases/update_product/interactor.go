package update_product

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/light-bringer/procat-orm/internal/app/product/contracts"
	"github.com/light-bringer/procat-orm/internal/app/product/domain"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// Request contains the product ID and the fields to change. Nil fields are
// left untouched; an empty Category clears it.
type Request struct {
	ProductID int64
	Name      *string
	Price     *int
	Category  *string
}

// Interactor handles the update product use case.
type Interactor struct {
	repo contracts.ProductRepository
}

// NewInteractor creates a new update product interactor.
func NewInteractor(repo contracts.ProductRepository) *Interactor {
	return &Interactor{repo: repo}
}

// Execute loads the product, applies the requested changes and saves it.
// Only the changed columns are written.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	product, ok, err := i.repo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, req.ProductID)
	}

	if req.Name != nil {
		product.SetName(*req.Name)
	}
	if req.Price != nil {
		product.SetPrice(*req.Price)
	}
	if req.Category != nil {
		category, err := domain.ParseCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		product.SetCategory(category)
	}

	saved, err := i.repo.Save(ctx, product)
	if errors.Is(err, crud.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, req.ProductID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int64("product_id", saved.ID()).
		Strs("fields", product.Changes().DirtyFields()).
		Msg("product updated")
	return saved, nil
}
