package delete_product

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/light-bringer/procat-orm/internal/app/product/contracts"
)

// Request contains the product ID to delete.
type Request struct {
	ProductID int64
}

// Interactor handles the delete product use case.
type Interactor struct {
	repo contracts.ProductRepository
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(repo contracts.ProductRepository) *Interactor {
	return &Interactor{repo: repo}
}

// Execute deletes the product. A product that does not exist is not an error.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if err := i.repo.DeleteByID(ctx, req.ProductID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int64("product_id", req.ProductID).Msg("product deleted")
	return nil
}
