package create_product

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/light-bringer/procat-orm/internal/app/product/contracts"
	"github.com/light-bringer/procat-orm/internal/app/product/domain"
)

// Request contains the data needed to create a product. Category may be
// empty; Price defaults to zero.
type Request struct {
	Name     string
	Price    int
	Category string
}

// Interactor handles the create product use case.
type Interactor struct {
	repo contracts.ProductRepository
}

// NewInteractor creates a new create product interactor.
func NewInteractor(repo contracts.ProductRepository) *Interactor {
	return &Interactor{repo: repo}
}

// Execute saves a new product and returns it with its identity and
// timestamps. Name constraints are checked by the repository on save.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	product := domain.NewProduct(
		domain.WithName(req.Name),
		domain.WithPrice(req.Price),
		domain.WithCategory(category),
	)

	saved, err := i.repo.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int64("product_id", saved.ID()).
		Str("name", saved.Name()).
		Msg("product created")
	return saved, nil
}

// DemoRequests returns the four demo products of the catalog: three fully
// described and one with a name and category only.
func DemoRequests() []*Request {
	return []*Request{
		{Name: "아이폰", Price: 1000000, Category: "ELECTRONIC"},
		{Name: "탕수육", Price: 20000, Category: "FOOD"},
		{Name: "구두", Price: 300000, Category: "FASHION"},
		{Name: "쓰레기", Category: "FOOD"},
	}
}
