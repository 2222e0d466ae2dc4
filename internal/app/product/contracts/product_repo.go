package contracts

import (
	"github.com/light-bringer/procat-orm/internal/app/product/domain"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// ProductRepository defines the interface for product persistence.
type ProductRepository = crud.Repository[*domain.Product, int64]
