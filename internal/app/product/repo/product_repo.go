package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/procat-orm/internal/app/product/contracts"
	"github.com/light-bringer/procat-orm/internal/app/product/domain"
	"github.com/light-bringer/procat-orm/internal/models/m_product"
	"github.com/light-bringer/procat-orm/internal/pkg/clock"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
	"github.com/light-bringer/procat-orm/internal/store/gormstore"
	"github.com/light-bringer/procat-orm/internal/store/memstore"
	"github.com/light-bringer/procat-orm/internal/store/spannerstore"
)

// columnByField maps tracked domain fields to tbl_product columns.
var columnByField = map[string]string{
	domain.FieldName:     m_product.ProdName,
	domain.FieldPrice:    m_product.Price,
	domain.FieldCategory: m_product.Category,
}

// NewProductRepo creates a product repository over any engine.
func NewProductRepo(engine crud.Engine[m_product.Data, int64]) contracts.ProductRepository {
	return crud.NewEntityRepository[*domain.Product, m_product.Data, int64](engine, productMapper{})
}

// NewMemoryProductRepo creates a product repository backed by an in-process table.
func NewMemoryProductRepo(clk clock.Clock) contracts.ProductRepository {
	return NewProductRepo(memstore.NewTable[m_product.Data, int64, *m_product.Data](clk, memstore.Sequence()))
}

// NewGormProductRepo creates a product repository on a gorm store. Pass a
// transaction-bound store to take part in its unit of work.
func NewGormProductRepo(store *gormstore.Store) contracts.ProductRepository {
	return NewProductRepo(gormstore.NewTable[m_product.Data, int64, *m_product.Data](store))
}

// NewSpannerProductRepo creates a product repository on Cloud Spanner.
func NewSpannerProductRepo(client *spanner.Client) contracts.ProductRepository {
	return NewProductRepo(spannerstore.NewTable[m_product.Data, int64, *m_product.Data](client, m_product.NewModel()))
}

type productMapper struct{}

func (productMapper) Identity(p *domain.Product) int64 {
	return p.ID()
}

// ToRow converts a domain Product to database Data.
func (productMapper) ToRow(p *domain.Product) *m_product.Data {
	data := &m_product.Data{
		ID:         p.ID(),
		Name:       p.Name(),
		Price:      p.Price(),
		CreateDate: p.CreateDate(),
		UpdateDate: p.UpdateDate(),
	}
	if !p.Category().IsZero() {
		category := p.Category().String()
		data.Category = &category
	}
	return data
}

// FromRow converts database Data to a domain Product.
func (productMapper) FromRow(data *m_product.Data) *domain.Product {
	var category domain.Category
	if data.Category != nil {
		category = domain.Category(*data.Category)
	}
	return domain.ReconstructProduct(
		data.ID,
		data.Name,
		data.Price,
		category,
		data.CreateDate,
		data.UpdateDate,
	)
}

// DirtyColumns lists the columns of the fields changed since the product was loaded.
func (productMapper) DirtyColumns(p *domain.Product) []string {
	fields := p.Changes().DirtyFields()
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		if col, ok := columnByField[field]; ok {
			columns = append(columns, col)
		}
	}
	return columns
}
