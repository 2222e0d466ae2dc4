package domain

import (
	"fmt"
	"time"

	"github.com/light-bringer/procat-orm/internal/pkg/crud"
)

// Field names for change tracking
const (
	FieldName     = "name"
	FieldPrice    = "price"
	FieldCategory = "category"
)

// Product is a catalog entry. Its identity and timestamps are assigned by the
// persistence engine; a zero id marks a product that was never saved.
//
// No validation happens here: the name constraints (required, at most 30
// characters) are enforced when the product is saved.
type Product struct {
	id         int64
	name       string
	price      int
	category   Category
	createDate time.Time
	updateDate time.Time

	// Change tracking for partial updates
	changes *crud.ChangeTracker
}

// Option sets one field of a new Product.
type Option func(*Product)

// WithName sets the product name.
func WithName(name string) Option {
	return func(p *Product) {
		p.name = name
		p.changes.MarkDirty(FieldName)
	}
}

// WithPrice sets the product price.
func WithPrice(price int) Option {
	return func(p *Product) {
		p.price = price
		p.changes.MarkDirty(FieldPrice)
	}
}

// WithCategory sets the product category.
func WithCategory(category Category) Option {
	return func(p *Product) {
		p.category = category
		p.changes.MarkDirty(FieldCategory)
	}
}

// NewProduct builds a transient product from any subset of options.
// Fields without an option keep their zero value.
func NewProduct(opts ...Option) *Product {
	p := &Product{
		changes: crud.NewChangeTracker(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReconstructProduct reconstitutes a stored product (for repositories).
func ReconstructProduct(
	id int64,
	name string,
	price int,
	category Category,
	createDate, updateDate time.Time,
) *Product {
	return &Product{
		id:         id,
		name:       name,
		price:      price,
		category:   category,
		createDate: createDate,
		updateDate: updateDate,
		changes:    crud.NewChangeTracker(), // Start with clean slate
	}
}

// Getters
func (p *Product) ID() int64                    { return p.id }
func (p *Product) Name() string                 { return p.name }
func (p *Product) Price() int                   { return p.price }
func (p *Product) Category() Category           { return p.category }
func (p *Product) CreateDate() time.Time        { return p.createDate }
func (p *Product) UpdateDate() time.Time        { return p.updateDate }
func (p *Product) Changes() *crud.ChangeTracker { return p.changes }

// IsNew reports whether the product has never been saved.
func (p *Product) IsNew() bool { return p.id == 0 }

// SetName changes the name. The change is durable only after the next save.
func (p *Product) SetName(name string) {
	p.name = name
	p.changes.MarkDirty(FieldName)
}

// SetPrice changes the price.
func (p *Product) SetPrice(price int) {
	p.price = price
	p.changes.MarkDirty(FieldPrice)
}

// SetCategory changes the category; the empty Category clears it.
func (p *Product) SetCategory(category Category) {
	p.category = category
	p.changes.MarkDirty(FieldCategory)
}

// Equal reports whether every field of p and other is equal. Timestamps are
// compared as instants. Pending changes are not part of equality.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.id == other.id &&
		p.name == other.name &&
		p.price == other.price &&
		p.category == other.category &&
		p.createDate.Equal(other.createDate) &&
		p.updateDate.Equal(other.updateDate)
}

func (p *Product) String() string {
	return fmt.Sprintf("Product(id=%d, name=%s, price=%d, category=%s, createDate=%s, updateDate=%s)",
		p.id, p.name, p.price, p.category, formatTime(p.createDate), formatTime(p.updateDate))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "null"
	}
	return t.Format(time.RFC3339Nano)
}
