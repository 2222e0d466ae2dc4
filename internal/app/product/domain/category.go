package domain

import (
	"fmt"
	"strings"
)

// Category is the closed set of product categories. It is persisted by name,
// so reordering the constants never changes stored data. The empty Category
// means the product has none.
type Category string

const (
	CategoryFood       Category = "FOOD"
	CategoryFashion    Category = "FASHION"
	CategoryElectronic Category = "ELECTRONIC"
)

// Categories lists every valid category.
func Categories() []Category {
	return []Category{CategoryFood, CategoryFashion, CategoryElectronic}
}

// ParseCategory resolves a category name, ignoring case and surrounding space.
// An empty name yields the empty Category.
func ParseCategory(name string) (Category, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", nil
	}
	c := Category(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryFashion, CategoryElectronic:
		return true
	}
	return false
}

// IsZero reports whether no category is set.
func (c Category) IsZero() bool { return c == "" }

func (c Category) String() string { return string(c) }
