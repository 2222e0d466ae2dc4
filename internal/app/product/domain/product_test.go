package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		p := NewProduct(
			WithName("아이폰"),
			WithPrice(1000000),
			WithCategory(CategoryElectronic),
		)

		assert.True(t, p.IsNew())
		assert.Zero(t, p.ID())
		assert.Equal(t, "아이폰", p.Name())
		assert.Equal(t, 1000000, p.Price())
		assert.Equal(t, CategoryElectronic, p.Category())
		assert.True(t, p.CreateDate().IsZero())
		assert.True(t, p.UpdateDate().IsZero())
		assert.Equal(t, []string{FieldCategory, FieldName, FieldPrice}, p.Changes().DirtyFields())
	})

	t.Run("subset of fields", func(t *testing.T) {
		p := NewProduct(WithName("쓰레기"), WithCategory(CategoryFood))

		assert.Zero(t, p.Price())
		assert.False(t, p.Changes().Dirty(FieldPrice))
	})

	t.Run("no validation at construction", func(t *testing.T) {
		p := NewProduct(WithName(""))
		assert.Equal(t, "", p.Name())

		p = NewProduct()
		assert.False(t, p.Changes().HasChanges())
	})
}

func TestReconstructProduct(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	p := ReconstructProduct(3, "구두", 300000, CategoryFashion, created, updated)

	assert.False(t, p.IsNew())
	assert.Equal(t, int64(3), p.ID())
	assert.Equal(t, created, p.CreateDate())
	assert.Equal(t, updated, p.UpdateDate())
	assert.False(t, p.Changes().HasChanges(), "reconstructed products start clean")
}

func TestProduct_Setters(t *testing.T) {
	now := time.Now()
	p := ReconstructProduct(2, "탕수육", 20000, CategoryFood, now, now)

	p.SetName("짜장면")
	p.SetPrice(6000)

	assert.Equal(t, "짜장면", p.Name())
	assert.Equal(t, 6000, p.Price())
	assert.True(t, p.Changes().Dirty(FieldName))
	assert.True(t, p.Changes().Dirty(FieldPrice))
	assert.False(t, p.Changes().Dirty(FieldCategory))

	p.SetCategory("")
	assert.True(t, p.Category().IsZero())
	assert.True(t, p.Changes().Dirty(FieldCategory))
}

func TestProduct_Equal(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	a := ReconstructProduct(1, "아이폰", 1000000, CategoryElectronic, created, created)
	b := ReconstructProduct(1, "아이폰", 1000000, CategoryElectronic, created.In(time.FixedZone("KST", 9*3600)), created)
	assert.True(t, a.Equal(b), "timestamps compare as instants")

	b.SetPrice(999)
	assert.False(t, a.Equal(b))

	var nilProduct *Product
	assert.False(t, a.Equal(nil))
	assert.True(t, nilProduct.Equal(nil))
}

func TestProduct_String(t *testing.T) {
	p := NewProduct(WithName("구두"), WithPrice(300000), WithCategory(CategoryFashion))

	assert.Equal(t,
		"Product(id=0, name=구두, price=300000, category=FASHION, createDate=null, updateDate=null)",
		p.String())

	created := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)
	saved := ReconstructProduct(7, "구두", 300000, CategoryFashion, created, created)
	require.Contains(t, saved.String(), "id=7")
	assert.Contains(t, saved.String(), "createDate=2025-01-01T09:30:00Z")
}
