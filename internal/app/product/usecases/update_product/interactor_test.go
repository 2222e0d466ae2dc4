package update_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-orm/internal/app/product/domain"
	"github.com/light-bringer/procat-orm/internal/app/product/repo"
	"github.com/light-bringer/procat-orm/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()
	productRepo := repo.NewMemoryProductRepo(testutil.NewSteppingClock())
	saved, err := productRepo.Save(ctx, domain.NewProduct(
		domain.WithName("탕수육"),
		domain.WithPrice(20000),
		domain.WithCategory(domain.CategoryFood),
	))
	require.NoError(t, err)

	updated, err := NewInteractor(productRepo).Execute(ctx, &Request{
		ProductID: saved.ID(),
		Name:      ptr("짜장면"),
		Price:     ptr(6000),
	})
	require.NoError(t, err)

	assert.Equal(t, "짜장면", updated.Name())
	assert.Equal(t, 6000, updated.Price())
	assert.Equal(t, domain.CategoryFood, updated.Category())
	assert.True(t, updated.CreateDate().Equal(saved.CreateDate()))
	assert.True(t, updated.UpdateDate().After(saved.UpdateDate()))
}

func TestInteractor_Execute_ClearCategory(t *testing.T) {
	ctx := context.Background()
	productRepo := repo.NewMemoryProductRepo(testutil.NewSteppingClock())
	saved, err := productRepo.Save(ctx, domain.NewProduct(domain.WithName("구두"), domain.WithCategory(domain.CategoryFashion)))
	require.NoError(t, err)

	updated, err := NewInteractor(productRepo).Execute(ctx, &Request{ProductID: saved.ID(), Category: ptr("")})
	require.NoError(t, err)
	assert.True(t, updated.Category().IsZero())
}

func TestInteractor_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	productRepo := repo.NewMemoryProductRepo(testutil.NewSteppingClock())
	interactor := NewInteractor(productRepo)

	_, err := interactor.Execute(ctx, &Request{ProductID: 42, Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	saved, err := productRepo.Save(ctx, domain.NewProduct(domain.WithName("구두")))
	require.NoError(t, err)

	_, err = interactor.Execute(ctx, &Request{ProductID: saved.ID(), Category: ptr("TOYS")})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)
}
