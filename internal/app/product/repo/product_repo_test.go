package repo_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/procat-orm/internal/app/product/contracts"
	"github.com/light-bringer/procat-orm/internal/app/product/domain"
	"github.com/light-bringer/procat-orm/internal/app/product/repo"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
	"github.com/light-bringer/procat-orm/internal/testutil"
)

type engine struct {
	name string
	open func(t *testing.T) contracts.ProductRepository
	// exactClock engines stamp rows from the injected stepping clock.
	exactClock bool
}

func engines() []engine {
	return []engine{
		{
			name: "memory",
			open: func(t *testing.T) contracts.ProductRepository {
				return repo.NewMemoryProductRepo(testutil.NewSteppingClock())
			},
			exactClock: true,
		},
		{
			name: "sqlite",
			open: func(t *testing.T) contracts.ProductRepository {
				return repo.NewGormProductRepo(testutil.SQLiteStore(t, testutil.NewSteppingClock()))
			},
		},
		{
			name: "postgres",
			open: func(t *testing.T) contracts.ProductRepository {
				return repo.NewGormProductRepo(testutil.PostgresStore(t, testutil.NewSteppingClock()))
			},
		},
		{
			name: "mysql",
			open: func(t *testing.T) contracts.ProductRepository {
				return repo.NewGormProductRepo(testutil.MySQLStore(t, testutil.NewSteppingClock()))
			},
		},
		{
			name: "spanner",
			open: func(t *testing.T) contracts.ProductRepository {
				return repo.NewSpannerProductRepo(testutil.SpannerClient(t))
			},
		},
	}
}

func forEachEngine(t *testing.T, fn func(t *testing.T, e engine, r contracts.ProductRepository)) {
	for _, e := range engines() {
		t.Run(e.name, func(t *testing.T) {
			fn(t, e, e.open(t))
		})
	}
}

func save(t *testing.T, r contracts.ProductRepository, opts ...domain.Option) *domain.Product {
	t.Helper()
	p, err := r.Save(context.Background(), domain.NewProduct(opts...))
	require.NoError(t, err)
	return p
}

func TestProductRepository_SaveAndFind(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e engine, r contracts.ProductRepository) {
		ctx := context.Background()

		transient := domain.NewProduct(
			domain.WithName("아이폰"),
			domain.WithPrice(1000000),
			domain.WithCategory(domain.CategoryElectronic),
		)
		saved, err := r.Save(ctx, transient)
		require.NoError(t, err)

		assert.True(t, transient.IsNew(), "argument must not be modified")
		assert.NotZero(t, saved.ID())
		assert.False(t, saved.CreateDate().IsZero())
		assert.False(t, saved.UpdateDate().Before(saved.CreateDate()))
		if e.exactClock {
			assert.True(t, saved.CreateDate().Equal(testutil.Epoch))
			assert.True(t, saved.UpdateDate().Equal(saved.CreateDate()))
		}

		found, ok, err := r.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, saved.Equal(found), "want %s, got %s", saved, found)
		assert.Equal(t, domain.CategoryElectronic, found.Category())
	})
}

func TestProductRepository_FindByIDAbsent(t *testing.T) {
	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		found, ok, err := r.FindByID(context.Background(), 987654)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, found)
	})
}

func TestProductRepository_NullableFields(t *testing.T) {
	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		saved := save(t, r, domain.WithName("쓰레기"))

		found, ok, err := r.FindByID(context.Background(), saved.ID())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Zero(t, found.Price())
		assert.True(t, found.Category().IsZero())
	})
}

func TestProductRepository_UpdateKeepsCreateDate(t *testing.T) {
	forEachEngine(t, func(t *testing.T, e engine, r contracts.ProductRepository) {
		ctx := context.Background()
		saved := save(t, r, domain.WithName("탕수육"), domain.WithPrice(20000), domain.WithCategory(domain.CategoryFood))

		saved.SetName("짜장면")
		saved.SetPrice(6000)
		updated, err := r.Save(ctx, saved)
		require.NoError(t, err)

		assert.Equal(t, saved.ID(), updated.ID())
		assert.Equal(t, "짜장면", updated.Name())
		assert.Equal(t, 6000, updated.Price())
		assert.Equal(t, domain.CategoryFood, updated.Category())
		assert.True(t, updated.CreateDate().Equal(saved.CreateDate()), "create_date must never change")
		if e.exactClock {
			assert.True(t, updated.UpdateDate().After(saved.UpdateDate()))
		} else {
			assert.False(t, updated.UpdateDate().Before(saved.UpdateDate()))
		}

		updated.SetCategory(domain.CategoryFashion)
		again, err := r.Save(ctx, updated)
		require.NoError(t, err)
		assert.True(t, again.CreateDate().Equal(saved.CreateDate()))
		assert.Equal(t, "짜장면", again.Name())
		assert.Equal(t, domain.CategoryFashion, again.Category())
	})
}

func TestProductRepository_SaveWithoutChanges(t *testing.T) {
	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		ctx := context.Background()
		saved := save(t, r, domain.WithName("구두"), domain.WithPrice(300000))

		found, _, err := r.FindByID(ctx, saved.ID())
		require.NoError(t, err)

		again, err := r.Save(ctx, found)
		require.NoError(t, err)
		assert.True(t, again.Equal(saved), "nothing is written when nothing changed")
	})
}

func TestProductRepository_SaveDeletedProduct(t *testing.T) {
	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		ctx := context.Background()
		saved := save(t, r, domain.WithName("정장"))
		require.NoError(t, r.DeleteByID(ctx, saved.ID()))

		saved.SetPrice(1)
		_, err := r.Save(ctx, saved)
		require.ErrorIs(t, err, crud.ErrNotFound)

		_, ok, err := r.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.False(t, ok, "an update must not resurrect a deleted row")
	})
}

func TestProductRepository_IdentityNotReused(t *testing.T) {
	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		ctx := context.Background()
		first := save(t, r, domain.WithName("아이폰"))
		newest := save(t, r, domain.WithName("탕수육"))
		require.NoError(t, r.DeleteByID(ctx, newest.ID()))

		next := save(t, r, domain.WithName("구두"))
		assert.Greater(t, next.ID(), newest.ID(), "a deleted identity is never assigned again")
		assert.Greater(t, next.ID(), first.ID())

		_, ok, err := r.FindByID(ctx, newest.ID())
		require.NoError(t, err)
		assert.False(t, ok)

		newest.SetPrice(1)
		_, err = r.Save(ctx, newest)
		require.ErrorIs(t, err, crud.ErrNotFound, "a stale copy must not overwrite the new row")

		found, ok, err := r.FindByID(ctx, next.ID())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "구두", found.Name())
		assert.Zero(t, found.Price())
	})
}

func TestProductRepository_Delete(t *testing.T) {
	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		ctx := context.Background()
		saved := save(t, r, domain.WithName("구두"))

		require.NoError(t, r.DeleteByID(ctx, saved.ID()))
		_, ok, err := r.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, r.DeleteByID(ctx, saved.ID()), "deleting twice is a no-op")
		assert.NoError(t, r.DeleteByID(ctx, 987654), "deleting an unknown id is a no-op")
	})
}

func TestProductRepository_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name   string
		opts   []domain.Option
		column string
	}{
		{"missing name", []domain.Option{domain.WithPrice(1000)}, "prod_name"},
		{"empty name", []domain.Option{domain.WithName("")}, "prod_name"},
		{"name over 30 characters", []domain.Option{domain.WithName(strings.Repeat("가", 31))}, "prod_name"},
		{"unknown category", []domain.Option{domain.WithName("x"), domain.WithCategory("TOYS")}, "category"},
	}

	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		ctx := context.Background()

		for _, tt := range tests {
			_, err := r.Save(ctx, domain.NewProduct(tt.opts...))
			require.ErrorIs(t, err, crud.ErrConstraintViolation, tt.name)

			cerr, ok := crud.AsConstraintError(err)
			require.True(t, ok, tt.name)
			assert.Equal(t, tt.column, cerr.Column, tt.name)
		}

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all, "no row may be written on violation")

		_, err = r.Save(ctx, domain.NewProduct(domain.WithName(strings.Repeat("가", 30))))
		assert.NoError(t, err, "30 characters is the limit, not bytes")
	})
}

func TestProductRepository_UpdateViolation(t *testing.T) {
	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		ctx := context.Background()
		saved := save(t, r, domain.WithName("아이폰"), domain.WithPrice(1000000))

		saved.SetName(strings.Repeat("a", 31))
		_, err := r.Save(ctx, saved)
		require.ErrorIs(t, err, crud.ErrConstraintViolation)

		found, _, err := r.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.Equal(t, "아이폰", found.Name())
	})
}

func TestProductRepository_CatalogScenario(t *testing.T) {
	forEachEngine(t, func(t *testing.T, _ engine, r contracts.ProductRepository) {
		ctx := context.Background()

		p1 := save(t, r, domain.WithName("아이폰"), domain.WithPrice(1000000), domain.WithCategory(domain.CategoryElectronic))
		p2 := save(t, r, domain.WithName("탕수육"), domain.WithPrice(20000), domain.WithCategory(domain.CategoryFood))
		p3 := save(t, r, domain.WithName("구두"), domain.WithPrice(300000), domain.WithCategory(domain.CategoryFashion))
		p4 := save(t, r, domain.WithName("쓰레기"), domain.WithCategory(domain.CategoryFood))

		ids := map[int64]bool{p1.ID(): true, p2.ID(): true, p3.ID(): true, p4.ID(): true}
		assert.Len(t, ids, 4, "identities are unique")
		assert.Less(t, p1.ID(), p2.ID(), "identities are assigned in order")
		assert.Less(t, p3.ID(), p4.ID())

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		require.NoError(t, r.DeleteByID(ctx, p2.ID()))
		all, err = r.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		third, ok, err := r.FindByID(ctx, p3.ID())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "구두", third.Name())

		save(t, r, domain.WithName("정장"), domain.WithPrice(500000), domain.WithCategory(domain.CategoryFashion))
		all, err = r.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4, "inserts minus deletes")
	})
}
