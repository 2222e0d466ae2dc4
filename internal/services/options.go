package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	postcontracts "github.com/light-bringer/procat-orm/internal/app/post/contracts"
	"github.com/light-bringer/procat-orm/internal/app/post/queries/list_posts"
	postrepo "github.com/light-bringer/procat-orm/internal/app/post/repo"
	"github.com/light-bringer/procat-orm/internal/app/post/usecases/create_posts"
	productcontracts "github.com/light-bringer/procat-orm/internal/app/product/contracts"
	"github.com/light-bringer/procat-orm/internal/app/product/queries/get_product"
	"github.com/light-bringer/procat-orm/internal/app/product/queries/list_products"
	productrepo "github.com/light-bringer/procat-orm/internal/app/product/repo"
	"github.com/light-bringer/procat-orm/internal/app/product/usecases/create_product"
	"github.com/light-bringer/procat-orm/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/procat-orm/internal/app/product/usecases/update_product"
	"github.com/light-bringer/procat-orm/internal/config"
	"github.com/light-bringer/procat-orm/internal/models"
	"github.com/light-bringer/procat-orm/internal/pkg/clock"
	"github.com/light-bringer/procat-orm/internal/store/gormstore"
	"github.com/light-bringer/procat-orm/internal/store/spannerstore"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Engine string

	GormStore     *gormstore.Store
	SpannerClient *spanner.Client

	ProductRepo    productcontracts.ProductRepository
	PostRepo       postcontracts.PostRepository
	PostTransactor postcontracts.Transactor

	CreateProduct *create_product.Interactor
	UpdateProduct *update_product.Interactor
	DeleteProduct *delete_product.Interactor
	GetProduct    *get_product.Query
	ListProducts  *list_products.Query

	CreatePosts *create_posts.Interactor
	ListPosts   *list_posts.Query
}

// NewServiceOptions opens the configured engine and wires the repositories
// and use cases on top of it.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*ServiceOptions, error) {
	s := &ServiceOptions{Engine: cfg.Engine}
	clk := clock.NewRealClock()

	// 1. Open the engine and build the repositories
	switch cfg.Engine {
	case config.EngineMemory:
		s.ProductRepo = productrepo.NewMemoryProductRepo(clk)
		s.PostRepo = postrepo.NewMemoryPostRepo(clk)
		s.PostTransactor = postrepo.NewDirectTransactor(s.PostRepo)

	case config.EnginePostgres, config.EngineMySQL:
		store, err := openGormStore(ctx, cfg, clk, log)
		if err != nil {
			return nil, err
		}
		s.GormStore = store
		if cfg.Database.AutoMigrate {
			if err := store.AutoMigrate(ctx, models.GormModels()...); err != nil {
				store.Close()
				return nil, err
			}
		}
		s.ProductRepo = productrepo.NewGormProductRepo(store)
		s.PostRepo = postrepo.NewGormPostRepo(store)
		s.PostTransactor = postrepo.NewGormTransactor(store)

	case config.EngineSpanner:
		if cfg.Spanner.AutoMigrate {
			if err := spannerstore.EnsureSchema(ctx, cfg.Spanner.Database, models.SpannerDDL()); err != nil {
				return nil, err
			}
		}
		client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		s.ProductRepo = productrepo.NewSpannerProductRepo(client)
		s.PostRepo = postrepo.NewSpannerPostRepo(client)
		s.PostTransactor = postrepo.NewDirectTransactor(s.PostRepo)

	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}

	// 2. Create command use cases (write operations)
	s.CreateProduct = create_product.NewInteractor(s.ProductRepo)
	s.UpdateProduct = update_product.NewInteractor(s.ProductRepo)
	s.DeleteProduct = delete_product.NewInteractor(s.ProductRepo)
	s.CreatePosts = create_posts.NewInteractor(s.PostTransactor)

	// 3. Create query use cases (read operations)
	s.GetProduct = get_product.NewQuery(s.ProductRepo)
	s.ListProducts = list_products.NewQuery(s.ProductRepo)
	s.ListPosts = list_posts.NewQuery(s.PostRepo)

	log.Debug().Str("engine", cfg.Engine).Msg("services wired")
	return s, nil
}

func openGormStore(ctx context.Context, cfg *config.Config, clk clock.Clock, log zerolog.Logger) (*gormstore.Store, error) {
	opts := gormstore.Options{
		Clock:         clk,
		Log:           log,
		SlowThreshold: time.Duration(cfg.Database.SlowThresholdMS) * time.Millisecond,
		MaxConns:      cfg.Database.MaxConns,
	}

	if cfg.Engine == config.EngineMySQL {
		mysqlCfg := mysql.NewConfig()
		mysqlCfg.User = cfg.Database.User
		mysqlCfg.Passwd = cfg.Database.Password
		mysqlCfg.Net = "tcp"
		mysqlCfg.Addr = cfg.Database.Addr()
		mysqlCfg.DBName = cfg.Database.Name
		return gormstore.OpenMySQL(ctx, mysqlCfg, opts)
	}

	dsn, err := cfg.PostgresDSN()
	if err != nil {
		return nil, err
	}
	return gormstore.OpenPostgres(ctx, dsn, opts)
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.GormStore != nil {
		s.GormStore.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
