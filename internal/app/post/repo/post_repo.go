package repo

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/procat-orm/internal/app/post/contracts"
	"github.com/light-bringer/procat-orm/internal/app/post/domain"
	"github.com/light-bringer/procat-orm/internal/models/m_post"
	"github.com/light-bringer/procat-orm/internal/pkg/clock"
	"github.com/light-bringer/procat-orm/internal/pkg/crud"
	"github.com/light-bringer/procat-orm/internal/store/gormstore"
	"github.com/light-bringer/procat-orm/internal/store/memstore"
	"github.com/light-bringer/procat-orm/internal/store/spannerstore"
)

var columnByField = map[string]string{
	domain.FieldTitle:   m_post.Title,
	domain.FieldContent: m_post.Content,
	domain.FieldWriter:  m_post.Writer,
}

// NewPostRepo creates a post repository over any engine.
func NewPostRepo(engine crud.Engine[m_post.Data, string]) contracts.PostRepository {
	return crud.NewEntityRepository[*domain.Post, m_post.Data, string](engine, postMapper{})
}

func NewMemoryPostRepo(clk clock.Clock) contracts.PostRepository {
	return NewPostRepo(memstore.NewTable[m_post.Data, string, *m_post.Data](clk, m_post.NewID))
}

func NewGormPostRepo(store *gormstore.Store) contracts.PostRepository {
	return NewPostRepo(gormstore.NewTable[m_post.Data, string, *m_post.Data](store))
}

func NewSpannerPostRepo(client *spanner.Client) contracts.PostRepository {
	return NewPostRepo(spannerstore.NewTable[m_post.Data, string, *m_post.Data](client, m_post.NewModel()))
}

// NewGormTransactor scopes each unit of work to one database transaction.
func NewGormTransactor(store *gormstore.Store) contracts.Transactor {
	return gormTransactor{store: store}
}

// NewDirectTransactor runs units of work on repo without a transaction.
func NewDirectTransactor(repo contracts.PostRepository) contracts.Transactor {
	return directTransactor{repo: repo}
}

type gormTransactor struct {
	store *gormstore.Store
}

func (t gormTransactor) WithinTransaction(ctx context.Context, fn func(contracts.PostRepository) error) error {
	return t.store.Transaction(ctx, func(tx *gormstore.Store) error {
		return fn(NewGormPostRepo(tx))
	})
}

type directTransactor struct {
	repo contracts.PostRepository
}

func (t directTransactor) WithinTransaction(_ context.Context, fn func(contracts.PostRepository) error) error {
	return fn(t.repo)
}

type postMapper struct{}

func (postMapper) Identity(p *domain.Post) string {
	return p.ID()
}

func (postMapper) ToRow(p *domain.Post) *m_post.Data {
	return &m_post.Data{
		ID:         p.ID(),
		Title:      p.Title(),
		Content:    p.Content(),
		Writer:     p.Writer(),
		CreateDate: p.CreateDate(),
		UpdateDate: p.UpdateDate(),
	}
}

func (postMapper) FromRow(data *m_post.Data) *domain.Post {
	return domain.ReconstructPost(
		data.ID,
		data.Title,
		data.Content,
		data.Writer,
		data.CreateDate,
		data.UpdateDate,
	)
}

func (postMapper) DirtyColumns(p *domain.Post) []string {
	fields := p.Changes().DirtyFields()
	columns := make([]string, 0, len(fields))
	for _, field := range fields {
		if col, ok := columnByField[field]; ok {
			columns = append(columns, col)
		}
	}
	return columns
}
