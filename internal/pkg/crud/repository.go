// Package crud defines the repository contract shared by every entity and a
// generic implementation that delegates storage to a persistence engine.
//
// The engine owns identity assignment, timestamp stamping and constraint
// checks. The repository decides between insert and update, maps entities to
// rows, and returns freshly loaded values so callers always see what the
// engine stored.
package crud

import (
	"context"
	"fmt"
)

// Repository is the CRUD contract for an entity type T keyed by ID.
type Repository[T any, ID comparable] interface {
	// Save inserts T when its identity is zero and otherwise flushes its dirty
	// fields. The returned value reflects the stored row; the argument is not modified.
	Save(ctx context.Context, entity T) (T, error)

	// FindByID returns the stored entity and true, or the zero value and false.
	FindByID(ctx context.Context, id ID) (T, bool, error)

	// FindAll returns every stored entity. Order is unspecified.
	FindAll(ctx context.Context) ([]T, error)

	// DeleteByID removes the entity. Deleting an absent identity is a no-op.
	DeleteByID(ctx context.Context, id ID) error
}

// Engine is the storage collaborator behind a repository.
type Engine[R any, ID comparable] interface {
	// Insert assigns an identity, stamps both timestamps and writes the row.
	Insert(ctx context.Context, row *R) (ID, error)

	// Update writes the listed columns of row and refreshes the update timestamp.
	// It returns ErrNotFound when no row has the identity.
	Update(ctx context.Context, id ID, row *R, columns []string) error

	Get(ctx context.Context, id ID) (*R, bool, error)
	List(ctx context.Context) ([]R, error)
	Delete(ctx context.Context, id ID) error
}

// Mapper converts between an entity E and its row R.
type Mapper[E any, R any, ID comparable] interface {
	// Identity returns the entity's identity; the zero ID marks a transient entity.
	Identity(entity E) ID
	ToRow(entity E) *R
	FromRow(row *R) E
	// DirtyColumns lists the columns whose fields changed since the entity was loaded.
	DirtyColumns(entity E) []string
}

// EntityRepository implements Repository on top of an Engine.
type EntityRepository[E any, R any, ID comparable] struct {
	engine Engine[R, ID]
	mapper Mapper[E, R, ID]
}

// NewEntityRepository creates a repository for entities of type E stored as rows of type R.
func NewEntityRepository[E any, R any, ID comparable](engine Engine[R, ID], mapper Mapper[E, R, ID]) *EntityRepository[E, R, ID] {
	return &EntityRepository[E, R, ID]{
		engine: engine,
		mapper: mapper,
	}
}

// Save inserts or updates the entity and returns the stored value.
func (r *EntityRepository[E, R, ID]) Save(ctx context.Context, entity E) (E, error) {
	var zero E
	var transient ID

	id := r.mapper.Identity(entity)
	if id == transient {
		newID, err := r.engine.Insert(ctx, r.mapper.ToRow(entity))
		if err != nil {
			return zero, fmt.Errorf("failed to insert: %w", err)
		}
		id = newID
	} else if columns := r.mapper.DirtyColumns(entity); len(columns) > 0 {
		if err := r.engine.Update(ctx, id, r.mapper.ToRow(entity), columns); err != nil {
			return zero, fmt.Errorf("failed to update %v: %w", id, err)
		}
	}

	saved, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, fmt.Errorf("failed to reload %v: %w", id, ErrNotFound)
	}
	return saved, nil
}

// FindByID loads the entity with the given identity.
func (r *EntityRepository[E, R, ID]) FindByID(ctx context.Context, id ID) (E, bool, error) {
	var zero E

	row, ok, err := r.engine.Get(ctx, id)
	if err != nil {
		return zero, false, fmt.Errorf("failed to find %v: %w", id, err)
	}
	if !ok {
		return zero, false, nil
	}
	return r.mapper.FromRow(row), true, nil
}

// FindAll loads every stored entity.
func (r *EntityRepository[E, R, ID]) FindAll(ctx context.Context) ([]E, error) {
	rows, err := r.engine.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list: %w", err)
	}

	entities := make([]E, 0, len(rows))
	for i := range rows {
		entities = append(entities, r.mapper.FromRow(&rows[i]))
	}
	return entities, nil
}

// DeleteByID removes the entity if it exists.
func (r *EntityRepository[E, R, ID]) DeleteByID(ctx context.Context, id ID) error {
	if err := r.engine.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %v: %w", id, err)
	}
	return nil
}
