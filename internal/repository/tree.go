package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

var ErrTreeNotFound = errors.New("tree not found")

type TreeRepository interface {
	CreateOrUpdate(ctx context.Context, tree *entity.Tree) error
	GetByID(ctx context.Context, id string) (*entity.Tree, error)
	// Update applies fn to the stored tree and saves it atomically.
	// A tree left without root by fn is removed, the returned tree then has a nil Root.
	Update(ctx context.Context, id string, fn func(tree *entity.Tree) error) (*entity.Tree, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbTree struct {
	store *jsonStore[entity.Tree]
}

func NewTreeRepository(client *redis.Client) TreeRepository {
	return &dbTree{
		store: &jsonStore[entity.Tree]{
			client:   client,
			prefix:   "tree",
			kind:     "tree",
			notFound: ErrTreeNotFound,
			drop: func(tree *entity.Tree) bool {
				return tree.Root == nil
			},
		},
	}
}

func (that *dbTree) CreateOrUpdate(ctx context.Context, tree *entity.Tree) error {
	return that.store.set(ctx, tree.ID, tree)
}

func (that *dbTree) GetByID(ctx context.Context, id string) (*entity.Tree, error) {
	return that.store.get(ctx, id)
}

func (that *dbTree) Update(ctx context.Context, id string, fn func(tree *entity.Tree) error) (*entity.Tree, error) {
	return that.store.update(ctx, id, fn)
}

func (that *dbTree) DeleteByID(ctx context.Context, id string) error {
	return that.store.delete(ctx, id)
}
