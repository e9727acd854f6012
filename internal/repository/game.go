package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	// Update applies fn to the stored game and saves it atomically, retrying when a concurrent write wins.
	Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	store *jsonStore[entity.Game]
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		store: &jsonStore[entity.Game]{
			client:   client,
			prefix:   "game",
			kind:     "game",
			notFound: ErrGameNotFound,
		},
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return that.store.set(ctx, game.ID, game)
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return that.store.get(ctx, id)
}

func (that *dbGame) Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error) {
	return that.store.update(ctx, id, fn)
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	return that.store.delete(ctx, id)
}
