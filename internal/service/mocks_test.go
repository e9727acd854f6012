package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

type mockTreeRepo struct {
	mock.Mock
}

func (that *mockTreeRepo) CreateOrUpdate(ctx context.Context, tree *entity.Tree) error {
	args := that.Called(ctx, tree)
	return args.Error(0)
}

func (that *mockTreeRepo) GetByID(ctx context.Context, id string) (*entity.Tree, error) {
	args := that.Called(ctx, id)
	tree, _ := args.Get(0).(*entity.Tree)
	return tree, args.Error(1)
}

func (that *mockTreeRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func (that *mockGameRepo) Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	if err := args.Error(1); err != nil {
		return game, err
	}
	return game, fn(game)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func (that *mockTreeRepo) Update(ctx context.Context, id string, fn func(tree *entity.Tree) error) (*entity.Tree, error) {
	args := that.Called(ctx, id)
	tree, _ := args.Get(0).(*entity.Tree)
	if err := args.Error(1); err != nil {
		return tree, err
	}
	return tree, fn(tree)
}

// memoryTreeRepo stores trees as JSON, so every read hands out a private copy like Redis does.
// Update holds the lock for the whole read-modify-write.
type memoryTreeRepo struct {
	mu    sync.Mutex
	trees map[string][]byte
}

func newMemoryTreeRepo() *memoryTreeRepo {
	return &memoryTreeRepo{trees: make(map[string][]byte)}
}

func (that *memoryTreeRepo) CreateOrUpdate(_ context.Context, tree *entity.Tree) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.save(tree)
}

func (that *memoryTreeRepo) GetByID(_ context.Context, id string) (*entity.Tree, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.load(id)
}

func (that *memoryTreeRepo) Update(_ context.Context, id string, fn func(tree *entity.Tree) error) (*entity.Tree, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	tree, err := that.load(id)
	if err != nil {
		return nil, err
	}

	if err = fn(tree); err != nil {
		return tree, err
	}

	if tree.Root == nil {
		delete(that.trees, id)
		return tree, nil
	}

	return tree, that.save(tree)
}

func (that *memoryTreeRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.trees[id]; !ok {
		return errTreeNotFound
	}
	delete(that.trees, id)

	return nil
}

func (that *memoryTreeRepo) save(tree *entity.Tree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	that.trees[tree.ID] = data

	return nil
}

func (that *memoryTreeRepo) load(id string) (*entity.Tree, error) {
	data, ok := that.trees[id]
	if !ok {
		return nil, errTreeNotFound
	}

	var tree entity.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}

	return &tree, nil
}
