package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

var (
	errRedisDown    = errors.New("redis down")
	errGameNotFound = errors.New("game not found")
)

func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates game with default size", func(t *testing.T) {
		// Given: a repository that accepts the game
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		gameService := NewGameService(discardLogger, repo, 3, 10)

		// When: a game of size 0 is requested
		game, err := gameService.CreateGame(ctx, 0)

		// Then: a stored empty 3×3 game is returned
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, 3, game.Size)
		assert.Len(t, game.Board, 9)
		assert.Equal(t, entity.PlayerX, game.Turn)
		repo.AssertExpectations(t)
	})

	t.Run("Rejects size out of range", func(t *testing.T) {
		// Given: a service with max size 5
		repo := &mockGameRepo{}
		gameService := NewGameService(discardLogger, repo, 3, 5)

		// When/Then: sizes outside 1..5 fail without touching storage
		for _, size := range []int{-1, 6} {
			game, err := gameService.CreateGame(ctx, size)
			require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
			assert.Nil(t, game)
		}
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Returns storage error", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", mock.Anything, mock.Anything).Return(errRedisDown).Once()
		gameService := NewGameService(discardLogger, repo, 3, 10)

		game, err := gameService.CreateGame(ctx, 4)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores the turn", func(t *testing.T) {
		// Given: a stored new game
		repo := &mockGameRepo{}
		repo.On("Update", mock.Anything, "g1").Return(entity.NewGame("g1", 3), nil).Once()
		gameService := NewGameService(discardLogger, repo, 3, 10)

		// When: X plays the center
		game, err := gameService.MakeTurn(ctx, "g1", entity.PlayerX, 4)

		// Then: the updated game is returned and saved
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Board[4])
		assert.Equal(t, entity.PlayerO, game.Turn)
		repo.AssertExpectations(t)
	})

	t.Run("Winning turn finishes the game", func(t *testing.T) {
		// Given: X needs one more cell in the top row
		existing := entity.NewGame("g1", 3)
		for _, cell := range []int{0, 3, 1, 4} {
			require.NoError(t, existing.MakeTurn(existing.Turn, cell))
		}
		repo := &mockGameRepo{}
		repo.On("Update", mock.Anything, "g1").Return(existing, nil).Once()
		gameService := NewGameService(discardLogger, repo, 3, 10)

		// When: X plays cell 2
		game, err := gameService.MakeTurn(ctx, "g1", entity.PlayerX, 2)

		// Then: X wins
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, "X", game.Winner)
	})

	t.Run("Invalid turn returns the game", func(t *testing.T) {
		// Given: a stored new game
		repo := &mockGameRepo{}
		repo.On("Update", mock.Anything, "g1").Return(entity.NewGame("g1", 3), nil).Once()
		gameService := NewGameService(discardLogger, repo, 3, 10)

		// When: O plays first
		game, err := gameService.MakeTurn(ctx, "g1", entity.PlayerO, 4)

		// Then: ErrNotYourTurn with the unchanged game
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		require.NotNil(t, game)
		assert.Equal(t, entity.EmptyCell, game.Board[4])
	})

	t.Run("Unknown mark", func(t *testing.T) {
		repo := &mockGameRepo{}
		gameService := NewGameService(discardLogger, repo, 3, 10)

		_, err := gameService.MakeTurn(ctx, "g1", entity.EmptyCell, 4)

		require.ErrorIs(t, err, apperror.ErrInvalidMark)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Missing game", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("Update", mock.Anything, "nope").Return(nil, errGameNotFound).Once()
		gameService := NewGameService(discardLogger, repo, 3, 10)

		game, err := gameService.MakeTurn(ctx, "nope", entity.PlayerX, 0)

		require.ErrorIs(t, err, errGameNotFound)
		assert.Nil(t, game)
	})
}

func TestGameService_ResetGame(t *testing.T) {
	ctx := context.Background()

	// Given: a finished 1×1 game
	existing := entity.NewGame("g1", 1)
	require.NoError(t, existing.MakeTurn(entity.PlayerX, 0))
	repo := &mockGameRepo{}
	repo.On("Update", mock.Anything, "g1").Return(existing, nil).Once()
	gameService := NewGameService(discardLogger, repo, 3, 10)

	// When: it is reset
	game, err := gameService.ResetGame(ctx, "g1")

	// Then: it is a fresh game with the same id and size
	require.NoError(t, err)
	assert.Equal(t, entity.NewGame("g1", 1), game)
	repo.AssertExpectations(t)
}

func TestGameService_DeleteGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes stored game", func(t *testing.T) {
		// Given: a repository holding g1
		repo := &mockGameRepo{}
		repo.On("DeleteByID", mock.Anything, "g1").Return(nil).Once()
		gameService := NewGameService(discardLogger, repo, 3, 10)

		// When: g1 is deleted
		err := gameService.DeleteGame(ctx, "g1")

		// Then: the repository removed it
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Missing game", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("DeleteByID", mock.Anything, "nope").Return(errGameNotFound).Once()
		gameService := NewGameService(discardLogger, repo, 3, 10)

		err := gameService.DeleteGame(ctx, "nope")

		require.ErrorIs(t, err, errGameNotFound)
	})
}
