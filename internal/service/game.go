package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

type GameService interface {
	CreateGame(ctx context.Context, size int) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, mark entity.Mark, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger *slog.Logger

	gameRepo    gameRepo
	defaultSize int
	maxSize     int
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, defaultSize, maxSize int) GameService {
	return &gameService{
		logger:      logger.With("component", "game_service"),
		gameRepo:    gameRepo,
		defaultSize: defaultSize,
		maxSize:     maxSize,
	}
}

// CreateGame - starts an empty size×size game, 0 picks the default size.
func (that *gameService) CreateGame(ctx context.Context, size int) (*entity.Game, error) {
	if size == 0 {
		size = that.defaultSize
	}

	if size < 1 || size > that.maxSize {
		return nil, fmt.Errorf("%w: %d, expected 1..%d", apperror.ErrInvalidBoardSize, size, that.maxSize)
	}

	game := entity.NewGame(uuid.NewString(), size)
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	that.logger.Debug("game created", "gameID", game.ID, "size", size)

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

// MakeTurn - a rejected turn returns the stored game together with the error.
func (that *gameService) MakeTurn(ctx context.Context, id string, mark entity.Mark, cell int) (*entity.Game, error) {
	if !mark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	game, err := that.gameRepo.Update(ctx, id, func(game *entity.Game) error {
		return game.MakeTurn(mark, cell)
	})
	if err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	}

	return game, nil
}

func (that *gameService) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, id, func(game *entity.Game) error {
		game.Reset()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Debug("game deleted", "gameID", id)

	return nil
}
