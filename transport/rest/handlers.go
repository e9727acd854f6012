package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/repository"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	ResetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)

	CreateTree(w http.ResponseWriter, r *http.Request)
	GetTree(w http.ResponseWriter, r *http.Request)
	DeleteTree(w http.ResponseWriter, r *http.Request)
	InsertNode(w http.ResponseWriter, r *http.Request)
	RenameNode(w http.ResponseWriter, r *http.Request)
	DeleteNode(w http.ResponseWriter, r *http.Request)
}

type gameService interface {
	CreateGame(ctx context.Context, size int) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, mark entity.Mark, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type explorerService interface {
	CreateTree(ctx context.Context, name string) (*entity.Tree, error)
	GetTree(ctx context.Context, id string) (*entity.Tree, error)
	DeleteTree(ctx context.Context, id string) error

	InsertNode(ctx context.Context, treeID, parentID, name string, isFolder bool) (*entity.Tree, *entity.Node, error)
	RenameNode(ctx context.Context, treeID, nodeID, name string) (*entity.Tree, error)
	DeleteNode(ctx context.Context, treeID, nodeID string) (*entity.Tree, error)
}

type handlers struct {
	logger *slog.Logger

	gameService     gameService
	explorerService explorerService
}

func NewHandlers(logger *slog.Logger, gameService gameService, explorerService explorerService) Handlers {
	return &handlers{
		logger:          logger.With("component", "rest_handlers"),
		gameService:     gameService,
		explorerService: explorerService,
	}
}

type createGameRequest struct {
	Size int `json:"size"`
}

type turnRequest struct {
	Mark entity.Mark `json:"mark"`
	Cell int         `json:"cell"`
}

type createTreeRequest struct {
	Name string `json:"name"`
}

type insertNodeRequest struct {
	ParentID string `json:"parent_id"`
	Name     string `json:"name"`
	IsFolder bool   `json:"is_folder"`
}

type renameNodeRequest struct {
	Name string `json:"name"`
}

type insertNodeResponse struct {
	Tree *entity.Tree `json:"tree"`
	Node *entity.Node `json:"node"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// CreateGame - an empty body asks for the default size.
func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.gameService.CreateGame(r.Context(), req.Size)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	game, err := that.gameService.MakeTurn(r.Context(), chi.URLParam(r, "gameID"), req.Mark, req.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.ResetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) CreateTree(w http.ResponseWriter, r *http.Request) {
	var req createTreeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tree, err := that.explorerService.CreateTree(r.Context(), req.Name)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tree)
}

func (that *handlers) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := that.explorerService.GetTree(r.Context(), chi.URLParam(r, "treeID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tree)
}

func (that *handlers) DeleteTree(w http.ResponseWriter, r *http.Request) {
	if err := that.explorerService.DeleteTree(r.Context(), chi.URLParam(r, "treeID")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) InsertNode(w http.ResponseWriter, r *http.Request) {
	var req insertNodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tree, node, err := that.explorerService.InsertNode(r.Context(), chi.URLParam(r, "treeID"), req.ParentID, req.Name, req.IsFolder)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, insertNodeResponse{Tree: tree, Node: node})
}

func (that *handlers) RenameNode(w http.ResponseWriter, r *http.Request) {
	var req renameNodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tree, err := that.explorerService.RenameNode(r.Context(), chi.URLParam(r, "treeID"), chi.URLParam(r, "nodeID"), req.Name)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tree)
}

func (that *handlers) DeleteNode(w http.ResponseWriter, r *http.Request) {
	tree, err := that.explorerService.DeleteNode(r.Context(), chi.URLParam(r, "treeID"), chi.URLParam(r, "nodeID"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	// the root was deleted and the tree with it
	if tree == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, tree)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError - storage and codec failures are logged and hidden behind a generic message.
func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"requestID", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound),
		errors.Is(err, repository.ErrTreeNotFound),
		errors.Is(err, apperror.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidBoardSize),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrNotAFolder),
		errors.Is(err, apperror.ErrEmptyName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
