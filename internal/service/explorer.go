package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/explorer"
)

// ExplorerService keeps explorer trees in storage and applies editor operations to them.
// Unlike the editor it reports edits that matched nothing as errors.
type ExplorerService interface {
	CreateTree(ctx context.Context, name string) (*entity.Tree, error)
	GetTree(ctx context.Context, id string) (*entity.Tree, error)
	DeleteTree(ctx context.Context, id string) error

	InsertNode(ctx context.Context, treeID, parentID, name string, isFolder bool) (*entity.Tree, *entity.Node, error)
	RenameNode(ctx context.Context, treeID, nodeID, name string) (*entity.Tree, error)
	// DeleteNode returns a nil tree when the root itself was deleted, the stored tree is removed then.
	DeleteNode(ctx context.Context, treeID, nodeID string) (*entity.Tree, error)
}

type treeRepo interface {
	CreateOrUpdate(ctx context.Context, tree *entity.Tree) error
	GetByID(ctx context.Context, id string) (*entity.Tree, error)
	Update(ctx context.Context, id string, fn func(tree *entity.Tree) error) (*entity.Tree, error)
	DeleteByID(ctx context.Context, id string) error
}

type explorerService struct {
	logger *slog.Logger

	treeRepo treeRepo
	editor   *explorer.Editor
	rootName string
}

func NewExplorerService(logger *slog.Logger, treeRepo treeRepo, editor *explorer.Editor, rootName string) ExplorerService {
	return &explorerService{
		logger:   logger.With("component", "explorer_service"),
		treeRepo: treeRepo,
		editor:   editor,
		rootName: rootName,
	}
}

// CreateTree - stores a tree holding just a root folder, a blank name picks the configured one.
func (that *explorerService) CreateTree(ctx context.Context, name string) (*entity.Tree, error) {
	if isBlank(name) {
		name = that.rootName
	}

	tree := &entity.Tree{
		ID:   uuid.NewString(),
		Root: entity.NewFolder(uuid.NewString(), name),
	}

	if err := that.treeRepo.CreateOrUpdate(ctx, tree); err != nil {
		return nil, fmt.Errorf("failed to create tree in storage: %w", err)
	}

	return tree, nil
}

func (that *explorerService) GetTree(ctx context.Context, id string) (*entity.Tree, error) {
	tree, err := that.treeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tree from storage: %w", err)
	}

	return tree, nil
}

func (that *explorerService) DeleteTree(ctx context.Context, id string) error {
	if err := that.treeRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tree: %w", err)
	}

	return nil
}

func (that *explorerService) InsertNode(ctx context.Context, treeID, parentID, name string, isFolder bool) (*entity.Tree, *entity.Node, error) {
	if isBlank(name) {
		return nil, nil, apperror.ErrEmptyName
	}

	var nodeID string
	tree, err := that.treeRepo.Update(ctx, treeID, func(tree *entity.Tree) error {
		parent := explorer.Find(tree.Root, parentID)
		if parent == nil {
			return fmt.Errorf("%w: %s", apperror.ErrNodeNotFound, parentID)
		}

		if !parent.IsFolder {
			return fmt.Errorf("%w: %s", apperror.ErrNotAFolder, parentID)
		}

		tree.Root, nodeID = that.editor.Insert(tree.Root, parentID, name, isFolder)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert node: %w", err)
	}

	that.logger.Debug("node inserted", "treeID", treeID, "parentID", parentID, "nodeID", nodeID)

	return tree, explorer.Find(tree.Root, nodeID), nil
}

func (that *explorerService) RenameNode(ctx context.Context, treeID, nodeID, name string) (*entity.Tree, error) {
	if isBlank(name) {
		return nil, apperror.ErrEmptyName
	}

	tree, err := that.treeRepo.Update(ctx, treeID, func(tree *entity.Tree) error {
		if explorer.Find(tree.Root, nodeID) == nil {
			return fmt.Errorf("%w: %s", apperror.ErrNodeNotFound, nodeID)
		}

		tree.Root = that.editor.Rename(tree.Root, nodeID, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename node: %w", err)
	}

	return tree, nil
}

func (that *explorerService) DeleteNode(ctx context.Context, treeID, nodeID string) (*entity.Tree, error) {
	log := that.logger.With("method", "DeleteNode", "treeID", treeID, "nodeID", nodeID)

	// the repository removes a tree whose root is gone
	tree, err := that.treeRepo.Update(ctx, treeID, func(tree *entity.Tree) error {
		if explorer.Find(tree.Root, nodeID) == nil {
			return fmt.Errorf("%w: %s", apperror.ErrNodeNotFound, nodeID)
		}

		tree.Root = that.editor.Delete(tree.Root, nodeID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete node: %w", err)
	}

	if tree.Root == nil {
		log.Info("root deleted, tree removed")
		return nil, nil
	}

	return tree, nil
}

func isBlank(name string) bool {
	return strings.TrimSpace(name) == ""
}
