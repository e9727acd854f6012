// Package explorer edits explorer trees without mutating them.
//
// Every edit returns a new root. Subtrees an edit does not touch are shared
// between the old and the new tree, and an edit that matches nothing returns
// the root it was given.
package explorer

import (
	"github.com/google/uuid"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

// IDGenerator returns ids for inserted nodes, they must be unique within a tree.
type IDGenerator func() string

type Editor struct {
	newID IDGenerator
}

type Option func(*Editor)

// WithIDGenerator replaces the default uuid based generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(that *Editor) {
		that.newID = gen
	}
}

func NewEditor(opts ...Option) *Editor {
	editor := &Editor{
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(editor)
	}

	return editor
}

// Insert - puts a new node first among the items of the folder parentID.
// It returns the new root and the id of the inserted node, or the given root
// and "" when parentID is missing or names a file.
func (that *Editor) Insert(root *entity.Node, parentID, name string, isFolder bool) (*entity.Node, string) {
	target := Find(root, parentID)
	if target == nil || !target.IsFolder {
		return root, ""
	}

	var child *entity.Node
	if isFolder {
		child = entity.NewFolder(that.newID(), name)
	} else {
		child = entity.NewFile(that.newID(), name)
	}

	newRoot, _ := insertNode(root, parentID, child)

	return newRoot, child.ID
}

func insertNode(node *entity.Node, parentID string, child *entity.Node) (*entity.Node, bool) {
	if node.ID == parentID {
		items := make([]*entity.Node, 0, len(node.Items)+1)
		items = append(items, child)
		items = append(items, node.Items...)

		return withItems(node, items), true
	}

	for i, item := range node.Items {
		updated, ok := insertNode(item, parentID, child)
		if ok {
			return withItems(node, replaceAt(node.Items, i, updated)), true
		}
	}

	return node, false
}

// Delete - removes the node nodeID together with its subtree.
// Deleting the root returns nil.
func (that *Editor) Delete(root *entity.Node, nodeID string) *entity.Node {
	if root == nil || root.ID == nodeID {
		return nil
	}

	newRoot, _ := deleteNode(root, nodeID)

	return newRoot
}

func deleteNode(node *entity.Node, nodeID string) (*entity.Node, bool) {
	for i, item := range node.Items {
		if item.ID == nodeID {
			items := make([]*entity.Node, 0, len(node.Items)-1)
			items = append(items, node.Items[:i]...)
			items = append(items, node.Items[i+1:]...)

			return withItems(node, items), true
		}

		if updated, ok := deleteNode(item, nodeID); ok {
			return withItems(node, replaceAt(node.Items, i, updated)), true
		}
	}

	return node, false
}

// Rename - sets the name of node nodeID, id and items stay as they are.
func (that *Editor) Rename(root *entity.Node, nodeID, newName string) *entity.Node {
	if root == nil {
		return nil
	}

	newRoot, _ := renameNode(root, nodeID, newName)

	return newRoot
}

func renameNode(node *entity.Node, nodeID, newName string) (*entity.Node, bool) {
	if node.ID == nodeID {
		renamed := *node
		renamed.Name = newName

		return &renamed, true
	}

	for i, item := range node.Items {
		if updated, ok := renameNode(item, nodeID, newName); ok {
			return withItems(node, replaceAt(node.Items, i, updated)), true
		}
	}

	return node, false
}

// Find - returns the node nodeID, depth first from root, or nil.
func Find(root *entity.Node, nodeID string) *entity.Node {
	var found *entity.Node

	Walk(root, func(node *entity.Node) bool {
		if node.ID == nodeID {
			found = node
			return false
		}
		return true
	})

	return found
}

// Walk - visits nodes depth first, parents before their items, until fn returns false.
func Walk(root *entity.Node, fn func(node *entity.Node) bool) {
	walk(root, fn)
}

func walk(node *entity.Node, fn func(node *entity.Node) bool) bool {
	if node == nil {
		return true
	}

	if !fn(node) {
		return false
	}

	for _, item := range node.Items {
		if !walk(item, fn) {
			return false
		}
	}

	return true
}

func withItems(node *entity.Node, items []*entity.Node) *entity.Node {
	updated := *node
	updated.Items = items

	return &updated
}

func replaceAt(items []*entity.Node, i int, node *entity.Node) []*entity.Node {
	updated := make([]*entity.Node, len(items))
	copy(updated, items)
	updated[i] = node

	return updated
}
