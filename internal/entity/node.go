package entity

// Node is a file or a folder of an explorer tree.
// Files keep Items nil, folders always carry a non-nil slice.
type Node struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	IsFolder bool    `json:"is_folder"`
	Items    []*Node `json:"items"`
}

func NewFolder(id, name string) *Node {
	return &Node{
		ID:       id,
		Name:     name,
		IsFolder: true,
		Items:    []*Node{},
	}
}

func NewFile(id, name string) *Node {
	return &Node{
		ID:   id,
		Name: name,
	}
}

// Tree is an explorer tree kept between edits.
type Tree struct {
	ID   string `json:"id"`
	Root *Node  `json:"root"`
}
