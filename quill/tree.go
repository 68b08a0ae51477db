package quill

import (
	"sync"

	"github.com/quill-tools/quill/args"
)

// node is one entry in the path tree. A node holding a command is terminal;
// every other node is a category. The parent link is used for traversal
// only, never for ownership.
type node struct {
	name     string
	parent   *node
	children map[string]*node
	order    []string
	command  *Command
}

func newNode(name string, parent *node) *node {
	return &node{
		name:     name,
		parent:   parent,
		children: make(map[string]*node),
	}
}

// Tree is the command path tree. Registration and removal are writer
// exclusive; lookups and dispatch-time resolution take the read lock, since
// registration is rare relative to dispatch.
type Tree struct {
	mu   sync.RWMutex
	root *node
}

// NewTree returns an empty tree. The root is always a category and has no
// path of its own.
func NewTree() *Tree {
	return &Tree{root: newNode("", nil)}
}

// Register inserts the command at its path, creating intermediate category
// nodes as needed. It fails with PathConflict if a command already occupies
// an intermediate segment, if the leaf already holds a command, or if the
// leaf is an existing category (a path cannot be both a command and a
// category prefix). On conflict the tree is left untouched.
func (t *Tree) Register(cmd *Command) error {
	if len(cmd.Path) == 0 {
		return PathConflict(cmd.Path)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Validate the whole path before mutating anything.
	cur := t.root
	for i, seg := range cmd.Path {
		child, ok := cur.children[pathKey(seg)]
		if !ok {
			break
		}
		last := i == len(cmd.Path)-1
		if child.command != nil {
			return PathConflict(cmd.Path[:i+1])
		}
		if last {
			// Existing category at the leaf position.
			return PathConflict(cmd.Path)
		}
		cur = child
	}

	cur = t.root
	for i, seg := range cmd.Path {
		key := pathKey(seg)
		child, ok := cur.children[key]
		if !ok {
			child = newNode(seg, cur)
			cur.children[key] = child
			cur.order = append(cur.order, key)
		}
		if i == len(cmd.Path)-1 {
			child.command = cmd
		}
		cur = child
	}
	return nil
}

// LookupCommand returns the command registered at exactly the given path,
// or nil. Matching is case-insensitive and exact; no prefix search.
func (t *Tree) LookupCommand(path Path) *Command {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.find(path)
	if n == nil {
		return nil
	}
	return n.command
}

// LookupCategory returns a snapshot of the category at the given path, or
// nil if the path is absent or holds a command. The empty path returns the
// root category.
func (t *Tree) LookupCategory(path Path) *Category {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.find(path)
	if n == nil || n.command != nil {
		return nil
	}
	return snapshotCategory(n, path)
}

func snapshotCategory(n *node, path Path) *Category {
	children := make([]string, 0, len(n.order))
	for _, key := range n.order {
		children = append(children, n.children[key].name)
	}
	return &Category{Path: path, Children: children}
}

// Unregister removes the node at the given path and, for categories, its
// entire subtree. Returns whether anything was removed. The root cannot be
// unregistered.
func (t *Tree) Unregister(path Path) bool {
	if len(path) == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.find(path)
	if n == nil {
		return false
	}
	parent := n.parent
	key := pathKey(n.name)
	delete(parent.children, key)
	for i, k := range parent.order {
		if k == key {
			parent.order = append(parent.order[:i], parent.order[i+1:]...)
			break
		}
	}
	return true
}

// find walks exact segments from the root; nil if any segment is absent.
// Caller must hold the lock.
func (t *Tree) find(path Path) *node {
	cur := t.root
	for _, seg := range path {
		child, ok := cur.children[pathKey(seg)]
		if !ok {
			return nil
		}
		cur = child
	}
	return cur
}

// resolve walks the tree using the front of the argument stack, consuming
// each matched path token. Command nodes are leaves, so the first command
// reached is the unique longest-path match.
func (t *Tree) resolve(stack *args.Stack) (*Command, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cur := t.root
	var walked Path
	for {
		tok, ok := stack.Peek()
		if !ok {
			break
		}
		child, ok := cur.children[pathKey(tok)]
		if !ok {
			walked = append(walked, tok)
			break
		}
		stack.Pop()
		walked = append(walked, tok)
		cur = child
		if cur.command != nil {
			return cur.command, nil
		}
	}
	return nil, CommandNotFound(walked)
}

// walk follows already-complete tokens as far as they match tree nodes,
// without consuming anything. Used by autocomplete. Caller must hold the
// read lock via the exported entry points.
func (t *Tree) walk(tokens []string) (*node, int) {
	cur := t.root
	for i, tok := range tokens {
		child, ok := cur.children[pathKey(tok)]
		if !ok {
			return cur, i
		}
		cur = child
		if cur.command != nil {
			return cur, i + 1
		}
	}
	return cur, len(tokens)
}
