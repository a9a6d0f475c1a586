package tree

import "errors"

// Errors returned by Move. The TUI turns these into user-facing messages,
// so they must stay distinguishable.
var (
	ErrNotFound       = errors.New("node not found")
	ErrMoveSelf       = errors.New("cannot move a node under itself")
	ErrMoveDescendant = errors.New("cannot move a node under its own descendant")
)

// Row is one entry of the flattened display order.
type Row struct {
	Depth int
	Node  *Node
}

// Tree owns every node. nodes is the single source of truth for
// existence; roots and children are adjacency indices kept in insertion
// order. After every exported method the indices reference only live
// nodes and the parent/child relation is acyclic.
type Tree struct {
	nodes    map[string]*Node
	roots    []string
	children map[string][]string

	dirty bool
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
	}
}

// Insert places an already-constructed node into the arena. It is used by
// storage when rebuilding a tree from disk; interactive code goes through
// Add so identity and timestamp are assigned in one step.
func (t *Tree) Insert(n *Node) {
	if n.IsRoot() {
		t.roots = append(t.roots, n.ID)
	} else {
		t.children[n.ParentID] = append(t.children[n.ParentID], n.ID)
	}
	t.nodes[n.ID] = n
}

// Add creates a node and attaches it under parentID, or as a root when
// parentID is empty. The parent id is not validated; callers are expected
// to pass a live id (the TUI always passes the current selection).
// Returns the new node's id.
func (t *Tree) Add(title, body, parentID string) string {
	n := newNode(title, body, parentID)
	t.Insert(n)
	t.dirty = true
	return n.ID
}

// Get looks up a node by id.
func (t *Tree) Get(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Roots returns the root ids in insertion order.
func (t *Tree) Roots() []string {
	return t.roots
}

// Children returns the direct child ids of id in insertion order.
func (t *Tree) Children(id string) []string {
	return t.children[id]
}

// Descendants returns every id reachable below id. The walk is iterative
// so a pathologically deep tree cannot blow the stack; children are
// pushed in reverse so insertion order pops first (pre-order).
func (t *Tree) Descendants(id string) []string {
	var out []string
	var stack []string
	kids := t.children[id]
	for i := len(kids) - 1; i >= 0; i-- {
		stack = append(stack, kids[i])
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		kids = t.children[cur]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// Delete removes id and its entire subtree, returning the removed ids
// (id first). Deleting an absent id is a no-op returning nil.
func (t *Tree) Delete(id string) []string {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}
	removed := append([]string{id}, t.Descendants(id)...)
	for _, rid := range removed {
		n, ok := t.nodes[rid]
		if !ok {
			continue
		}
		delete(t.nodes, rid)
		delete(t.children, rid)
		t.detach(n)
	}
	t.dirty = true
	return removed
}

// Fail marks id as failed and destructively removes its descendants;
// failing a commitment forfeits every sub-commitment but keeps the node
// itself visible. Returns the removed descendant ids. Absent id is a
// no-op returning nil.
func (t *Tree) Fail(id string) []string {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	n.Status = StatusFailed
	removed := t.Descendants(id)
	for _, rid := range removed {
		delete(t.nodes, rid)
		delete(t.children, rid)
	}
	delete(t.children, id)
	t.dirty = true
	return removed
}

// Recover flips a failed node back to active. Descendants removed by Fail
// stay gone. Returns whether the status changed.
func (t *Tree) Recover(id string) bool {
	n, ok := t.nodes[id]
	if !ok || n.Status != StatusFailed {
		return false
	}
	n.Status = StatusActive
	t.dirty = true
	return true
}

// Move re-parents id under newParentID (empty string makes it a root).
// The node's own subtree rides along untouched. Rejected without mutation
// when the target is the node itself or one of its descendants.
func (t *Tree) Move(id, newParentID string) error {
	n, ok := t.nodes[id]
	if !ok {
		return ErrNotFound
	}
	if newParentID == id {
		return ErrMoveSelf
	}
	if newParentID != "" {
		for _, d := range t.Descendants(id) {
			if d == newParentID {
				return ErrMoveDescendant
			}
		}
	}

	t.detach(n)
	n.ParentID = newParentID
	if n.IsRoot() {
		t.roots = append(t.roots, id)
	} else {
		t.children[newParentID] = append(t.children[newParentID], id)
	}
	t.dirty = true
	return nil
}

// SetTitle overwrites the node's title. Returns false for an absent id.
func (t *Tree) SetTitle(id, title string) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	n.Title = title
	t.dirty = true
	return true
}

// SetBody overwrites the node's body text. Returns false for an absent id.
func (t *Tree) SetBody(id, body string) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	n.Body = body
	t.dirty = true
	return true
}

// Flatten returns the canonical display order: pre-order depth-first from
// each root in roots order, descending into children in stored order.
// Depth is 0 for roots. The result is stable between mutations.
func (t *Tree) Flatten() []Row {
	var out []Row
	type frame struct {
		id    string
		depth int
	}
	var stack []frame
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{t.roots[i], 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := t.nodes[f.id]
		if !ok {
			continue
		}
		out = append(out, Row{Depth: f.depth, Node: n})
		kids := t.children[f.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], f.depth + 1})
		}
	}
	return out
}

// Dirty reports whether the tree has unsaved mutations.
func (t *Tree) Dirty() bool {
	return t.dirty
}

// MarkClean is called by storage after a successful save.
func (t *Tree) MarkClean() {
	t.dirty = false
}

// detach removes the node's id from its parent's child list, or from
// roots when it has no parent. Emptied child lists are pruned so repeated
// deletes do not leak entries.
func (t *Tree) detach(n *Node) {
	if n.IsRoot() {
		t.roots = remove(t.roots, n.ID)
		return
	}
	siblings := remove(t.children[n.ParentID], n.ID)
	if len(siblings) == 0 {
		delete(t.children, n.ParentID)
	} else {
		t.children[n.ParentID] = siblings
	}
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
