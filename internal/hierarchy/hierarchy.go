// Package hierarchy computes sibling ordering and materialized paths for
// questions nested under other questions. It is pure; callers load the
// current nodes, ask for a new layout and persist the returned changes.
package hierarchy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// PathSeparator joins ancestor ids in a materialized path.
const PathSeparator = "/"

var (
	ErrUnknownNode   = errors.New("unknown question")
	ErrUnknownParent = errors.New("parent question not in form")
	ErrCycle         = errors.New("question cannot be nested under itself or a descendant")
	ErrDuplicateNode = errors.New("question listed more than once")
	ErrInvalidOrder  = errors.New("order must be positive")
)

// Node is one question's position in the tree.
type Node struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Order    int
	Path     string
}

// Placement requests a parent and position for one node.
type Placement struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Order    int
}

// ChildPath returns the path of a node whose parent has parentPath.
func ChildPath(parentPath string, id uuid.UUID) string {
	if parentPath == "" {
		return id.String()
	}
	return parentPath + PathSeparator + id.String()
}

type groupKey struct {
	root   bool
	parent uuid.UUID
}

func keyOf(parent *uuid.UUID) groupKey {
	if parent == nil {
		return groupKey{root: true}
	}
	return groupKey{parent: *parent}
}

type tree struct {
	nodes map[uuid.UUID]*Node
	order []uuid.UUID
}

func newTree(nodes []Node) *tree {
	t := &tree{nodes: make(map[uuid.UUID]*Node, len(nodes)), order: make([]uuid.UUID, 0, len(nodes))}
	for i := range nodes {
		n := nodes[i]
		if n.ParentID != nil {
			p := *n.ParentID
			n.ParentID = &p
		}
		t.nodes[n.ID] = &n
		t.order = append(t.order, n.ID)
	}
	return t
}

func (t *tree) setParent(id uuid.UUID, parent *uuid.UUID) error {
	if parent == nil {
		t.nodes[id].ParentID = nil
		return nil
	}
	if *parent == id {
		return ErrCycle
	}
	if _, ok := t.nodes[*parent]; !ok {
		return ErrUnknownParent
	}
	p := *parent
	t.nodes[id].ParentID = &p
	return nil
}

// checkAcyclic walks every node up to the root, failing if a walk revisits a node.
func (t *tree) checkAcyclic() error {
	for _, id := range t.order {
		steps := 0
		cur := t.nodes[id]
		for cur.ParentID != nil {
			steps++
			if steps > len(t.nodes) {
				return ErrCycle
			}
			cur = t.nodes[*cur.ParentID]
		}
	}
	return nil
}

func (t *tree) members(key groupKey) []*Node {
	var out []*Node
	for _, id := range t.order {
		if keyOf(t.nodes[id].ParentID) == key {
			out = append(out, t.nodes[id])
		}
	}
	return out
}

// renumber assigns 1..n within a group. sortKey supplies the requested
// position for listed nodes; ties go to listed nodes, then to the old order.
func (t *tree) renumber(key groupKey, requested map[uuid.UUID]int) {
	group := t.members(key)
	sortKey := func(n *Node) int {
		if o, ok := requested[n.ID]; ok {
			return o
		}
		return n.Order
	}
	sort.SliceStable(group, func(i, j int) bool {
		ki, kj := sortKey(group[i]), sortKey(group[j])
		if ki != kj {
			return ki < kj
		}
		_, li := requested[group[i].ID]
		_, lj := requested[group[j].ID]
		if li != lj {
			return li
		}
		return group[i].Order < group[j].Order
	})
	for i, n := range group {
		n.Order = i + 1
	}
}

// rebuildPaths recomputes every path top-down from the roots.
func (t *tree) rebuildPaths() {
	children := make(map[uuid.UUID][]*Node)
	var roots []*Node
	for _, id := range t.order {
		n := t.nodes[id]
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		children[*n.ParentID] = append(children[*n.ParentID], n)
	}

	queue := make([]*Node, 0, len(t.nodes))
	for _, r := range roots {
		r.Path = ChildPath("", r.ID)
		queue = append(queue, r)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, c := range children[n.ID] {
			c.Path = ChildPath(n.Path, c.ID)
			queue = append(queue, c)
		}
	}
}

// diff returns the nodes whose parent, order or path differ from before.
func (t *tree) diff(before []Node) []Node {
	var changed []Node
	for _, old := range before {
		n := t.nodes[old.ID]
		if n.Order != old.Order || n.Path != old.Path || !sameParent(n.ParentID, old.ParentID) {
			changed = append(changed, *n)
		}
	}
	return changed
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Reorder applies placements to nodes. Each placement moves a node under its
// requested parent; every sibling group a node joins or leaves is then
// renumbered densely from 1, listed nodes ordered by their requested order.
// Paths are rebuilt for all affected nodes. Only changed nodes are returned.
func Reorder(nodes []Node, placements []Placement) ([]Node, error) {
	t := newTree(nodes)

	requested := make(map[uuid.UUID]int, len(placements))
	touched := map[groupKey]bool{}
	var touchedOrder []groupKey
	touch := func(k groupKey) {
		if !touched[k] {
			touched[k] = true
			touchedOrder = append(touchedOrder, k)
		}
	}

	for _, p := range placements {
		n, ok := t.nodes[p.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, p.ID)
		}
		if _, dup := requested[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, p.ID)
		}
		if p.Order < 1 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOrder, p.ID)
		}
		touch(keyOf(n.ParentID))
		if err := t.setParent(p.ID, p.ParentID); err != nil {
			return nil, fmt.Errorf("%w: %s", err, p.ID)
		}
		touch(keyOf(p.ParentID))
		requested[p.ID] = p.Order
	}

	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}

	// Root group first, then child groups in the order they were touched.
	sort.SliceStable(touchedOrder, func(i, j int) bool {
		return touchedOrder[i].root && !touchedOrder[j].root
	})
	for _, k := range touchedOrder {
		t.renumber(k, requested)
	}
	t.rebuildPaths()
	return t.diff(nodes), nil
}

// Move re-parents one node, appending it after the last member of its new
// sibling group and closing the gap it leaves behind. A nil parent moves the
// node to the root level.
func Move(nodes []Node, id uuid.UUID, newParent *uuid.UUID) ([]Node, error) {
	t := newTree(nodes)
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if sameParent(n.ParentID, newParent) {
		return nil, nil
	}

	oldKey := keyOf(n.ParentID)
	newKey := keyOf(newParent)
	last := 0
	for _, m := range t.members(newKey) {
		if m.Order > last {
			last = m.Order
		}
	}

	if err := t.setParent(id, newParent); err != nil {
		return nil, err
	}
	if err := t.checkAcyclic(); err != nil {
		return nil, err
	}

	n.Order = last + 1
	t.renumber(oldKey, nil)
	t.renumber(newKey, nil)
	t.rebuildPaths()
	return t.diff(nodes), nil
}
