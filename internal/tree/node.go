// Package tree implements the in-memory commitment forest: an arena of
// nodes keyed by id plus explicit root and parent->children adjacency,
// so no node ever owns a pointer to another.
package tree

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a node.
type Status string

const (
	StatusActive Status = "active"
	StatusFailed Status = "failed"

	// StatusCompleted is reserved for a future "internalized as habit"
	// feature. No operation produces it, but stored data containing it
	// must survive a load/save cycle.
	StatusCompleted Status = "completed"
)

// Node is a single tracked commitment. Identity (ID, CreatedAt) is fixed
// at creation; everything else is mutated through Tree operations.
type Node struct {
	ID       string `toml:"id"`
	ParentID string `toml:"parent_id"` // empty string means root
	Title    string `toml:"title"`
	Body     string `toml:"body"`

	CreatedAt time.Time `toml:"created_at"`
	Status    Status    `toml:"status"`

	// StreakDays is a status-tracking counter carried in the data file.
	// Nothing updates it yet; it round-trips so older files keep it.
	StreakDays int `toml:"streak_days"`
}

func newNode(title, body, parentID string) *Node {
	return &Node{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
		Status:    StatusActive,
	}
}

// IsRoot reports whether the node sits at the top level of the forest.
func (n *Node) IsRoot() bool {
	return n.ParentID == ""
}

// DaysActive returns the number of whole days between the node's creation
// and now, never negative. The caller supplies now so display code and
// tests share one code path.
func (n *Node) DaysActive(now time.Time) int {
	days := int(now.Sub(n.CreatedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
