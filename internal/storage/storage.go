// Package storage reads and writes the commitment forest as a single TOML
// file in the user's data directory. Saving always rewrites the whole
// file; there is no partial update.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"focustree/internal/tree"
)

// FormatVersion is written into the meta block of every saved file.
const FormatVersion = "1.0"

// FileName is the data file name inside the data directory.
const FileName = "data.toml"

// Meta is the file-level metadata block.
type Meta struct {
	Version      string    `toml:"version"`
	CreatedAt    time.Time `toml:"created_at"`
	LastModified time.Time `toml:"last_modified"`
}

type fileData struct {
	Meta  Meta         `toml:"meta"`
	Nodes []*tree.Node `toml:"nodes"`
}

// DefaultDir returns the per-user data directory
// ($XDG_DATA_HOME/focustree, falling back to ~/.local/share/focustree)
// and creates it if needed.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(base, "focustree")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// Load reads the tree from path. A missing file yields an empty tree; a
// file that exists but does not parse is an error the caller should treat
// as fatal.
func Load(path string) (*tree.Tree, error) {
	var data fileData
	if _, err := toml.DecodeFile(path, &data); err != nil {
		if os.IsNotExist(err) {
			return tree.New(), nil
		}
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}

	t := tree.New()
	for _, n := range data.Nodes {
		if n.Status == "" {
			n.Status = tree.StatusActive
		}
		t.Insert(n)
	}
	return t, nil
}

// Save rewrites path with the current tree. A clean tree is skipped
// entirely. The file is written to a temp sibling and renamed so a crash
// mid-write cannot truncate existing data. The meta created_at of an
// existing file is preserved.
func Save(path string, t *tree.Tree) error {
	if !t.Dirty() {
		return nil
	}

	now := time.Now()
	meta := Meta{
		Version:      FormatVersion,
		CreatedAt:    now,
		LastModified: now,
	}
	var prev fileData
	if _, err := toml.DecodeFile(path, &prev); err == nil && !prev.Meta.CreatedAt.IsZero() {
		meta.CreatedAt = prev.Meta.CreatedAt
	}

	// Flatten order keeps node records grouped by subtree, so saved files
	// diff stably and reload preserves sibling order.
	rows := t.Flatten()
	data := fileData{Meta: meta, Nodes: make([]*tree.Node, 0, len(rows))}
	for _, row := range rows {
		data.Nodes = append(data.Nodes, row.Node)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".data-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := toml.NewEncoder(tmp)
	if err := enc.Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("failed to set data file permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	t.MarkClean()
	return nil
}
