package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/internal/util"
)

// nodesFile is the single sub-resource of an associative memory folder.
const nodesFile = "nodes.json"

// Node is one stored memory with its creation time.
type Node struct {
	core.MemoryRecord
	Created time.Time `json:"created"`
}

// AssociativeStream is the agent's long-term memory: an append-only stream
// of event, thought and chat records with a keyword index rebuilt on load.
// Retrieval is newest-first; reflection and conversation append to it.
type AssociativeStream struct {
	nodes []Node
	// kwIndex maps kind|keyword to node positions, oldest first.
	kwIndex map[string][]int
}

// NewAssociativeStream returns an empty stream.
func NewAssociativeStream() *AssociativeStream {
	return &AssociativeStream{kwIndex: make(map[string][]int)}
}

// LoadAssociative reads the stream from its snapshot folder.
func LoadAssociative(dir string) (*AssociativeStream, error) {
	b, err := os.ReadFile(filepath.Join(dir, nodesFile))
	if err != nil {
		return nil, fmt.Errorf("read associative memory: %w", err)
	}
	var nodes []Node
	if err := json.Unmarshal(b, &nodes); err != nil {
		return nil, fmt.Errorf("decode associative memory: %w", err)
	}
	s := NewAssociativeStream()
	for _, n := range nodes {
		s.nodes = append(s.nodes, n)
		s.indexNode(len(s.nodes) - 1)
	}
	return s, nil
}

// Save writes the stream to its snapshot folder.
func (s *AssociativeStream) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save associative memory: %w", err)
	}
	nodes := s.nodes
	if nodes == nil {
		nodes = []Node{}
	}
	b, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode associative memory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, nodesFile), b, 0o644); err != nil {
		return fmt.Errorf("save associative memory: %w", err)
	}
	return nil
}

// AddRecord appends a record, assigning its ID, and returns the stored copy.
func (s *AssociativeStream) AddRecord(rec core.MemoryRecord) core.MemoryRecord {
	if rec.ID == "" {
		rec.ID = util.NewID()
	}
	s.nodes = append(s.nodes, Node{MemoryRecord: rec, Created: time.Now().UTC()})
	s.indexNode(len(s.nodes) - 1)
	return rec
}

func (s *AssociativeStream) indexNode(i int) {
	n := s.nodes[i]
	for _, kw := range n.Keywords {
		key := kwKey(n.Kind, kw)
		s.kwIndex[key] = append(s.kwIndex[key], i)
	}
}

func kwKey(kind, keyword string) string {
	return kind + "|" + strings.ToLower(strings.TrimSpace(keyword))
}

// ByKeyword returns up to limit records of the given kind indexed under the
// keyword, newest first.
func (s *AssociativeStream) ByKeyword(kind, keyword string, limit int) []core.MemoryRecord {
	idx := s.kwIndex[kwKey(kind, keyword)]
	var out []core.MemoryRecord
	for i := len(idx) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.nodes[idx[i]].MemoryRecord)
	}
	return out
}

// Latest returns the n most recent records of the given kind, newest first.
func (s *AssociativeStream) Latest(kind string, n int) []core.MemoryRecord {
	var out []core.MemoryRecord
	for i := len(s.nodes) - 1; i >= 0 && len(out) < n; i-- {
		if s.nodes[i].Kind == kind {
			out = append(out, s.nodes[i].MemoryRecord)
		}
	}
	return out
}

// Len returns the total number of stored records.
func (s *AssociativeStream) Len() int { return len(s.nodes) }

var _ core.AssociativeMemory = (*AssociativeStream)(nil)
