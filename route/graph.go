package route

import (
	"fmt"
	"sort"

	"github.com/BaSui01/agentchat/types"
)

// Topology is the static agent-adjacency graph used as the fallback candidate
// pool. It is built in one pass after all agent identities exist and frozen;
// agents hold names into this structure rather than references to each other,
// so mutual reachability never creates ownership cycles.
type Topology struct {
	adj map[string][]string
}

// NewTopology builds a topology from agent name to neighbor names. Every
// neighbor must itself be a key of the map.
func NewTopology(neighbors map[string][]string) (*Topology, error) {
	adj := make(map[string][]string, len(neighbors))
	for name, ns := range neighbors {
		for _, n := range ns {
			if _, ok := neighbors[n]; !ok {
				return nil, types.NewError(types.ErrCodeInvalidConfig,
					fmt.Sprintf("agent %q lists unknown neighbor %q", name, n))
			}
			if n == name {
				return nil, types.NewError(types.ErrCodeInvalidConfig,
					fmt.Sprintf("agent %q lists itself as a neighbor", name))
			}
		}
		adj[name] = append([]string(nil), ns...)
	}
	return &Topology{adj: adj}, nil
}

// Contains reports whether name is a node of the topology.
func (t *Topology) Contains(name string) bool {
	_, ok := t.adj[name]
	return ok
}

// Neighbors returns a copy of the neighbor list of name, preserving the
// configured order. Unknown names yield an empty list.
func (t *Topology) Neighbors(name string) []string {
	ns := t.adj[name]
	out := make([]string, len(ns))
	copy(out, ns)
	return out
}

// Names returns all node names in sorted order.
func (t *Topology) Names() []string {
	out := make([]string, 0, len(t.adj))
	for name := range t.adj {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
