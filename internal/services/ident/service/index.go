package service

import (
	"sync"

	"github.com/coder/hnsw"

	"timeclock/internal/services/ident/domain"
)

// searchWidth is how many graph neighbors we pull before exact rescoring
const searchWidth = 8

// hnswIndex keeps an in-memory approximate nearest neighbor graph over
// the active candidate set. Keys are positions in the candidate slice
// because one employee can have several descriptors.
type hnswIndex struct {
	mu    sync.RWMutex
	m     int
	graph *hnsw.Graph[int]
	cands []domain.Candidate
	stale bool
}

func newHNSWIndex(m int) *hnswIndex {
	return &hnswIndex{m: m, stale: true}
}

// invalidate forces a rebuild on the next lookup
func (h *hnswIndex) invalidate() {
	h.mu.Lock()
	h.stale = true
	h.mu.Unlock()
}

// ensure rebuilds the graph from cands when the index is stale
func (h *hnswIndex) ensure(cands []domain.Candidate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stale && len(cands) == len(h.cands) {
		return
	}

	g := hnsw.NewGraph[int]()
	g.M = h.m
	g.Ml = 1.0 / float64(h.m)
	g.Distance = hnsw.EuclideanDistance
	for i, c := range cands {
		if len(c.Descriptor) != domain.DescriptorDim {
			continue
		}
		g.Add(hnsw.MakeNode(i, []float32(c.Descriptor)))
	}

	h.graph = g
	h.cands = cands
	h.stale = false
}

// nearest rescores the graph neighbors with exact distances so ties
// resolve to the lowest employee id, same as the linear scan
func (h *hnswIndex) nearest(probe domain.Descriptor, threshold float64) domain.Match {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.graph == nil {
		return domain.NoMatch()
	}
	neighbors := h.graph.Search([]float32(probe), searchWidth)

	best := domain.NoMatch()
	for _, n := range neighbors {
		c := h.cands[n.Key]
		d := domain.EuclideanDistance(probe, c.Descriptor)
		if d > threshold {
			continue
		}
		if !best.Matched || d < best.Distance ||
			(d == best.Distance && c.EmployeeID < best.EmployeeID) {
			best = domain.Match{EmployeeID: c.EmployeeID, Distance: d, Matched: true}
		}
	}
	return best
}
