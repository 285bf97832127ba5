package server

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/modelgraph/pkg/engine"
	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// entry is one live session. mu serializes every access to s.
type entry struct {
	mu      sync.Mutex
	id      string
	source  string // file the document came from, empty otherwise
	created time.Time
	s       *engine.Session
}

type registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*entry)}
}

func (r *registry) add(s *engine.Session, source string) *entry {
	e := &entry{
		id:      uuid.NewString(),
		source:  source,
		created: time.Now().UTC(),
		s:       s,
	}
	r.mu.Lock()
	r.entries[e.id] = e
	r.mu.Unlock()
	return e
}

func (r *registry) get(id string) (*entry, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "no session %q", id)
	}
	return e, nil
}

func (r *registry) remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "no session %q", id)
	}
	delete(r.entries, id)
	return nil
}

// list returns all entries ordered by creation time.
func (r *registry) list() []*entry {
	r.mu.RLock()
	out := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b *entry) int {
		if c := a.created.Compare(b.created); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
	return out
}

// reseed replaces the document of every session created from source and
// returns how many were updated.
func (r *registry) reseed(source string, doc model.Document) int {
	n := 0
	for _, e := range r.list() {
		if e.source != source {
			continue
		}
		e.mu.Lock()
		e.s.Reseed(doc)
		e.mu.Unlock()
		n++
	}
	return n
}
