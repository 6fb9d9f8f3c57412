package store

import (
	"fmt"
	"sync"

	"github.com/latinrect/latinrect/rectangle"
)

// Memory is a process-local Store backed by a sync.Map, safe for
// concurrent use by multiple workers. It serves tests; its results do
// not outlive the process.
type Memory struct {
	entries sync.Map // key(r,n) -> rectangle.CountResult
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Lookup(r, n int) (rectangle.CountResult, bool, error) {
	v, ok := m.entries.Load(key(r, n))
	if !ok {
		return rectangle.CountResult{}, false, nil
	}
	return v.(rectangle.CountResult), true, nil
}

func (m *Memory) Store(r, n int, result rectangle.CountResult) error {
	m.entries.Store(key(r, n), result)
	return nil
}

func key(r, n int) string {
	return fmt.Sprintf("%d,%d", r, n)
}
