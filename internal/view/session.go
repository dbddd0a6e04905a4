// Package view holds the presentation logic of the comparison page: the
// local selection, the sorted grid and the comparison table.
package view

import (
	"slices"
	"sync"
)

// Session is the per-page selection of product ids. It lives next to the
// store, not in it, and is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	selected []int
}

func NewSession() *Session {
	return &Session{selected: []int{}}
}

// Toggle selects id, or deselects it when already selected, and reports
// whether id is selected afterwards.
func (s *Session) Toggle(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return false
	}
	s.selected = append(s.selected, id)
	return true
}

// Selected returns the selected ids in selection order.
func (s *Session) Selected() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.selected)
}

func (s *Session) Has(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.selected, id)
}
