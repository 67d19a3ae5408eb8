// Package state holds the single current receipt view.
//
// A View is never modified after it is built. Loads are numbered when they
// start; a finished load replaces the view only if it started after the one
// currently shown, so the latest-issued refresh always ends up displayed no
// matter in which order overlapping loads finish.
package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/NaiduBagana/cam2cart/internal/receipt"
	"github.com/NaiduBagana/cam2cart/models"
)

type View struct {
	Receipt       receipt.Receipt
	Source        models.Source
	FailureReason string
	Generation    uint64
	LoadedAt      time.Time
}

func (v View) UsingDemoData() bool {
	return v.Source == models.SourceFallback
}

type Store struct {
	issued  atomic.Uint64
	mu      sync.Mutex
	current atomic.Pointer[View]
}

func NewStore() *Store {
	return &Store{}
}

// Begin numbers a new load. Generations start at 1.
func (s *Store) Begin() uint64 {
	return s.issued.Add(1)
}

// Commit installs v as the current view unless a load that started later has
// already been committed. It reports whether v was installed.
func (s *Store) Commit(generation uint64, v View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.current.Load(); cur != nil && cur.Generation >= generation {
		return false
	}
	v.Generation = generation
	s.current.Store(&v)
	return true
}

// Current returns the installed view, or false while no load has finished.
func (s *Store) Current() (View, bool) {
	v := s.current.Load()
	if v == nil {
		return View{}, false
	}
	return *v, true
}

// Issued is the generation of the most recently started load.
func (s *Store) Issued() uint64 {
	return s.issued.Load()
}
