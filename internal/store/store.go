// Package store keeps per-session UI state in memory. Nothing is persisted;
// idle sessions expire.
package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"github.com/Annallisboa/QA-app/internal/model"
)

// Store maps session IDs to their map state.
type Store struct {
	cache    *ttlcache.Cache[string, model.MapState]
	defaults model.MapState
}

// New creates a store whose sessions expire after ttl of inactivity.
func New(ttl time.Duration, defaults model.MapState) *Store {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, model.MapState](ttl),
	)
	go cache.Start()

	return &Store{cache: cache, defaults: copyState(defaults)}
}

// Close stops the expiry loop.
func (s *Store) Close() error {
	s.cache.Stop()
	return nil
}

// NewSession registers a session initialised to the defaults.
func (s *Store) NewSession() string {
	id := uuid.NewString()
	s.cache.Set(id, copyState(s.defaults), ttlcache.DefaultTTL)
	return id
}

// Get returns the session's state, or the defaults for an unknown session.
func (s *Store) Get(id string) (model.MapState, bool) {
	item := s.cache.Get(id)
	if item == nil {
		return copyState(s.defaults), false
	}
	return copyState(item.Value()), true
}

// Reset clears the markers before a new question while keeping the current
// center and zoom until the next answer replaces them.
func (s *Store) Reset(id string) model.MapState {
	st, _ := s.Get(id)
	st.Markers = []model.Marker{}
	s.cache.Set(id, st, ttlcache.DefaultTTL)
	return copyState(st)
}

// Put replaces the session's state.
func (s *Store) Put(id string, st model.MapState) {
	s.cache.Set(id, copyState(st), ttlcache.DefaultTTL)
}

// SessionCount returns the number of live sessions.
func (s *Store) SessionCount() int {
	return s.cache.Len()
}

func copyState(st model.MapState) model.MapState {
	markers := make([]model.Marker, len(st.Markers))
	copy(markers, st.Markers)
	st.Markers = markers
	return st
}
