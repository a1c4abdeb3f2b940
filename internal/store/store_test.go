package store

import (
	"testing"
	"time"

	"github.com/Annallisboa/QA-app/internal/model"
)

var defaults = model.MapState{Center: model.LatLon{Lat: 48.9, Lon: 2.4}, Zoom: 10}

func testStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s := New(ttl, defaults)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewSessionStartsAtDefaults(t *testing.T) {
	s := testStore(t, time.Minute)

	id := s.NewSession()
	st, ok := s.Get(id)
	if !ok {
		t.Fatal("expected session to exist")
	}
	if st.Center != defaults.Center || st.Zoom != defaults.Zoom {
		t.Errorf("expected defaults, got %+v", st)
	}
	if st.Markers == nil || len(st.Markers) != 0 {
		t.Errorf("expected empty non-nil markers, got %#v", st.Markers)
	}
	if s.SessionCount() != 1 {
		t.Errorf("expected 1 session, got %d", s.SessionCount())
	}
}

func TestUnknownSessionGetsDefaults(t *testing.T) {
	s := testStore(t, time.Minute)

	st, ok := s.Get("missing")
	if ok {
		t.Error("expected unknown session to report false")
	}
	if st.Zoom != defaults.Zoom {
		t.Errorf("expected default zoom, got %d", st.Zoom)
	}
}

func TestPutAndResetKeepsCenter(t *testing.T) {
	s := testStore(t, time.Minute)
	id := s.NewSession()

	answered := model.MapState{
		Center:  model.LatLon{Lat: 51.5, Lon: -0.1},
		Zoom:    9,
		Markers: []model.Marker{{LatLon: model.LatLon{Lat: 51.5, Lon: -0.1}, Name: "y"}},
	}
	s.Put(id, answered)

	got, _ := s.Get(id)
	if len(got.Markers) != 1 || got.Zoom != 9 {
		t.Fatalf("expected stored state, got %+v", got)
	}

	reset := s.Reset(id)
	if len(reset.Markers) != 0 {
		t.Errorf("expected markers cleared, got %d", len(reset.Markers))
	}
	if reset.Center != answered.Center || reset.Zoom != 9 {
		t.Errorf("expected center and zoom kept, got %+v", reset)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	s := testStore(t, time.Minute)
	a, b := s.NewSession(), s.NewSession()
	if a == b {
		t.Fatal("expected distinct session ids")
	}

	s.Put(a, model.MapState{Zoom: 3})
	if st, _ := s.Get(b); st.Zoom != defaults.Zoom {
		t.Errorf("session b changed: %+v", st)
	}
}

func TestReturnedStateIsACopy(t *testing.T) {
	s := testStore(t, time.Minute)
	id := s.NewSession()
	s.Put(id, model.MapState{Markers: []model.Marker{{Name: "a"}}})

	st, _ := s.Get(id)
	st.Markers[0].Name = "changed"

	again, _ := s.Get(id)
	if again.Markers[0].Name != "a" {
		t.Error("mutating a returned state must not change the store")
	}
}

func TestSessionsExpire(t *testing.T) {
	s := testStore(t, 20*time.Millisecond)
	id := s.NewSession()

	time.Sleep(60 * time.Millisecond)
	if _, ok := s.Get(id); ok {
		t.Error("expected session to expire")
	}
}
