package geoloc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLocator(handler http.HandlerFunc) (*IPLocator, func()) {
	srv := httptest.NewServer(handler)
	l := &IPLocator{
		client:   &http.Client{Timeout: time.Second},
		endpoint: srv.URL,
	}
	return l, srv.Close
}

func TestLocateSuccess(t *testing.T) {
	l, closeSrv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":52.52,"lon":13.405}`))
	})
	defer closeSrv()

	p, err := l.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if p.Latitude != 52.52 || p.Longitude != 13.405 {
		t.Errorf("point = %+v, want Berlin", p)
	}
}

func TestLocateServiceFailure(t *testing.T) {
	l, closeSrv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail"}`))
	})
	defer closeSrv()

	if _, err := l.Locate(context.Background()); err == nil {
		t.Fatal("expected error for failed lookup status")
	}
}

func TestLocateHTTPError(t *testing.T) {
	l, closeSrv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer closeSrv()

	if _, err := l.Locate(context.Background()); err == nil {
		t.Fatal("expected error for HTTP 503")
	}
}

func TestLocateRespectsContext(t *testing.T) {
	l, closeSrv := newTestLocator(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	defer closeSrv()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := l.Locate(ctx); err == nil {
		t.Fatal("expected error after context timeout")
	}
}

// stubLocator lets Resolve be tested without a network.
type stubLocator struct {
	p   Point
	err error
}

func (s stubLocator) Locate(context.Context) (Point, error) { return s.p, s.err }

func TestResolveSuccess(t *testing.T) {
	got := Resolve(context.Background(), stubLocator{p: Point{40.7, -74.0}})
	if got.Fallback {
		t.Error("unexpected fallback on success")
	}
	if got.Advisory != "" {
		t.Errorf("unexpected advisory %q", got.Advisory)
	}
	if got.Point.Latitude != 40.7 {
		t.Errorf("point = %+v", got.Point)
	}
}

func TestResolveFallback(t *testing.T) {
	got := Resolve(context.Background(), stubLocator{err: errors.New("permission denied")})
	if !got.Fallback {
		t.Fatal("expected fallback")
	}
	if got.Point != Greenwich {
		t.Errorf("fallback point = %+v, want Greenwich", got.Point)
	}
	if got.Advisory == "" {
		t.Error("expected a non-empty advisory")
	}
}
