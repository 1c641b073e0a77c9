//go:build integration

package cache

import (
	"testing"
	"time"
)

func setupCache(t *testing.T) (*Cache, func()) {
	t.Helper()

	c, err := New("file::memory:")
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	return c, func() { c.Close() }
}

func TestCache_SetAndGet(t *testing.T) {
	c, teardown := setupCache(t)
	defer teardown()

	body := []byte("<html>rendered</html>")
	if err := c.Set("/blog/hello", body, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get("/blog/hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("expected cached body to round-trip, got: %s", got)
	}
}

func TestCache_MissReturnsNil(t *testing.T) {
	c, teardown := setupCache(t)
	defer teardown()

	got, err := c.Get("/never-stored")
	if err != nil {
		t.Fatalf("a miss must not be an error, got: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on a miss, got: %s", got)
	}
}

func TestCache_ExpiredRowIsAMiss(t *testing.T) {
	c, teardown := setupCache(t)
	defer teardown()

	if err := c.Set("/blog/old", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get("/blog/old")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected an expired row to read as a miss, got: %s", got)
	}
}

func TestCache_Flush(t *testing.T) {
	c, teardown := setupCache(t)
	defer teardown()

	for _, path := range []string{"/", "/blog/one", "/blog/two"} {
		if err := c.Set(path, []byte("page"), time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := c.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, path := range []string{"/", "/blog/one", "/blog/two"} {
		got, err := c.Get(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected %s to be gone after flush", path)
		}
	}
}
