package storage

import (
	"context"
	"errors"
	"testing"
)

func TestDiskStoreRoundtrip(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, "spots/s1/a.jpg", []byte("hello")); err != nil {
		t.Fatalf("put: %v", err)
	}
	b, err := s.Get(ctx, "spots/s1/a.jpg")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("get = %q", b)
	}

	if err := s.Delete(ctx, "spots/s1/a.jpg"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "spots/s1/a.jpg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
	if err := s.Delete(ctx, "spots/s1/a.jpg"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}

func TestDiskStoreRejectsTraversal(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"../outside", "..", "/etc/passwd"} {
		if err := s.Put(ctx, key, []byte("x")); err == nil {
			t.Errorf("Put(%q) accepted", key)
		}
		if _, err := s.Get(ctx, key); err == nil {
			t.Errorf("Get(%q) accepted", key)
		}
	}
}
