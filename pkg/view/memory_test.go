package view

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	// Unknown sessions read as the empty view
	v, err := s.Get(ctx, "nobody")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !v.IsEmpty() {
		t.Error("unknown session should read as empty view")
	}
	if v.Explanation != DefaultPrompt {
		t.Errorf("Explanation = %q, want default prompt", v.Explanation)
	}

	// Put replaces the stored view
	if err := s.Put(ctx, "sess", FromStep(sampleStep())); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	v, err = s.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if v.IsEmpty() {
		t.Fatal("stored view reads as empty")
	}
	if v.Flow != 4 {
		t.Errorf("Flow = %v, want 4", v.Flow)
	}

	// Other sessions stay untouched
	other, _ := s.Get(ctx, "elsewhere")
	if !other.IsEmpty() {
		t.Error("unrelated session picked up a view")
	}

	// Reset restores the empty view
	if err := s.Reset(ctx, "sess"); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	v, _ = s.Get(ctx, "sess")
	if !v.IsEmpty() {
		t.Error("Reset should restore the empty view")
	}
	if v.Explanation != DefaultPrompt {
		t.Errorf("Explanation after reset = %q, want default prompt", v.Explanation)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	if err := s.Put(ctx, "sess", FromStep(sampleStep())); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	// Age the entry past its TTL.
	s.mu.Lock()
	entry := s.entries["sess"]
	entry.expiresAt = time.Now().Add(-time.Minute)
	s.entries["sess"] = entry
	s.mu.Unlock()

	v, err := s.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !v.IsEmpty() {
		t.Error("expired view should read as empty")
	}

	// Cleanup drops the expired entry
	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after Cleanup, want 0", s.Len())
	}
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	first := FromStep(sampleStep())
	if err := s.Put(ctx, "sess", first); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	second := sampleStep()
	second.Number = 2
	second.MaxFlow = 9
	if err := s.Put(ctx, "sess", FromStep(second)); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	v, _ := s.Get(ctx, "sess")
	if v.Step == nil || v.Step.Number != 2 {
		t.Errorf("Step.Number = %v, want 2", v.Step)
	}
	if v.Flow != 9 {
		t.Errorf("Flow = %v, want 9", v.Flow)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}
