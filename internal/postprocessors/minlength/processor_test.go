package minlength

import (
	"context"
	"strings"
	"testing"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

func TestProcessor_Process(t *testing.T) {
	p := New(50)
	chunks := []domain.Chunk{
		{Index: 0, Text: strings.Repeat("a", 50)},
		{Index: 1, Text: "too short"},
		{Index: 2, Text: "   " + strings.Repeat("b", 49) + "   "},
		{Index: 3, Text: strings.Repeat("c", 120)},
	}

	kept, err := p.Process(context.Background(), &domain.Document{}, chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(kept) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(kept))
	}
	if kept[0].Index != 0 || kept[1].Index != 3 {
		t.Errorf("expected original indexes 0 and 3, got %d and %d", kept[0].Index, kept[1].Index)
	}
	if chunks[1].Text != "too short" {
		t.Error("input slice must not be modified")
	}
}

func TestProcessor_CountsRunes(t *testing.T) {
	p := New(5)

	kept, _ := p.Process(context.Background(), nil, []domain.Chunk{{Text: "ééééé"}})

	if len(kept) != 1 {
		t.Errorf("expected 5 two-byte runes to pass a minimum of 5")
	}
}

func TestNew(t *testing.T) {
	if New(-1).minLength != DefaultMinLength {
		t.Error("expected default for negative minimum")
	}
	if New(0).minLength != 0 {
		t.Error("expected zero minimum to be kept")
	}
	if New(10).Name() != "min_length" {
		t.Error("unexpected name")
	}
}
