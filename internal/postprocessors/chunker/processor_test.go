package chunker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		p := New(WithChunkSize(500))
		if p.ChunkSize() != 500 {
			t.Errorf("expected chunkSize 500, got %d", p.ChunkSize())
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		p := New(WithOverlap(100))
		if p.Overlap() != 100 {
			t.Errorf("expected overlap 100, got %d", p.Overlap())
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap != 25 {
			t.Errorf("expected overlap reduced to 25, got %d", p.overlap)
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestSplit_ShortContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n\t ", ""},
		{"trimmed", "  AVEN offers a HELOC card.  ", "AVEN offers a HELOC card."},
		{"exactly chunk size", strings.Repeat("a", 100), strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.content, 100, 20)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 chunk, got %d", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got[0])
			}
		})
	}
}

func TestSplit_SentencePrefixExample(t *testing.T) {
	content := "A. B. " + strings.Repeat("x", 1000)

	got, err := Split(content, 500, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(got))
	}
	for i, c := range got {
		if utf8.RuneCountInString(c) > 500 {
			t.Errorf("chunk %d has %d characters", i, utf8.RuneCountInString(c))
		}
	}
	// The early '.' lies before the midpoint, so the first window is not snapped.
	if utf8.RuneCountInString(got[0]) != 500 {
		t.Errorf("expected first chunk of 500 characters, got %d", utf8.RuneCountInString(got[0]))
	}
}

func TestSplit_SnapsToSentenceBreak(t *testing.T) {
	// 70 chars of sentence, then filler with no break.
	sentence := strings.Repeat("s", 69) + "."
	content := sentence + strings.Repeat("y", 100)

	got, err := Split(content, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0] != sentence {
		t.Errorf("expected first chunk to end at the period, got %q", got[0])
	}
	// Next window starts 10 characters before the break.
	if !strings.HasPrefix(got[1], strings.Repeat("s", 9)+".") {
		t.Errorf("expected second chunk to start inside the overlap, got %q", got[1][:12])
	}
}

func TestSplit_SnapsToNewline(t *testing.T) {
	line := strings.Repeat("n", 80)
	content := line + "\n" + strings.Repeat("z", 100)

	got, err := Split(content, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0] != line {
		t.Errorf("expected first chunk to end at the newline, got %q", got[0])
	}
}

func TestSplit_IgnoresBreakBeforeMidpoint(t *testing.T) {
	content := strings.Repeat("a", 30) + "." + strings.Repeat("b", 200)

	got, err := Split(content, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if utf8.RuneCountInString(got[0]) != 100 {
		t.Errorf("expected unsnapped first chunk of 100, got %d", utf8.RuneCountInString(got[0]))
	}
}

func TestSplit_OverlapBetweenChunks(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 3000; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	content := b.String()

	got, err := Split(content, 1000, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Windows start at 0, 800, 1600, 2400; 2400+1000 passes the end and the
	// next start 3200 terminates the scan.
	if len(got) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		prev := got[i-1]
		if !strings.HasPrefix(got[i], prev[len(prev)-200:]) {
			t.Errorf("chunk %d does not overlap the previous by 200 characters", i)
		}
	}
	if got[3] != content[2400:] {
		t.Errorf("unexpected tail chunk")
	}
}

func TestSplit_Terminates(t *testing.T) {
	// Breaks just past the midpoint with an overlap larger than half the
	// window would move the start backwards without the progress guard.
	unit := strings.Repeat("w", 51) + "."
	content := strings.Repeat(unit, 40)

	got, err := Split(content, 100, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected chunks")
	}
	for i, c := range got {
		if utf8.RuneCountInString(c) > 100 {
			t.Errorf("chunk %d exceeds chunk size", i)
		}
	}
}

func TestSplit_CountsRunes(t *testing.T) {
	content := strings.Repeat("é", 150)

	got, err := Split(content, 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, c := range got {
		if !utf8.ValidString(c) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
	}
	if utf8.RuneCountInString(got[0]) != 100 {
		t.Errorf("expected 100 runes, got %d", utf8.RuneCountInString(got[0]))
	}
}

func TestSplit_InvalidConfig(t *testing.T) {
	cases := []struct{ size, overlap int }{
		{0, 0},
		{100, 100},
		{100, 150},
		{100, -1},
	}
	for _, c := range cases {
		_, err := Split("text", c.size, c.overlap)
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("size=%d overlap=%d: expected ErrInvalidConfig, got %v", c.size, c.overlap, err)
		}
	}
}

func TestProcessor_Process(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	doc := &domain.Document{
		URL:     "https://www.aven.com/support",
		Content: strings.Repeat("Support is available every day. ", 10),
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("expected index %d, got %d", i, c.Index)
		}
		if c.SourceURL != doc.URL {
			t.Errorf("expected source %q, got %q", doc.URL, c.SourceURL)
		}
		if !strings.HasSuffix(c.Text, ".") && i < len(chunks)-1 {
			t.Errorf("chunk %d should end at a sentence: %q", i, c.Text)
		}
	}
}

func TestProcessor_ProcessEmpty(t *testing.T) {
	p := New()

	chunks, err := p.Process(context.Background(), &domain.Document{URL: "u"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Text != "" {
		t.Errorf("expected a single empty chunk, got %+v", chunks)
	}
}
