package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	t.Run("short text stays in one chunk", func(t *testing.T) {
		chunks := SplitText("short", 100, 10)
		if len(chunks) != 1 || chunks[0] != "short" {
			t.Errorf("chunks = %v, want [short]", chunks)
		}
	})

	t.Run("chunks overlap to preserve context", func(t *testing.T) {
		text := strings.Repeat("abcdefghij", 10) // 100 chars
		chunks := SplitText(text, 40, 10)

		if len(chunks) < 3 {
			t.Fatalf("len(chunks) = %d, want at least 3", len(chunks))
		}
		for i := 0; i < len(chunks)-1; i++ {
			tail := chunks[i][len(chunks[i])-10:]
			if !strings.HasPrefix(chunks[i+1], tail) {
				t.Errorf("chunk %d does not start with the tail of chunk %d", i+1, i)
			}
		}
	})

	t.Run("multibyte runes never split", func(t *testing.T) {
		text := strings.Repeat("日本語テキスト", 30)
		chunks := SplitText(text, 50, 5)
		for i, chunk := range chunks {
			if !isValidUTF8(chunk) {
				t.Errorf("chunk %d contains a broken rune", i)
			}
		}
	})

	t.Run("overlap larger than chunk size falls back", func(t *testing.T) {
		text := strings.Repeat("x", 100)
		chunks := SplitText(text, 10, 20)
		if len(chunks) != 10 {
			t.Errorf("len(chunks) = %d, want 10 non-overlapping chunks", len(chunks))
		}
	})
}

func isValidUTF8(s string) bool {
	for _, r := range s {
		if r == '�' {
			return false
		}
	}
	return true
}
