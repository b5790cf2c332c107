package relcards_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/relcards"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"collapses runs", "a  b\t\tc", "a b c"},
		{"trims", "  padded  ", "padded"},
		{"newlines and tabs", "line one\n\t line two", "line one line two"},
		{"whitespace only", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, relcards.NormalizeText(tt.in))
		})
	}
}

func TestClassifyTexts(t *testing.T) {
	t.Parallel()

	t.Run("short string is eligible only as category", func(t *testing.T) {
		t.Parallel()

		category, description := relcards.ClassifyTexts([]string{strings.Repeat("x", 10)})

		assert.Equal(t, strings.Repeat("x", 10), category)
		assert.Empty(t, description)
	})

	t.Run("long string is eligible only as description", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("y", 80)
		category, description := relcards.ClassifyTexts([]string{long})

		assert.Empty(t, category)
		assert.Equal(t, long, description)
	})

	t.Run("mid-length string is eligible as neither", func(t *testing.T) {
		t.Parallel()

		category, description := relcards.ClassifyTexts([]string{strings.Repeat("z", 50)})

		assert.Empty(t, category)
		assert.Empty(t, description)
	})

	t.Run("first match wins in document order", func(t *testing.T) {
		t.Parallel()

		category, description := relcards.ClassifyTexts([]string{
			"News",
			"Opinion",
			strings.Repeat("a", 60) + " first",
			strings.Repeat("b", 60) + " second",
		})

		assert.Equal(t, "News", category)
		assert.Equal(t, strings.Repeat("a", 60)+" first", description)
	})

	t.Run("too-short strings are skipped", func(t *testing.T) {
		t.Parallel()

		category, _ := relcards.ClassifyTexts([]string{"ab", "Tech"})

		assert.Equal(t, "Tech", category)
	})

	t.Run("empty input yields empty results", func(t *testing.T) {
		t.Parallel()

		category, description := relcards.ClassifyTexts(nil)

		assert.Empty(t, category)
		assert.Empty(t, description)
	})
}
