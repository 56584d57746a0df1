package moderation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// The dictionary uses specific words to avoid partial collisions (e.g., "he" inside "The")
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	dictionary := []string{"badger", "snake", "mushroom"}
	mod, err := NewModerator(dictionary, replacementChar)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple word and space preservation",
			input:    "The badger is here",
			expected: "The ****** is here",
		},
		{
			name:     "Multiple occurrences and preserved spacing",
			input:    "badger badger badger",
			expected: "****** ****** ******",
		},
		{
			name:     "Leet speak and internal punctuation",
			input:    "Look at B.4.d.g.€r !",
			expected: "Look at ********** !",
		},
		{
			name:     "Uppercase and extreme noise",
			input:    "S-N-A-K-E is a B.A.D.G.E.R",
			expected: "********* is a ***********",
		},
		{
			name:     "Accents and special characters (UTF-8)",
			input:    "Un été avec un badger",
			expected: "Un été avec un ******",
		},
		{
			name:     "Clean content stays untouched",
			input:    "nothing to censor here",
			expected: "nothing to censor here",
		},
		{
			name:     "Empty content",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, mod.Censor(tt.input))
		})
	}
}

func TestNewModeratorFromFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# forbidden words, one per line\nbadger\n\n  snake  \n"
	req.NoError(os.WriteFile(path, []byte(content), 0o600))

	mod, err := NewModeratorFromFile(path, replacementChar)
	req.NoError(err)

	req.Equal("a ****** and a *****", mod.Censor("a badger and a snake"))
}

func TestNewModeratorFromFile_MissingFile(t *testing.T) {
	req := require.New(t)

	_, err := NewModeratorFromFile("/nonexistent/words.txt", replacementChar)

	req.Error(err)
}

func BenchmarkModerator_Censor(b *testing.B) {
	mod, err := NewModerator([]string{"badger", "snake", "mushroom"}, replacementChar)
	if err != nil {
		b.Fatal(err)
	}
	input := "A b.a.d.g.e.r and a $nake walked past a mu5hroom on a long sentence of ordinary words"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mod.Censor(input)
	}
}
