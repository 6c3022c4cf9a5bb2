package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"single terminated", "hello\n", []string{"hello\n"}},
		{"single unterminated", "hello", []string{"hello"}},
		{"multiple terminated", "a\nb\nc\n", []string{"a\n", "b\n", "c\n"}},
		{"final unterminated", "a\nb", []string{"a\n", "b"}},
		{"blank lines", "\n\n", []string{"\n", "\n"}},
		{"crlf kept intact", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.content))
		})
	}
}

func TestJoinRoundTrip(t *testing.T) {
	contents := []string{
		"",
		"one line\n",
		"no terminator",
		"a\nb\nc\n",
		"a\n\nb",
		"\n",
	}
	for _, content := range contents {
		assert.Equal(t, content, Join(SplitLines(content)))
	}
}

func TestSelectRange(t *testing.T) {
	lines := SplitLines("Line 1\nLine 2\nLine 3\n")

	assert.Equal(t, "Line 1\nLine 2\nLine 3\n", SelectRange(lines, 1, nil))
	assert.Equal(t, "Line 2\n", SelectRange(lines, 2, intPtr(2)))
	assert.Equal(t, "Line 2\nLine 3\n", SelectRange(lines, 2, nil))

	// End clamped to the line count.
	assert.Equal(t, "Line 3\n", SelectRange(lines, 3, intPtr(100)))

	// Start beyond the last line yields empty content.
	assert.Equal(t, "", SelectRange(lines, 4, nil))
	assert.Equal(t, "", SelectRange(nil, 1, nil))
}

func TestFingerprint(t *testing.T) {
	// SHA-256 of the empty string, the new-file sentinel.
	require.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Fingerprint(""))

	assert.Equal(t, Fingerprint("abc"), Fingerprint("abc"))
	assert.NotEqual(t, Fingerprint("abc"), Fingerprint("abd"))

	// 64 hex chars.
	assert.Len(t, Fingerprint("anything"), 64)
}
