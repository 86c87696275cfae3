package utils

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Save the Park", "save-the-park"},
		{"punctuation collapsed", "Help!!! Build... a School?", "help-build-a-school"},
		{"mixed case", "Save The Park", "save-the-park"},
		{"leading and trailing junk", "  --Save the Park-- ", "save-the-park"},
		{"accents folded", "Café für Ärzte", "cafe-fur-arzte"},
		{"numbers kept", "Top 10 Causes of 2025", "top-10-causes-of-2025"},
		{"non-latin collapsed", "募金 Campaign", "campaign"},
		{"empty input", "", ""},
		{"only punctuation", "!!! ???", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GenerateSlug(tc.input))
		})
	}
}

func TestGenerateSlug_Shape(t *testing.T) {
	inputs := []string{
		"Save the Park",
		"  weird -- spacing  everywhere   ",
		"ALL CAPS TITLE WITH SYMBOLS #$%",
		strings.Repeat("long title segment ", 10),
		"trailing hyphen victim " + strings.Repeat("a", 45) + " tail",
	}

	for _, input := range inputs {
		got := GenerateSlug(input)
		if got == "" {
			continue
		}
		assert.Regexp(t, slugShape, got, "input %q", input)
		assert.LessOrEqual(t, len(got), SlugMaxLength)
		assert.False(t, strings.HasPrefix(got, "-"))
		assert.False(t, strings.HasSuffix(got, "-"))
	}
}

func TestGenerateSlug_TruncationStripsExposedHyphen(t *testing.T) {
	// 49 chars then a hyphen boundary right at the cut
	input := strings.Repeat("a", 49) + " bcdef"
	got := GenerateSlug(input)

	assert.LessOrEqual(t, len(got), SlugMaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestGenerateSlug_IdempotentOnOwnOutput(t *testing.T) {
	inputs := []string{
		"Save the Park",
		"Café für Ärzte!!!",
		strings.Repeat("very long title ", 8),
	}
	for _, input := range inputs {
		once := GenerateSlug(input)
		assert.Equal(t, once, GenerateSlug(once), "input %q", input)
	}
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("free candidate returned bare", func(t *testing.T) {
		exists := func(context.Context, string) (bool, error) { return false, nil }
		got, err := UniqueSlug(ctx, "Save the Park", exists)
		require.NoError(t, err)
		assert.Equal(t, "save-the-park", got)
	})

	t.Run("suffix increments past taken values", func(t *testing.T) {
		taken := map[string]bool{"save-the-park": true, "save-the-park-1": true}
		exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

		got, err := UniqueSlug(ctx, "Save the Park", exists)
		require.NoError(t, err)
		assert.Equal(t, "save-the-park-2", got)
	})

	t.Run("empty title falls back", func(t *testing.T) {
		exists := func(context.Context, string) (bool, error) { return false, nil }
		got, err := UniqueSlug(ctx, "!!!", exists)
		require.NoError(t, err)
		assert.Equal(t, "campaign", got)
	})

	t.Run("store error propagates", func(t *testing.T) {
		boom := errors.New("connection reset")
		exists := func(context.Context, string) (bool, error) { return false, boom }
		_, err := UniqueSlug(ctx, "Save the Park", exists)
		assert.ErrorIs(t, err, boom)
	})
}
