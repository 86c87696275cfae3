package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// SlugMaxLength caps slugs so they stay usable in shared URLs
const SlugMaxLength = 50

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug derives a URL-safe identifier from a campaign title.
//
// Steps:
//  1. Fold accented characters to ASCII ("Ärzte" -> "Arzte")
//  2. Lowercase
//  3. Collapse every run of non-alphanumeric characters to a single hyphen
//  4. Trim leading/trailing hyphens
//  5. Truncate to SlugMaxLength, trimming any hyphen exposed by the cut
//
// Pure function: same input always yields the same candidate.
func GenerateSlug(input string) string {
	ascii := foldDiacritics(input)

	lower := strings.ToLower(strings.TrimSpace(ascii))

	hyphenated := nonAlnumRun.ReplaceAllString(lower, "-")

	trimmed := strings.Trim(hyphenated, "-")

	if len(trimmed) > SlugMaxLength {
		trimmed = strings.TrimRight(trimmed[:SlugMaxLength], "-")
	}

	return trimmed
}

// UniqueSlug resolves slug collisions by appending -1, -2, ... until the
// exists predicate reports a free value. The application-level loop gives
// friendly suffixes; the database unique constraint remains the final
// arbiter under concurrent creation (the repository retries on conflict).
func UniqueSlug(ctx context.Context, title string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := GenerateSlug(title)
	if base == "" {
		// Title had no alphanumeric content at all
		base = "campaign"
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// foldDiacritics maps common accented Latin characters to their ASCII base.
// Anything not in the map passes through untouched and is later collapsed
// to a hyphen by GenerateSlug if it is not alphanumeric.
func foldDiacritics(input string) string {
	mappings := map[rune]rune{
		'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a', 'ā': 'a',
		'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e',
		'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i',
		'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o', 'ō': 'o',
		'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u',
		'ý': 'y', 'ÿ': 'y',
		'ñ': 'n', 'ç': 'c', 'đ': 'd', 'ß': 's',

		'Á': 'A', 'À': 'A', 'Â': 'A', 'Ä': 'A', 'Ã': 'A', 'Å': 'A', 'Ā': 'A',
		'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E', 'Ē': 'E',
		'Í': 'I', 'Ì': 'I', 'Î': 'I', 'Ï': 'I', 'Ī': 'I',
		'Ó': 'O', 'Ò': 'O', 'Ô': 'O', 'Ö': 'O', 'Õ': 'O', 'Ō': 'O',
		'Ú': 'U', 'Ù': 'U', 'Û': 'U', 'Ü': 'U', 'Ū': 'U',
		'Ý': 'Y',
		'Ñ': 'N', 'Ç': 'C', 'Đ': 'D',
	}

	result := make([]rune, 0, len(input))
	for _, r := range input {
		if replacement, ok := mappings[r]; ok {
			result = append(result, replacement)
		} else {
			result = append(result, r)
		}
	}

	return string(result)
}
