package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/wmd/lang"
)

// isWordBoundary returns true if the rune delimits identifiers for completion
// purposes: whitespace, punctuation, operators, and string quotes.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/',
		'<', '>', '=', '!',
		',', ';', '"':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// an operator, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// inString reports whether offset lies inside an unterminated string literal
// of input.
func inString(input string, offset int) bool {
	return strings.Count(input[:offset], `"`)%2 == 1
}

// evalCandidates returns the keywords of the language followed by the names
// bound in s.
func evalCandidates(s *Session) []string {
	names := lang.Keywords()

	if s != nil {
		for _, name := range s.Names() {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	return names
}

// completions returns the fuzzy matches for the word at cursor within input,
// ranked best-first, along with the word's boundaries.
//
// Words inside string literals and numeric literals have no completions.
func completions(
	input string,
	cursor int,
	candidates []string,
) (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, ws, we := wordBounds(input, cursor)

	if word == "" || len(candidates) == 0 || inString(input, ws) {
		return nil, ws, we
	}

	if c := word[0]; c >= '0' && c <= '9' {
		return nil, ws, we
	}

	return fuzzy.Find(word, candidates), ws, we
}

// prefixCompletions returns the suffixes that complete the word ending at
// cursor to each candidate having that word as a prefix, and the length of
// the word. It serves the line-mode editor, which inserts completions
// literally rather than replacing the word.
func prefixCompletions(
	input string,
	cursor int,
	candidates []string,
) (suffixes []string, length int) {
	word, start, _ := wordBounds(input[:cursor], cursor)

	if word == "" || inString(input, start) {
		return nil, 0
	}

	for _, c := range candidates {
		if rest, ok := strings.CutPrefix(c, word); ok && rest != "" {
			suffixes = append(suffixes, rest)
		}
	}

	return suffixes, len(word)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	cycling bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := theme.hint.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		isSelected := cycling && i == selected
		rendered := renderCandidate(match, isSelected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Keywords are rendered in the keyword style.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base := theme.suggestion

	switch {
	case selected:
		base = theme.selected
	case lang.LookupKeyword(match.Str) != lang.TokenIdentifier:
		base = theme.keyword
	}

	bold := base.Bold(true)

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(bold.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
