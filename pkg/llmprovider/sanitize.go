package llmprovider

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// SanitizeJSON repairs the common ways LLMs mangle JSON output: fenced code
// blocks (with or without a language tag), prose around the document, and
// truncation mid-object. Returns the cleaned JSON document, or an error when
// no valid document can be recovered.
func SanitizeJSON(text string) (string, error) {
	s := strings.TrimSpace(text)

	// Strip a leading fence line and a trailing fence independently:
	// truncated responses often keep the opening fence but lose the closing one.
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	s = strings.TrimSpace(s)

	// Drop any prose before the document.
	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return "", fmt.Errorf("no JSON document found in response")
	}
	s = s[start:]

	if gjson.Valid(s) {
		return s, nil
	}

	// Trailing junk after a complete document: cut at the last position where
	// every brace/bracket was balanced.
	if prefix, ok := balancedPrefix(s); ok && gjson.Valid(prefix) {
		return prefix, nil
	}

	// Truncated mid-object: cut back to the last closing brace/bracket, drop
	// the partial tail, close every still-open scope, and re-validate.
	if repaired, ok := repairTruncated(s); ok && gjson.Valid(repaired) {
		return repaired, nil
	}

	return "", fmt.Errorf("response is not valid JSON and no valid prefix exists")
}

// balancedPrefix returns the longest prefix of s ending at a position where
// all braces and brackets are closed. String literals and escapes are honored
// so delimiters inside values do not count.
func balancedPrefix(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	last := -1

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				last = i
			}
			if depth < 0 {
				return "", false
			}
		}
	}

	if last == -1 {
		return "", false
	}
	return s[:last+1], true
}

// repairTruncated cuts s at its last closing brace/bracket outside a string,
// discards the partial tail, and appends closers for every scope still open
// at that point. Returns false when there is no closing delimiter to anchor
// on, which means no valid prefix exists.
func repairTruncated(s string) (string, bool) {
	var stack []byte
	inString := false
	escaped := false
	last := -1
	var stackAtLast []byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			stack = stack[:len(stack)-1]
			last = i
			stackAtLast = append(stackAtLast[:0], stack...)
		}
	}

	if last == -1 {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString(s[:last+1])
	for i := len(stackAtLast) - 1; i >= 0; i-- {
		if stackAtLast[i] == '{' {
			sb.WriteByte('}')
		} else {
			sb.WriteByte(']')
		}
	}
	return sb.String(), true
}
