// Package jsonx recovers a single JSON value from free-form model output.
//
// Generative models wrap payloads in prose, markdown fences, or example
// snippets; the payload itself may contain brace characters inside string
// literals. Extraction therefore runs two passes: a fenced-block pass
// (fenced content is trusted as the payload) and a string-aware
// balanced-bracket scan. Every failure path returns a tagged result; this
// package never panics on malformed input.
package jsonx

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Source identifies which extraction pass produced a value.
type Source string

const (
	SourceCodeFence    Source = "code_fence"
	SourceBracketMatch Source = "bracket_match"
)

// Result is the outcome of one extraction attempt. Value is set only when
// OK is true and the consumed substring parsed as valid JSON.
type Result struct {
	OK     bool
	Value  any
	Source Source
	Err    error
}

// ErrNoJSON is returned when the input contains no parseable JSON value.
var ErrNoJSON = errors.New("no JSON value found in text")

// fencePattern matches markdown code fences with or without a language tag.
var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Extract locates and parses a single JSON object or array embedded in text.
func Extract(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{OK: false, Err: ErrNoJSON}
	}

	// Pass 1: fenced code blocks. A model that fences JSON is signaling
	// "this exact span is the payload", so fenced content wins over any
	// bracket heuristic.
	for _, match := range fencePattern.FindAllStringSubmatch(text, -1) {
		candidate := strings.TrimSpace(match[1])
		if candidate == "" {
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(candidate), &value); err == nil {
			return Result{OK: true, Value: value, Source: SourceCodeFence}
		}
	}

	// Pass 2: balanced-bracket scan.
	if value, ok := scanBalanced(text); ok {
		return Result{OK: true, Value: value, Source: SourceBracketMatch}
	}

	return Result{OK: false, Err: ErrNoJSON}
}

// scanBalanced walks the text tracking nesting depth plus string/escape
// state, so brackets inside string literals never miscount. On a parse
// failure the scan resumes just past the failed closing bracket, which
// handles texts that mention an example JSON before the real payload.
// Iterative by design: no stack growth on inputs with many false starts.
func scanBalanced(text string) (any, bool) {
	offset := 0
	for offset < len(text) {
		start, openChar, closeChar := firstBracket(text, offset)
		if start < 0 {
			return nil, false
		}

		depth := 0
		inString := false
		escaped := false
		closedAt := -1

	scan:
		for i := start; i < len(text); i++ {
			c := text[i]
			switch {
			case escaped:
				escaped = false
			case inString && c == '\\':
				escaped = true
			case c == '"':
				inString = !inString
			case inString:
				// Brackets inside string literals do not count.
			case c == openChar:
				depth++
			case c == closeChar:
				depth--
				if depth == 0 {
					closedAt = i
					break scan
				}
			}
		}

		if closedAt < 0 {
			// Unbalanced from this start token through end of text;
			// nothing later can close it either.
			return nil, false
		}

		var value any
		if err := json.Unmarshal([]byte(text[start:closedAt+1]), &value); err == nil {
			return value, true
		}
		offset = closedAt + 1
	}
	return nil, false
}

// firstBracket returns the position and bracket pair of the first '{' or
// '[' at or after offset, whichever occurs first.
func firstBracket(text string, offset int) (pos int, openChar, closeChar byte) {
	objIdx := strings.IndexByte(text[offset:], '{')
	arrIdx := strings.IndexByte(text[offset:], '[')

	switch {
	case objIdx < 0 && arrIdx < 0:
		return -1, 0, 0
	case arrIdx < 0 || (objIdx >= 0 && objIdx < arrIdx):
		return offset + objIdx, '{', '}'
	default:
		return offset + arrIdx, '[', ']'
	}
}

// trailingCommaPattern matches a comma directly before a closing bracket.
var trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)

// TryFixJSON repairs the most common model mistake, a trailing comma before
// a closing bracket. Apply only after a raw extraction already failed:
// running it blindly could corrupt valid JSON whose string values contain
// comma-bracket sequences.
func TryFixJSON(text string) string {
	return trailingCommaPattern.ReplaceAllString(text, "$1")
}
