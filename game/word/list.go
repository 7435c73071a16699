package word

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed resources/default_words.txt
var defaultWords string

// Format is the layout of a daily word list resource.
// It is always configured, the parser never guesses it from the content.
type Format int

const (
	// FormatPlain is one word per line.
	FormatPlain Format = iota
	// FormatNumbered is one "<index>: <word>" entry per line.
	FormatNumbered
)

var ErrMalformedLine = errors.New("malformed word list line")

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatNumbered:
		return "numbered"
	default:
		return "unknown"
	}
}

// ParseFormat parses the configured name of a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return FormatPlain, nil
	case "numbered":
		return FormatNumbered, nil
	default:
		return FormatPlain, fmt.Errorf("unknown word list format %q", s)
	}
}

// DefaultWords returns the embedded word list used when the configured
// daily word resource can not be loaded.
func DefaultWords() []string {
	words, _ := ParseWords(strings.NewReader(defaultWords), FormatPlain)
	return words
}

// ParseWords reads a newline-delimited word list.
// Entries are trimmed and blank lines are skipped. With FormatNumbered only
// the part after "<index>:" is kept.
func ParseWords(r io.Reader, f Format) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if f == FormatNumbered {
			w, err := numbered(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if w == "" {
				continue
			}
			text = w
		}
		words = append(words, text)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// numbered extracts the word of a "<index>: <word>" entry.
func numbered(text string) (string, error) {
	idx, w, ok := strings.Cut(text, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q has no index", ErrMalformedLine, text)
	}
	if _, err := strconv.Atoi(strings.TrimSpace(idx)); err != nil {
		return "", fmt.Errorf("%w: %q has a non numeric index", ErrMalformedLine, text)
	}
	return strings.TrimSpace(w), nil
}
