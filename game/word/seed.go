package word

import (
	"errors"
	"unicode/utf16"
)

// ErrEmptyWordList is returned when a daily word is requested from an empty list.
var ErrEmptyWordList = errors.New("word list is empty")

// Seed maps a date string to a reproducible non-negative integer.
//
// The accumulator is a rolling polynomial hash (acc*31 + c) over the UTF-16
// code units of date, truncated to a signed 32-bit integer after every step.
// The absolute value is taken in 64 bits so that math.MinInt32 stays positive.
func Seed(date string) int64 {
	var acc int32
	for _, c := range utf16.Encode([]rune(date)) {
		acc = acc*31 + int32(c)
	}
	s := int64(acc)
	if s < 0 {
		s = -s
	}
	return s
}

// Index returns the position of the word of `date` in a list of n words.
func Index(date string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptyWordList
	}
	return int(Seed(date) % int64(n)), nil
}

// Select returns the word of the day for date.
// The result only depends on date and on the content and order of words.
func Select(date string, words []string) (string, error) {
	i, err := Index(date, len(words))
	if err != nil {
		return "", err
	}
	return words[i], nil
}
