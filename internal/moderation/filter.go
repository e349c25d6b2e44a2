// Package moderation rejects review text containing banned words.
//
// Matching is whole-token only: text is lowercased and split into
// alphanumeric-and-apostrophe runs, and each token is checked for exact
// membership in the banned set. A banned word broken up by punctuation
// tokenizes differently and is not matched.
package moderation

import (
	"bufio"
	_ "embed"
	"os"
	"strings"
	"sync"
)

//go:embed wordlist.txt
var embeddedWordlist string

// Filter holds an immutable banned-word set. The zero value matches nothing.
type Filter struct {
	banned map[string]struct{}
}

// NewFilter builds a Filter from explicit words. Entries are trimmed and
// lowercased; empty entries are dropped.
func NewFilter(words []string) *Filter {
	banned := make(map[string]struct{}, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		banned[word] = struct{}{}
	}
	return &Filter{banned: banned}
}

// NewFilterFromFile loads a newline-separated wordlist from disk.
func NewFilterFromFile(path string) (*Filter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewFilter(words), nil
}

var (
	defaultFilter     *Filter
	defaultFilterOnce sync.Once
)

// Default returns the process-wide filter backed by the embedded wordlist.
// Loaded once, immutable afterwards, so concurrent reads need no locking.
func Default() *Filter {
	defaultFilterOnce.Do(func() {
		defaultFilter = NewFilter(strings.Split(embeddedWordlist, "\n"))
	})
	return defaultFilter
}

// ContainsBannedWord reports whether any token of text is in the banned set.
// Empty text is always clean.
func (f *Filter) ContainsBannedWord(text string) bool {
	if text == "" || len(f.banned) == 0 {
		return false
	}

	lower := strings.ToLower(text)
	start := -1
	for i := 0; i <= len(lower); i++ {
		if i < len(lower) && isTokenByte(lower[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if _, ok := f.banned[lower[start:i]]; ok {
				return true
			}
			start = -1
		}
	}
	return false
}

// IsClean reports whether both title and body are free of banned words.
func (f *Filter) IsClean(title, body string) bool {
	return !f.ContainsBannedWord(title) && !f.ContainsBannedWord(body)
}

func isTokenByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '\''
}
