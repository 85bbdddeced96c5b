// Package correct normalizes OCR output before it is classified.
//
// A [Corrector] applies Unicode NFKC normalization, a table of literal
// substitutions (OCR character confusions, garbled words, common
// misspellings and dash-for-colon labels), whitespace cleanup and, in
// aggressive mode, regular-expression repairs of section numbering and
// ordinals. Correction never fails; unknown text passes through unchanged.
package correct

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Options configures a Corrector
type Options struct {
	// Aggressive enables the regular-expression numbering fixes
	// Default: false
	Aggressive bool

	// Confusions enables the context-free character confusion table
	// ("rn" -> "m", "cl" -> "d", ...)
	// Default: true
	Confusions bool

	// Normalize applies Unicode NFKC normalization first, folding
	// ligatures and full-width forms
	// Default: true
	Normalize bool
}

// DefaultOptions returns the standard correction settings
func DefaultOptions() Options {
	return Options{
		Confusions: true,
		Normalize:  true,
	}
}

// Corrector rewrites OCR text. Configure it with Add or LoadCustom before
// use; Correct is safe for concurrent use once configuration is done.
type Corrector struct {
	opts  Options
	fixes map[string]string
	order []string
}

// New creates a corrector with the built-in tables
func New(opts Options) *Corrector {
	c := &Corrector{
		opts:  opts,
		fixes: make(map[string]string),
	}

	tables := [][]Fix{wordFixes, spellingFixes, punctuationFixes}
	if opts.Confusions {
		tables = append(tables, confusionFixes)
	}
	for _, table := range tables {
		for _, f := range table {
			// The first entry for a key wins
			if _, exists := c.fixes[f.Wrong]; !exists {
				c.fixes[f.Wrong] = f.Correct
			}
		}
	}
	c.sortKeys()
	return c
}

// Default creates a corrector with DefaultOptions
func Default() *Corrector {
	return New(DefaultOptions())
}

// Add registers or replaces a literal substitution. Empty keys are ignored.
func (c *Corrector) Add(wrong, correct string) {
	if wrong == "" {
		return
	}
	c.fixes[wrong] = correct
	c.sortKeys()
}

// Len returns the number of literal substitutions
func (c *Corrector) Len() int {
	return len(c.fixes)
}

// sortKeys orders substitutions longest key first so whole-word fixes run
// before the character confusions they contain. Equal lengths sort
// lexically to keep the order deterministic.
func (c *Corrector) sortKeys() {
	c.order = c.order[:0]
	for k := range c.fixes {
		c.order = append(c.order, k)
	}
	sort.Slice(c.order, func(i, j int) bool {
		a, b := c.order[i], c.order[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}

// LoadCustom reads "wrong=correct" lines from path. Lines without '=' and
// lines starting with '#' are skipped.
func (c *Corrector) LoadCustom(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corrections file: %w", err)
	}
	defer f.Close()

	if err := c.ReadCustom(f); err != nil {
		return fmt.Errorf("read corrections file %s: %w", path, err)
	}
	return nil
}

// ReadCustom reads "wrong=correct" lines from r
func (c *Corrector) ReadCustom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		wrong, correct, ok := strings.Cut(line, "=")
		if !ok || wrong == "" {
			continue
		}
		c.fixes[wrong] = correct
	}
	c.sortKeys()
	return scanner.Err()
}

// Correct returns the normalized form of text
func (c *Corrector) Correct(text string) string {
	if text == "" {
		return text
	}
	if c == nil {
		return collapseSpace(text)
	}

	result := text
	if c.opts.Normalize {
		result = norm.NFKC.String(result)
	}

	for _, wrong := range c.order {
		if strings.Contains(result, wrong) {
			result = strings.ReplaceAll(result, wrong, c.fixes[wrong])
		}
	}

	result = collapseSpace(result)

	if c.opts.Aggressive {
		for _, fix := range aggressiveFixes {
			result = fix.pattern.ReplaceAllString(result, fix.replacement)
		}
	}

	return result
}

// collapseSpace replaces runs of whitespace with one space and trims the ends
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
