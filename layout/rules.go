package layout

import (
	"regexp"
	"strings"
)

// Bounds limits the length and word count a heading of a given level may
// have. Length is measured in characters, words are space separated.
type Bounds struct {
	MinLength int
	MaxLength int
	MaxWords  int
}

// Allows reports whether text of the given length and word count fits
func (b Bounds) Allows(length, words int) bool {
	return length >= b.MinLength && length <= b.MaxLength && words <= b.MaxWords
}

// LabelRule maps a detector label to a candidate heading level
type LabelRule struct {
	Label string
	Level HeadingLevel
}

// PatternRule is one lexical signal. Match receives the raw text and the
// 1-based page number.
type PatternRule struct {
	Name  string
	Level HeadingLevel
	Match func(text string, page int) bool
}

// StructureRule maps a heading-shaped text to a level during the structural
// fallback. A rule returning HeadingLevelUnknown from Level defers to the
// next rule.
type StructureRule struct {
	Name  string
	Level func(text string, page, words int) HeadingLevel
}

var (
	chapterPattern    = regexp.MustCompile(`(?i)^(chapter|section|part|phase)\s+[IVX0-9]`)
	subsectionPattern = regexp.MustCompile(`^\d+\.\d+`)
	numberedPattern   = regexp.MustCompile(`^\d+\.?\s`)
	letterListPattern = regexp.MustCompile(`(?i)^[a-z]\)\s`)
	numericDate       = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	monthDate         = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`)
	timelinePattern   = regexp.MustCompile(`(?i)\btimeline:\s*`)

	// Section numbering that makes text look like a heading at all
	headingNumberPrefix = regexp.MustCompile(`^\s*(?:\d+\.|\d+\.\d+\.?|[IVX]+\.?|[A-Z]\.)\s`)

	// Section numbering of a major section (H1/H2)
	majorSectionPrefix = regexp.MustCompile(`^\s*(?:\d+\.|\d+\s+[A-Z]|[IVX]+\.)\s`)
)

var h1Prefixes = []string{
	"abstract",
	"introduction",
	"executive summary",
	"conclusion",
	"appendix",
	"summary",
}

var h1Phases = []string{"phase i", "phase ii", "phase iii"}

var h2Vocabulary = map[string]bool{
	"background":      true,
	"methodology":     true,
	"results":         true,
	"discussion":      true,
	"references":      true,
	"bibliography":    true,
	"acknowledgments": true,
}

var h2Prefixes = []string{"timeline:", "evaluation", "funding"}

// DefaultBounds returns the length/word limits per heading level
func DefaultBounds() map[HeadingLevel]Bounds {
	return map[HeadingLevel]Bounds{
		HeadingLevel1: {MinLength: 10, MaxLength: 150, MaxWords: 20},
		HeadingLevel2: {MinLength: 5, MaxLength: 120, MaxWords: 15},
		HeadingLevel3: {MinLength: 3, MaxLength: 100, MaxWords: 12},
		HeadingLevel4: {MinLength: 3, MaxLength: 80, MaxWords: 10},
	}
}

// DefaultLabelRules returns the detector label table. Labels not listed,
// such as figure, table, header or footer, map to HeadingLevelUnknown.
func DefaultLabelRules() []LabelRule {
	return []LabelRule{
		{Label: "title", Level: HeadingLevel1},
		{Label: "text", Level: HeadingLevel2},
		{Label: "list", Level: HeadingLevel3},
	}
}

// DefaultPatternRules returns the lexical rules in precedence order: H1
// first, then H4, H3 and H2.
func DefaultPatternRules() []PatternRule {
	return []PatternRule{
		{Name: "h1-keyword", Level: HeadingLevel1, Match: func(text string, _ int) bool {
			lower := strings.ToLower(text)
			return hasAnyPrefix(lower, h1Prefixes) || containsAny(lower, h1Phases)
		}},
		{Name: "h1-chapter", Level: HeadingLevel1, Match: func(text string, _ int) bool {
			return chapterPattern.MatchString(text)
		}},
		{Name: "h1-first-page", Level: HeadingLevel1, Match: func(text string, page int) bool {
			return page == 1 && textLength(text) > 20
		}},

		{Name: "h4-date", Level: HeadingLevel4, Match: func(text string, _ int) bool {
			return numericDate.MatchString(text) || monthDate.MatchString(text) || timelinePattern.MatchString(text)
		}},
		{Name: "h4-bullet", Level: HeadingLevel4, Match: func(text string, _ int) bool {
			return (strings.HasPrefix(text, "-") || strings.HasPrefix(text, "*")) && textLength(text) < 50
		}},

		{Name: "h3-numbered", Level: HeadingLevel3, Match: func(text string, _ int) bool {
			return numberedPattern.MatchString(text) || letterListPattern.MatchString(text)
		}},
		{Name: "h3-colon", Level: HeadingLevel3, Match: func(text string, _ int) bool {
			n := textLength(text)
			return strings.HasSuffix(text, ":") && n > 5 && n < 60
		}},

		{Name: "h2-keyword", Level: HeadingLevel2, Match: func(text string, _ int) bool {
			lower := strings.ToLower(text)
			return h2Vocabulary[lower] || hasAnyPrefix(lower, h2Prefixes)
		}},
		{Name: "h2-subsection", Level: HeadingLevel2, Match: func(text string, _ int) bool {
			return subsectionPattern.MatchString(text)
		}},
	}
}

// DefaultStructureRules returns the level assignment used for text that
// passed the heading-structure check, in precedence order.
func DefaultStructureRules() []StructureRule {
	return []StructureRule{
		{Name: "first-page-title", Level: func(text string, page, words int) HeadingLevel {
			if page == 1 && textLength(text) > 20 && words >= 3 {
				return HeadingLevel1
			}
			return HeadingLevelUnknown
		}},
		{Name: "major-section", Level: func(text string, _, words int) HeadingLevel {
			if !majorSectionPrefix.MatchString(text) {
				return HeadingLevelUnknown
			}
			if words <= 6 {
				return HeadingLevel1
			}
			return HeadingLevel2
		}},
		{Name: "colon", Level: func(text string, _, words int) HeadingLevel {
			if !strings.HasSuffix(text, ":") {
				return HeadingLevelUnknown
			}
			if words <= 4 {
				return HeadingLevel3
			}
			return HeadingLevel4
		}},
		{Name: "word-count", Level: func(_ string, _, words int) HeadingLevel {
			switch {
			case words <= 3:
				return HeadingLevel4
			case words <= 6:
				return HeadingLevel3
			case words <= 10:
				return HeadingLevel2
			default:
				return HeadingLevelUnknown
			}
		}},
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
