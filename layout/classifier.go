package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/pdfoutline/model"
)

// Stage names the classification step that produced a decision
type Stage string

const (
	StageTooShort  Stage = "too-short"
	StageBodyText  Stage = "body-text"
	StageLabel     Stage = "label"
	StagePattern   Stage = "pattern"
	StageStructure Stage = "structure"
	StageNone      Stage = "none"
)

// Decision is the outcome of classifying one region
type Decision struct {
	Level HeadingLevel
	Stage Stage

	// Rule is the name of the pattern or structure rule that fired, if any
	Rule string
}

// ClassifierConfig holds the rule tables used by the classifier
type ClassifierConfig struct {
	// Bounds are the per-level length and word count limits
	Bounds map[HeadingLevel]Bounds

	// LabelRules map detector labels to candidate levels
	LabelRules []LabelRule

	// PatternRules are checked in order; the first match wins
	PatternRules []PatternRule

	// StructureRules assign levels to heading-shaped text, in order
	StructureRules []StructureRule

	// StructuralLabel is the only label eligible for the structural fallback
	// Default: "text"
	StructuralLabel string

	// MinLength is the minimum text length considered at all
	// Default: 3
	MinLength int

	// BodyStarters are sentence-opening words that mark longer text as body text
	BodyStarters []string
}

// DefaultClassifierConfig returns the standard rule tables
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Bounds:          DefaultBounds(),
		LabelRules:      DefaultLabelRules(),
		PatternRules:    DefaultPatternRules(),
		StructureRules:  DefaultStructureRules(),
		StructuralLabel: "text",
		MinLength:       3,
		BodyStarters:    []string{"the ", "this ", "in ", "for ", "with ", "as "},
	}
}

// Classifier assigns heading levels to OCR'd layout regions by combining
// the detector label, lexical patterns and structural heuristics.
// A Classifier holds no mutable state and is safe for concurrent use.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with the default rule tables
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultClassifierConfig()}
}

// NewClassifierWithConfig creates a classifier with custom rule tables
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

func (c *Classifier) cfg() *ClassifierConfig {
	if c == nil {
		d := DefaultClassifierConfig()
		return &d
	}
	return &c.config
}

// DetermineHeadingLevel returns the heading level for a region's text.
func (c *Classifier) DetermineHeadingLevel(text, label string, bbox model.BBox, page int) HeadingLevel {
	return c.Classify(text, label, bbox, page).Level
}

// Classify runs the ordered classification steps and reports which one
// decided. The first acceptable result wins:
//
//  1. text that is too short or looks like body text is rejected
//  2. the detector label's level, if it passes validation
//  3. the first matching lexical pattern, if its level passes validation
//  4. structural heuristics, only for regions labeled "text"
//
// The bounding box does not influence the current rules.
func (c *Classifier) Classify(text, label string, bbox model.BBox, page int) Decision {
	cfg := c.cfg()

	if textLength(text) < cfg.MinLength {
		return Decision{Level: HeadingLevelUnknown, Stage: StageTooShort}
	}
	if c.IsLikelyBodyText(text) {
		return Decision{Level: HeadingLevelUnknown, Stage: StageBodyText}
	}

	if level := c.LevelForLabel(label); level != HeadingLevelUnknown {
		if c.ValidateHeadingCandidate(text, level) {
			return Decision{Level: level, Stage: StageLabel, Rule: label}
		}
	}

	if level, rule := c.classifyByPatterns(text, page); level != HeadingLevelUnknown {
		if c.ValidateHeadingCandidate(text, level) {
			return Decision{Level: level, Stage: StagePattern, Rule: rule}
		}
	}

	if label == cfg.StructuralLabel && HasHeadingStructure(text) {
		if level, rule := c.classifyByStructure(text, page); level != HeadingLevelUnknown {
			return Decision{Level: level, Stage: StageStructure, Rule: rule}
		}
	}

	return Decision{Level: HeadingLevelUnknown, Stage: StageNone}
}

// LevelForLabel maps a detector label to its candidate level
func (c *Classifier) LevelForLabel(label string) HeadingLevel {
	for _, rule := range c.cfg().LabelRules {
		if rule.Label == label {
			return rule.Level
		}
	}
	return HeadingLevelUnknown
}

// ValidateHeadingCandidate reports whether text fits the length and word
// count bounds of the proposed level. Unknown levels are never valid.
func (c *Classifier) ValidateHeadingCandidate(text string, level HeadingLevel) bool {
	bounds, ok := c.cfg().Bounds[level]
	if !ok {
		return false
	}
	return bounds.Allows(textLength(text), wordCount(text))
}

// IsLikelyBodyText reports whether text reads like running prose rather
// than a heading. Any one of these is sufficient:
//   - longer than 200 characters or more than 25 words
//   - ends with a period and is longer than 50 characters
//   - contains more than one sentence terminator
//   - opens with a common sentence starter and has more than 8 words
func (c *Classifier) IsLikelyBodyText(text string) bool {
	n := textLength(text)
	words := wordCount(text)

	if n > 200 || words > 25 {
		return true
	}
	if strings.HasSuffix(text, ".") && n > 50 {
		return true
	}
	if strings.Count(text, ".")+strings.Count(text, "!")+strings.Count(text, "?") > 1 {
		return true
	}

	lower := strings.ToLower(text)
	if hasAnyPrefix(lower, c.cfg().BodyStarters) && words > 8 {
		return true
	}
	return false
}

// classifyByPatterns returns the level of the first matching pattern rule
func (c *Classifier) classifyByPatterns(text string, page int) (HeadingLevel, string) {
	for _, rule := range c.cfg().PatternRules {
		if rule.Match(text, page) {
			return rule.Level, rule.Name
		}
	}
	return HeadingLevelUnknown, ""
}

// classifyByStructure returns the level of the first structure rule that
// yields one
func (c *Classifier) classifyByStructure(text string, page int) (HeadingLevel, string) {
	words := wordCount(text)
	for _, rule := range c.cfg().StructureRules {
		if level := rule.Level(text, page, words); level != HeadingLevelUnknown {
			return level, rule.Name
		}
	}
	return HeadingLevelUnknown, ""
}

// HasHeadingStructure reports whether text is shaped like a heading:
// a section number prefix, a trailing colon on short text, short all-caps
// text, or mostly capitalized words.
func HasHeadingStructure(text string) bool {
	if headingNumberPrefix.MatchString(text) {
		return true
	}

	n := textLength(text)
	if strings.HasSuffix(text, ":") && n > 5 && n < 80 {
		return true
	}

	if n > 3 && n < 50 && isAllCaps(text) {
		return true
	}

	return isTitleCase(text)
}

// isAllCaps reports whether text has more than two letters and none of
// them is lowercase
func isAllCaps(text string) bool {
	letters := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.IsLower(r) {
			return false
		}
		letters++
	}
	return letters > 2
}

// isTitleCase reports whether at least 70% of the first ten words that
// start with a letter are capitalized, with 2 to 8 such words in total
func isTitleCase(text string) bool {
	capitalized, total := 0, 0
	for _, word := range strings.Fields(text) {
		if total >= 10 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		if unicode.IsUpper(r) {
			capitalized++
		}
	}
	return total >= 2 && total <= 8 && float64(capitalized)/float64(total) >= 0.7
}

// textLength returns the length of text in characters
func textLength(text string) int {
	return utf8.RuneCountInString(text)
}

// wordCount counts space separated words the way the bounds are defined:
// the number of single spaces plus one.
func wordCount(text string) int {
	return strings.Count(text, " ") + 1
}
