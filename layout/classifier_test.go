package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/pdfoutline/model"
)

var testBox = model.NewBBox(100, 50, 800, 100)

func TestHeadingLevelString(t *testing.T) {
	tests := []struct {
		level    HeadingLevel
		expected string
	}{
		{HeadingLevelUnknown, "UNKNOWN"},
		{HeadingLevel1, "H1"},
		{HeadingLevel2, "H2"},
		{HeadingLevel3, "H3"},
		{HeadingLevel4, "H4"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("HeadingLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
		if got := ParseHeadingLevel(tt.expected); got != tt.level {
			t.Errorf("ParseHeadingLevel(%q) = %v, want %v", tt.expected, got, tt.level)
		}
	}

	if ParseHeadingLevel(" h2 ") != HeadingLevel2 {
		t.Error("ParseHeadingLevel should ignore case and surrounding space")
	}
	if HeadingLevelUnknown.IsHeading() || !HeadingLevel4.IsHeading() {
		t.Error("IsHeading() mismatch")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		label     string
		page      int
		wantLevel HeadingLevel
		wantStage Stage
	}{
		{"title label on first page", "Introduction", "title", 1, HeadingLevel1, StageLabel},
		{"too short", "ab", "title", 1, HeadingLevelUnknown, StageTooShort},
		{"long sentence", "The quick brown fox jumps over the lazy dog and continues running through the forest for many more sentences.", "text", 1, HeadingLevelUnknown, StageBodyText},
		{"section vocabulary", "Background", "figure", 2, HeadingLevel2, StagePattern},
		{"numbered subsection", "2.1 Data Collection", "figure", 3, HeadingLevel2, StagePattern},
		{"numbered item", "1. Overview", "figure", 2, HeadingLevel3, StagePattern},
		{"month date", "March 15, 2024", "figure", 2, HeadingLevel4, StagePattern},
		{"bullet", "- Budget item", "footer", 2, HeadingLevel4, StagePattern},
		{"timeline prefers H4", "Timeline: Q3", "figure", 2, HeadingLevel4, StagePattern},
		{"chapter", "Chapter 3 Results", "figure", 4, HeadingLevel1, StagePattern},
		{"phase keyword", "Phase II Deployment", "header", 5, HeadingLevel1, StagePattern},
		{"long text on first page", "Annual Report on Regional Water Quality", "figure", 1, HeadingLevel1, StagePattern},
		{"long text on later page", "Annual Report on Regional Water Quality", "figure", 2, HeadingLevelUnknown, StageNone},
		{"pattern fails validation", "Summary", "figure", 2, HeadingLevelUnknown, StageNone},
		{"text label keeps H2", "Summary", "text", 2, HeadingLevel2, StageLabel},
		{"short title falls through", "Short", "title", 2, HeadingLevelUnknown, StageNone},
		{"all caps text region", "DATA", "text", 2, HeadingLevel4, StageStructure},
		{"all caps non-text region", "DATA", "figure", 2, HeadingLevelUnknown, StageNone},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, tt.label, testBox, tt.page)
			if got.Level != tt.wantLevel {
				t.Errorf("Classify(%q, %q, page %d).Level = %v, want %v", tt.text, tt.label, tt.page, got.Level, tt.wantLevel)
			}
			if got.Stage != tt.wantStage {
				t.Errorf("Classify(%q, %q, page %d).Stage = %v, want %v", tt.text, tt.label, tt.page, got.Stage, tt.wantStage)
			}
			if level := c.DetermineHeadingLevel(tt.text, tt.label, testBox, tt.page); level != got.Level {
				t.Errorf("DetermineHeadingLevel() = %v, Classify() = %v", level, got.Level)
			}
		})
	}
}

func TestNilClassifierUsesDefaults(t *testing.T) {
	var c *Classifier
	if got := c.DetermineHeadingLevel("Introduction", "title", testBox, 1); got != HeadingLevel1 {
		t.Errorf("nil classifier level = %v, want H1", got)
	}
}

func TestLevelForLabel(t *testing.T) {
	tests := []struct {
		label string
		want  HeadingLevel
	}{
		{"title", HeadingLevel1},
		{"text", HeadingLevel2},
		{"list", HeadingLevel3},
		{"paragraph_title", HeadingLevelUnknown},
		{"figure", HeadingLevelUnknown},
		{"table", HeadingLevelUnknown},
		{"header", HeadingLevelUnknown},
		{"footer", HeadingLevelUnknown},
		{"", HeadingLevelUnknown},
	}

	c := NewClassifier()
	for _, tt := range tests {
		if got := c.LevelForLabel(tt.label); got != tt.want {
			t.Errorf("LevelForLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestIsLikelyBodyText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"heading", "Introduction", false},
		{"too long", strings.Repeat("a", 201), true},
		{"too many words", strings.TrimSpace(strings.Repeat("w ", 26)), true},
		{"long sentence", "Water quality improved in most of the monitored basins.", true},
		{"short sentence", "Done.", false},
		{"two terminators", "Results. Discussion.", true},
		{"question and exclamation", "Wow! Really?", true},
		{"long sentence starter", "This section describes the approach we took for the analysis", true},
		{"short sentence starter", "This Section", false},
		{"starter needs the space", "Therefore we conclude with one two three four five six", false},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsLikelyBodyText(tt.text); got != tt.want {
				t.Errorf("IsLikelyBodyText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidateHeadingCandidateBounds(t *testing.T) {
	c := NewClassifier()

	for level, b := range DefaultBounds() {
		t.Run(level.String(), func(t *testing.T) {
			accept := []string{
				strings.Repeat("a", b.MinLength),
				strings.Repeat("a", b.MaxLength),
			}
			reject := []string{
				strings.Repeat("a", b.MinLength-1),
				strings.Repeat("a", b.MaxLength+1),
				strings.TrimSpace(strings.Repeat("a ", b.MaxWords+1)),
			}

			for _, text := range accept {
				if !c.ValidateHeadingCandidate(text, level) {
					t.Errorf("ValidateHeadingCandidate(len %d, %v) = false, want true", len(text), level)
				}
			}
			for _, text := range reject {
				if c.ValidateHeadingCandidate(text, level) {
					t.Errorf("ValidateHeadingCandidate(len %d, words %d, %v) = true, want false", len(text), wordCount(text), level)
				}
			}
		})
	}

	if c.ValidateHeadingCandidate("Introduction", HeadingLevelUnknown) {
		t.Error("unknown level must never validate")
	}
}

func TestHasHeadingStructure(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"1. Introduction", true},
		{"2.3. Sampling", true},
		{"IV. Results", true},
		{"A. Scope", true},
		{"Notes on the data:", true},
		{"SUMMARY OF FINDINGS", true},
		{"Key Performance Indicators", true},
		{"the quick brown fox", false},
		{"ab:", false},
		{"Key", false},
	}

	for _, tt := range tests {
		if got := HasHeadingStructure(tt.text); got != tt.want {
			t.Errorf("HasHeadingStructure(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestClassifyByStructure(t *testing.T) {
	tests := []struct {
		text string
		page int
		want HeadingLevel
	}{
		{"Annual Water Quality Report", 1, HeadingLevel1},
		{"1. Introduction", 2, HeadingLevel1},
		{"2. Analysis of the regional results for the year", 2, HeadingLevel2},
		{"Key dates:", 2, HeadingLevel3},
		{"Notes on the survey data:", 2, HeadingLevel4},
		{"Scope", 2, HeadingLevel4},
		{"Scope of the Work", 2, HeadingLevel3},
		{"Scope of the Work for the Next Year", 2, HeadingLevel2},
		{"One Two Three Four Five Six Seven Eight Nine Ten Eleven", 2, HeadingLevelUnknown},
	}

	c := NewClassifier()
	for _, tt := range tests {
		if got, _ := c.classifyByStructure(tt.text, tt.page); got != tt.want {
			t.Errorf("classifyByStructure(%q, %d) = %v, want %v", tt.text, tt.page, got, tt.want)
		}
	}
}

func TestPatternRulePrecedence(t *testing.T) {
	rank := map[HeadingLevel]int{
		HeadingLevel1: 0,
		HeadingLevel4: 1,
		HeadingLevel3: 2,
		HeadingLevel2: 3,
	}

	last := -1
	for _, rule := range DefaultPatternRules() {
		r, ok := rank[rule.Level]
		if !ok {
			t.Fatalf("rule %s has unexpected level %v", rule.Name, rule.Level)
		}
		if r < last {
			t.Errorf("rule %s (%v) is out of H1, H4, H3, H2 order", rule.Name, rule.Level)
		}
		last = r
	}
}

func TestCustomLabelRules(t *testing.T) {
	cfg := DefaultClassifierConfig()
	cfg.LabelRules = append(cfg.LabelRules, LabelRule{Label: "paragraph_title", Level: HeadingLevel2})
	c := NewClassifierWithConfig(cfg)

	if got := c.DetermineHeadingLevel("Sampling Design", "paragraph_title", testBox, 3); got != HeadingLevel2 {
		t.Errorf("custom label rule level = %v, want H2", got)
	}
}
