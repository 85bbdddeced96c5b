package correct

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCorrect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"clean heading", "Introduction", "Introduction"},
		{"garbled introduction", "lntroduction", "Introduction"},
		{"garbled word", "Future vvork", "Future work"},
		{"technical term", "Backaround", "Background"},
		{"spelling", "Seperate thier data", "Seperate their data"},
		{"dash label", "timeline- Q3", "Timeline: Q3"},
		{"whitespace", "  Key   Findings \n", "Key Findings"},
		{"ligature", "ﬁnal report", "final report"},
		{"full width", "Ｒｅｓｕｌｔｓ", "Results"},
		{"confusion", "Modern methods", "Modem methods"},
	}

	c := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Correct(tt.input); got != tt.want {
				t.Errorf("Correct(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCorrectWithoutConfusions(t *testing.T) {
	c := New(Options{Normalize: true})
	if got := c.Correct("Modern methods"); got != "Modern methods" {
		t.Errorf("Correct() = %q, want text unchanged", got)
	}
	if got := c.Correct("lntroduction"); got != "Introduction" {
		t.Errorf("Correct() = %q, want word fixes still applied", got)
	}
}

func TestCorrectAggressive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Section 2 1", "Section 2.1"},
		{"2 . 3 Scope", "2.3 Scope"},
		{"the 1lst item", "the 1st item"},
		{"Introduction", "Introduction"},
	}

	aggressive := New(Options{Aggressive: true})
	plain := New(Options{})
	for _, tt := range tests {
		if got := aggressive.Correct(tt.input); got != tt.want {
			t.Errorf("aggressive Correct(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := plain.Correct("Section 2 1"); got != "Section 2 1" {
		t.Errorf("non-aggressive Correct() = %q, want unchanged", got)
	}
}

func TestReadCustom(t *testing.T) {
	c := New(Options{})
	before := c.Len()

	input := "# site specific\nfoo=bar\nno delimiter\n=ignored\nthier=there\n"
	if err := c.ReadCustom(strings.NewReader(input)); err != nil {
		t.Fatalf("ReadCustom() error = %v", err)
	}
	if c.Len() != before+1 {
		t.Errorf("Len() = %d, want %d", c.Len(), before+1)
	}
	if got := c.Correct("foo and thier"); got != "bar and there" {
		t.Errorf("Correct() = %q, want %q", got, "bar and there")
	}
}

func TestLoadCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrections.txt")
	if err := os.WriteFile(path, []byte("Qrant=Grant\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(Options{})
	if err := c.LoadCustom(path); err != nil {
		t.Fatalf("LoadCustom() error = %v", err)
	}
	if got := c.Correct("Qrant Funding"); got != "Grant Funding" {
		t.Errorf("Correct() = %q, want %q", got, "Grant Funding")
	}

	if err := c.LoadCustom(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("LoadCustom() on a missing file returned nil")
	}
}

func TestAddIgnoresEmptyKey(t *testing.T) {
	c := New(Options{})
	n := c.Len()
	c.Add("", "x")
	if c.Len() != n {
		t.Errorf("Add(\"\") changed the table size")
	}
	c.Add("Fundinq", "Funding")
	if got := c.Correct("Fundinq"); got != "Funding" {
		t.Errorf("Correct() = %q, want Funding", got)
	}
}

func TestOrderIsDeterministic(t *testing.T) {
	a, b := Default(), Default()
	if !reflect.DeepEqual(a.order, b.order) {
		t.Fatal("substitution order differs between instances")
	}
	for i := 1; i < len(a.order); i++ {
		if len(a.order[i]) > len(a.order[i-1]) {
			t.Fatalf("key %q is longer than the key before it", a.order[i])
		}
	}
}

func TestNilCorrector(t *testing.T) {
	var c *Corrector
	if got := c.Correct("  Key  Dates "); got != "Key Dates" {
		t.Errorf("nil Correct() = %q, want %q", got, "Key Dates")
	}
}
