package output

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/pdfoutline/model"
)

func sampleResult(n int, r *rand.Rand) *model.Result {
	levels := []string{"H1", "H2", "H3", "H4"}
	result := &model.Result{Title: "Sample \"Quoted\" Title", Success: true}
	for i := 0; i < n; i++ {
		result.Headings = append(result.Headings, model.HeadingInfo{
			Level:      levels[r.Intn(len(levels))],
			Text:       fmt.Sprintf("Heading %d: Résumé", i),
			Page:       1 + r.Intn(20),
			BBox:       model.NewBBox(float64(r.Intn(500)), float64(r.Intn(700)), 100, 20),
			Confidence: r.Float64(),
		})
	}
	return result
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	dir := t.TempDir()

	for n := 0; n <= 12; n++ {
		want := sampleResult(n, r)
		path := filepath.Join(dir, fmt.Sprintf("out-%d.json", n))

		if err := Write(want, path, Options{}); err != nil {
			t.Fatalf("Write(%d headings) error = %v", n, err)
		}
		got, err := Read(path)
		if err != nil {
			t.Fatalf("Read(%d headings) error = %v", n, err)
		}

		if got.Title != want.Title {
			t.Errorf("Title = %q, want %q", got.Title, want.Title)
		}
		if len(got.Headings) != len(want.Headings) {
			t.Fatalf("%d headings read back, want %d", len(got.Headings), len(want.Headings))
		}
		for i := range want.Headings {
			g, w := got.Headings[i], want.Headings[i]
			if g.Level != w.Level || g.Text != w.Text || g.Page != w.Page {
				t.Errorf("heading %d = {%s %q %d}, want {%s %q %d}", i, g.Level, g.Text, g.Page, w.Level, w.Text, w.Page)
			}
		}
	}
}

func TestRoundTripDetails(t *testing.T) {
	want := &model.Result{
		Title: "Report",
		Headings: []model.HeadingInfo{{
			Level: "H1", Text: "Introduction", Page: 1,
			BBox: model.NewBBoxFromCorners(100, 50, 900, 150), Confidence: 0.95,
		}},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, want, Options{Details: true}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"bbox"`) || !strings.Contains(buf.String(), `"confidence": 0.95`) {
		t.Errorf("details missing from output:\n%s", buf.String())
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Headings[0].BBox != want.Headings[0].BBox {
		t.Errorf("BBox = %+v, want %+v", got.Headings[0].BBox, want.Headings[0].BBox)
	}
	if got.Headings[0].Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", got.Headings[0].Confidence)
	}
}

func TestEncodeSchema(t *testing.T) {
	result := &model.Result{
		Title:    "Doc",
		Headings: []model.HeadingInfo{{Level: "H2", Text: "Methods", Page: 3, Confidence: 0.5}},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, result, Options{}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `{
  "title": "Doc",
  "outline": [
    {
      "level": "H2",
      "text": "Methods",
      "page": 3
    }
  ]
}
`
	if buf.String() != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestEncodeEmptyOutline(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &model.Result{Title: "Empty"}, Options{}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"outline": []`) {
		t.Errorf("empty outline should serialize as [], got:\n%s", buf.String())
	}
}

func TestWriteCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.json")

	if err := Write(&model.Result{Title: "x"}, path, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the output file", len(entries))
	}
}

func TestWriteNilResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := Write(nil, path, Options{}); err == nil {
		t.Error("expected error for nil result")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for a nil result")
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode(strings.NewReader("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := Read(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
