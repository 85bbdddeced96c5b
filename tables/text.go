package tables

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfoutline/model"
)

// TextLocator finds tables from the positioned text of a PDF page. The most
// recently used document stays open until the next path or Close, so
// consecutive pages of one document are read from a single parse.
// TextLocator is safe for concurrent use.
type TextLocator struct {
	config Config

	mu     sync.Mutex
	path   string
	file   *os.File
	reader *pdf.Reader
}

// NewTextLocator creates a locator with the given configuration
func NewTextLocator(config Config) *TextLocator {
	return &TextLocator{config: config}
}

// Tables returns the table rectangles of a 1-based page in image pixels at
// dpi. Pages without extractable text, such as scans, have no tables.
func (l *TextLocator) Tables(ctx context.Context, path string, page, dpi int) (boxes []model.BBox, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	r, err := l.open(path)
	if err != nil {
		return nil, err
	}
	if page < 1 || page > r.NumPage() {
		return nil, fmt.Errorf("page %d out of range (1-%d)", page, r.NumPage())
	}

	p := r.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	// The content stream decoder panics on malformed operators
	defer func() {
		if rec := recover(); rec != nil {
			boxes, err = nil, fmt.Errorf("read page %d content: %v", page, rec)
		}
	}()

	box := pageBox(p)
	blocks := TextBlocks(p.Content().Text, box, l.config.BlockGap)
	found := Detect(blocks, box.Width, l.config)

	for i := range found {
		found[i] = ToImage(found[i], dpi)
	}
	return found, nil
}

func (l *TextLocator) open(path string) (*pdf.Reader, error) {
	if l.reader != nil && l.path == path {
		return l.reader, nil
	}
	l.closeLocked()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	l.path, l.file, l.reader = path, f, r
	return r, nil
}

// Close releases the open document
func (l *TextLocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeLocked()
}

func (l *TextLocator) closeLocked() error {
	var err error
	if l.file != nil {
		err = l.file.Close()
	}
	l.path, l.file, l.reader = "", nil, nil
	return err
}

// pageBox returns the visible page area in PDF user space (Y up): the
// CropBox, else the MediaBox, else US Letter. Both boxes may be inherited
// from the page tree.
func pageBox(p pdf.Page) model.BBox {
	for _, key := range []string{"CropBox", "MediaBox"} {
		if v := inherited(p.V, key); v.Len() == 4 {
			x0, y0 := v.Index(0).Float64(), v.Index(1).Float64()
			x1, y1 := v.Index(2).Float64(), v.Index(3).Float64()
			b := model.NewBBoxFromCorners(x0, y0, x1, y1)
			if !b.IsEmpty() {
				return b
			}
		}
	}
	return model.NewBBox(0, 0, 612, 792)
}

func inherited(v pdf.Value, key string) pdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if val := v.Key(key); !val.IsNull() {
			return val
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// TextBlocks groups positioned glyphs into text blocks in page space
// (points, Y down, origin at the top-left of box). Glyphs on one baseline
// form a line; a horizontal gap wider than gap times the font size splits
// the line into separate blocks.
func TextBlocks(texts []pdf.Text, box model.BBox, gap float64) []model.BBox {
	var glyphs []pdf.Text
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			glyphs = append(glyphs, t)
		}
	}
	if len(glyphs) == 0 {
		return nil
	}

	// Top of the page first, then left to right
	sort.SliceStable(glyphs, func(i, j int) bool {
		if glyphs[i].Y != glyphs[j].Y {
			return glyphs[i].Y > glyphs[j].Y
		}
		return glyphs[i].X < glyphs[j].X
	})

	var lines [][]pdf.Text
	for _, g := range glyphs {
		n := len(lines)
		if n > 0 {
			ref := lines[n-1][0]
			tol := math.Max(math.Min(ref.FontSize, g.FontSize)*0.3, 1)
			if math.Abs(ref.Y-g.Y) <= tol {
				lines[n-1] = append(lines[n-1], g)
				continue
			}
		}
		lines = append(lines, []pdf.Text{g})
	}

	var blocks []model.BBox
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })

		start := 0
		for i := 1; i <= len(line); i++ {
			if i < len(line) {
				prev := line[i-1]
				size := math.Max(prev.FontSize, 1)
				if line[i].X-(prev.X+prev.W) <= gap*size {
					continue
				}
			}
			blocks = append(blocks, glyphBounds(line[start:i], box))
			start = i
		}
	}
	return blocks
}

// glyphBounds returns the Y-down bounds of a run of glyphs. box is in PDF
// user space, so its Y is the bottom edge of the page.
func glyphBounds(run []pdf.Text, box model.BBox) model.BBox {
	pageTop := box.Y + box.Height
	x0, x1 := math.Inf(1), math.Inf(-1)
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, g := range run {
		size := math.Max(g.FontSize, 1)
		x0 = math.Min(x0, g.X)
		x1 = math.Max(x1, g.X+g.W)
		top = math.Min(top, pageTop-(g.Y+size))
		bottom = math.Max(bottom, pageTop-(g.Y-size*0.2))
	}
	return model.NewBBoxFromCorners(x0-box.Left(), top, x1-box.Left(), bottom)
}
