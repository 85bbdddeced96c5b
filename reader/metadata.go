package reader

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// MetadataTitle returns the Title entry of a PDF's document information
// dictionary, trimmed. A document without a title yields "" and no error.
func MetadataTitle(filename string) (title string, err error) {
	disableConfigDir.Do(api.DisableConfigDir)

	f, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// pdfcpu panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			title, err = "", fmt.Errorf("read metadata: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadAndValidate(f, conf)
	if err != nil {
		return "", fmt.Errorf("read metadata: %w", err)
	}
	return strings.TrimSpace(ctx.Title), nil
}
