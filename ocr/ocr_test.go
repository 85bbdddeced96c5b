//go:build ocr

package ocr

import (
	"context"
	"image"
	"testing"
)

func TestClientRecognizeBlank(t *testing.T) {
	client, err := NewClient(DefaultOptions())
	if err != nil {
		t.Skipf("tesseract unavailable: %v", err)
	}
	defer client.Close()

	img := image.NewGray(image.Rect(0, 0, 100, 40))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	text, err := client.Recognize(context.Background(), img)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if text != "" {
		t.Logf("blank image recognized as %q", text)
	}
}
