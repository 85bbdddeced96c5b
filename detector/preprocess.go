package detector

import (
	"image"

	"golang.org/x/image/draw"
)

// Blob is a page image prepared for inference
type Blob struct {
	// Image is the page resized to the model input
	Image *image.RGBA

	// Data holds the pixels as float32 in [0,1], CHW order with RGB planes
	Data []float32

	Width, Height int
}

// Shape returns the NCHW input shape of the blob
func (b *Blob) Shape() []int64 {
	return []int64{1, 3, int64(b.Height), int64(b.Width)}
}

// Preprocess resizes img to width x height with bilinear interpolation and
// packs it into a normalized CHW float32 buffer.
func Preprocess(img image.Image, width, height int) *Blob {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	plane := width * height
	data := make([]float32, 3*plane)
	for y := 0; y < height; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < width; x++ {
			p := row[x*4:]
			i := y*width + x
			data[i] = float32(p[0]) / 255
			data[plane+i] = float32(p[1]) / 255
			data[2*plane+i] = float32(p[2]) / 255
		}
	}

	return &Blob{Image: dst, Data: data, Width: width, Height: height}
}
