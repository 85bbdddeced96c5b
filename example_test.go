package pdfoutline_test

import (
	"fmt"
	"log"

	"github.com/tsawler/pdfoutline"
)

func ExampleOpen() {
	result, err := pdfoutline.Open("report.pdf").Outline()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Title)
	for _, h := range result.Headings {
		fmt.Printf("%s %s (page %d)\n", h.Level, h.Text, h.Page)
	}
}

func ExampleExtractor_WriteJSON() {
	_, err := pdfoutline.Open("report.pdf").
		DPI(150).
		ModelDir("models/yolo_layout").
		Details().
		WriteJSON("output/report.json")
	if err != nil {
		log.Fatal(err)
	}
}
