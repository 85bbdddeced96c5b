// Command pdfoutline extracts a heading outline (title, H1-H4) from PDF
// documents and writes it as JSON.
//
// Usage:
//
//	pdfoutline [file.pdf] [flags]
//
// Without a file every PDF in the input directory is processed and one
// JSON file per document is written to the output directory.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
