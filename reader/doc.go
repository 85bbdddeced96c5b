// Package reader opens input documents and renders their pages to images.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for rendering:
//
//	doc, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
// Pages are rendered one at a time, so only the page being processed is
// held in memory:
//
//	for i := 0; i < doc.PageCount(); i++ {
//	    img, err := doc.RenderPage(i, 150)
//	    ...
//	}
//
// Rendering uses MuPDF through go-fitz.
//
// # Errors
//
// Open distinguishes a missing file ([ErrNotFound]), a file that is not a
// readable PDF ([ErrInvalidPDF]) and a PDF without pages ([ErrNoPages]):
//
//	if errors.Is(err, reader.ErrNotFound) { ... }
//
// # Pre-rendered Pages
//
// [OpenImages] serves a directory of PNG or JPEG page images through the
// same interface, ordered by file name.
//
// # Document Information
//
// [MetadataTitle] returns the Title entry of the document information
// dictionary.
package reader
