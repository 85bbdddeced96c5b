// Package pipeline turns documents into heading outlines.
//
// A [Pipeline] renders each page, detects layout regions, recognizes the
// text of heading-candidate regions and classifies it into H1-H4:
//
//	p := pipeline.New(det, ocr.NewCommand(ocr.DefaultOptions()),
//	    pipeline.WithDPI(150),
//	    pipeline.WithTables(tables.NewTextLocator(tables.DefaultConfig())),
//	)
//	result := p.ProcessDocument(ctx, "report.pdf", "output/report.json")
//
// Pages are processed strictly in order, one page image in memory at a
// time. Failures are contained at the smallest scope that can absorb them:
// a failed OCR call drops one region, a failed page contributes no
// headings, and only a document that cannot be opened or rendered fails the
// whole result.
//
// Collaborators are declared here as small interfaces so that tests and
// other programs can substitute their own.
package pipeline
