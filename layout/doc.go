// Package layout classifies OCR'd layout regions into outline heading levels.
//
// The [Classifier] combines three independent signals with explicit
// precedence. Each signal must also pass the length and word count
// [Bounds] of the level it proposes:
//
//   - the detector label ("title", "text", "list") via [LabelRule]
//   - lexical patterns such as "Introduction", "2.1" or dates via [PatternRule]
//   - heading-shaped structure (numbering, trailing colon, capitalization)
//     via [StructureRule], for regions the detector labeled "text"
//
// Text that reads like running prose is rejected before any rule runs.
//
//	c := layout.NewClassifier()
//	level := c.DetermineHeadingLevel("Introduction", "title", bbox, 1)
//	// level == layout.HeadingLevel1
//
// The rule tables are plain data; [DefaultClassifierConfig] can be copied
// and edited to change precedence or vocabulary.
package layout
