package detector

// DocLayNet class ids as emitted by document layout YOLO models
const (
	ClassCaption        = 0
	ClassFootnote       = 1
	ClassFormula        = 2
	ClassList           = 3
	ClassFooter         = 4
	ClassHeader         = 5
	ClassFigure         = 6
	ClassParagraphTitle = 7
	ClassTable          = 8
	ClassText           = 9
	ClassTitle          = 10
)

// DocLayNetLabels is the label table indexed by class id
var DocLayNetLabels = []string{
	ClassCaption:        "caption",
	ClassFootnote:       "footnote",
	ClassFormula:        "formula",
	ClassList:           "list",
	ClassFooter:         "footer",
	ClassHeader:         "header",
	ClassFigure:         "figure",
	ClassParagraphTitle: "paragraph_title",
	ClassTable:          "table",
	ClassText:           "text",
	ClassTitle:          "title",
}

// defaultLabel is used for class ids outside the table
const defaultLabel = "text"

// LabelFor maps a class id to its label using names, or the DocLayNet
// table when names is empty.
func LabelFor(classID int, names []string) string {
	if len(names) == 0 {
		names = DocLayNetLabels
	}
	if classID < 0 || classID >= len(names) {
		return defaultLabel
	}
	return names[classID]
}
