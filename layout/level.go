package layout

import "strings"

// HeadingLevel represents the outline level assigned to a region (H1-H4).
// HeadingLevelUnknown means the region is not a heading and is discarded.
type HeadingLevel int

const (
	HeadingLevelUnknown HeadingLevel = iota
	HeadingLevel1                    // H1 - Title or major section
	HeadingLevel2                    // H2 - Section
	HeadingLevel3                    // H3 - Subsection
	HeadingLevel4                    // H4 - Minor heading, label or date line
)

// String returns the outline representation of the level ("H1".."H4")
func (l HeadingLevel) String() string {
	switch l {
	case HeadingLevel1:
		return "H1"
	case HeadingLevel2:
		return "H2"
	case HeadingLevel3:
		return "H3"
	case HeadingLevel4:
		return "H4"
	default:
		return "UNKNOWN"
	}
}

// IsHeading reports whether the level denotes an accepted heading
func (l HeadingLevel) IsHeading() bool {
	return l >= HeadingLevel1 && l <= HeadingLevel4
}

// ParseHeadingLevel converts "H1".."H4" (any case) back to a level.
// Anything else yields HeadingLevelUnknown.
func ParseHeadingLevel(s string) HeadingLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H1":
		return HeadingLevel1
	case "H2":
		return HeadingLevel2
	case "H3":
		return HeadingLevel3
	case "H4":
		return HeadingLevel4
	default:
		return HeadingLevelUnknown
	}
}
