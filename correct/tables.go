package correct

import "regexp"

// Fix is one literal substitution
type Fix struct {
	Wrong   string
	Correct string
}

// confusionFixes are context-free character confusions typical of OCR
// output. They also rewrite correctly spelled words that happen to contain
// the pattern (for example "modern" becomes "modem"), which is why they can
// be switched off with Options.Confusions.
var confusionFixes = []Fix{
	{"rn", "m"},
	{"vv", "w"},
	{"ii", "ll"},
	{"oo", "co"},
	{"cl", "d"},
	{"tc", "to"},
}

// wordFixes repair whole words garbled by OCR
var wordFixes = []Fix{
	{"rnatch", "match"}, {"vvork", "work"}, {"cornpany", "company"},
	{"rnoney", "money"}, {"rnanage", "manage"}, {"rnarket", "market"},
	{"tilie", "title"}, {"nieet", "meet"}, {"rnust", "must"},
	{"vvill", "will"}, {"vvith", "with"}, {"vvhen", "when"},
	{"vvhere", "where"}, {"vvhat", "what"}, {"vvhy", "why"},
	{"rnight", "might"}, {"rnore", "more"}, {"rnark", "mark"},

	{"Aadile", "Agile"}, {"aadile", "agile"},
	{"Testina", "Testing"}, {"testina", "testing"},
	{"Entrv", "Entry"}, {"entrv", "entry"},
	{"lntroduction", "Introduction"},
	{"Reguirements", "Requirements"}, {"reguirements", "requirements"},
	{"Develooment", "Development"}, {"develooment", "development"},
	{"Manaaement", "Management"}, {"manaaement", "management"},
	{"Orqanization", "Organization"}, {"orqanization", "organization"},
	{"Backaround", "Background"}, {"backaround", "background"},
	{"Technoloaical", "Technological"}, {"technoloaical", "technological"},

	{"qgovernance", "governance"}, {"decision-makina", "decision-making"},
	{"fundina", "funding"}, {"reallv", "really"}, {"librarv", "library"},
	{"fullv", "fully"}, {"aovernment", "government"}, {"Strateqy", "Strategy"},
}

// spellingFixes are common misspellings
var spellingFixes = []Fix{
	{"recieve", "receive"}, {"seperate", "separate"}, {"occured", "occurred"},
	{"definately", "definitely"}, {"managment", "management"},
	{"enviroment", "environment"}, {"accomodate", "accommodate"},
	{"begining", "beginning"}, {"beleive", "believe"}, {"occassion", "occasion"},
	{"profesional", "professional"}, {"recomend", "recommend"},
	{"neccessary", "necessary"}, {"accross", "across"}, {"untill", "until"},
	{"thier", "their"}, {"freind", "friend"}, {"sence", "sense"},
}

// punctuationFixes turn a dash read in place of a colon back into a
// section label
var punctuationFixes = []Fix{
	{"timeline-", "Timeline:"},
	{"summary-", "Summary:"},
	{"background-", "Background:"},
	{"guidance-", "Guidance:"},
}

// regexFix is one pattern substitution used in aggressive mode
type regexFix struct {
	pattern     *regexp.Regexp
	replacement string
}

// aggressiveFixes repair numbering and ordinals. They run after the literal
// fixes and only in aggressive mode.
var aggressiveFixes = []regexFix{
	// "1 2" -> "1.2"
	{regexp.MustCompile(`(\d)\s+(\d)`), "${1}.${2}"},
	// "1 . 2" -> "1.2"
	{regexp.MustCompile(`(\d)\s*\.\s+(\d)`), "${1}.${2}"},
	// "1lst" -> "1st", "2ncl" -> "2nd", "3rcl" -> "3rd"
	{regexp.MustCompile(`\b(\d+)lst\b`), "${1}st"},
	{regexp.MustCompile(`\b(\d+)ncl\b`), "${1}nd"},
	{regexp.MustCompile(`\b(\d+)rcl\b`), "${1}rd"},
}
