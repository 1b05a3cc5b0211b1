package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/vitae/text"
)

var (
	gpaCoreRe  = regexp.MustCompile(`(?i)\b([0-4]\.\d{1,2})(?:\s*/\s*4(?:\.0{1,2})?\b|\s+out\s+of\s+4(?:\.0{1,2})?\b)?`)
	fractionRe = regexp.MustCompile(`(?i)\b(\d{1,3})\s*/\s*(\d{1,3})\b(?:\s*(?:e|cum)\s+lode\b)?`)
	lodeRe     = regexp.MustCompile(`(?i)\b(\d{2,3})\s*(?:e|cum)\s+lode\b`)
	gradeLabel = regexp.MustCompile(`(?i)\b(?:c?gpa|grade\s+point\s+average|final\s+grade|grade|voto\s+di\s+laurea|voto|votazione|media)\b\s*:?`)

	strictGPARe      = regexp.MustCompile(`^[0-4]\.\d{1,2}$`)
	strictFractionRe = regexp.MustCompile(`(?i)^(\d{1,3})\s*/\s*(\d{1,3})(?:\s*(?:e|cum)\s+lode)?$`)
	strictLodeRe     = regexp.MustCompile(`(?i)^(?:30|110)\s*(?:e|cum)\s+lode$`)
)

// gradeScales are the denominators accepted in a fractional grade.
var gradeScales = map[int]bool{10: true, 30: true, 60: true, 100: true, 110: true}

// findGrade locates a grade in s. It returns the reported value and the byte
// span of the whole grade expression.
func findGrade(s string) (value string, start, end int, ok bool) {
	if m := gpaCoreRe.FindStringSubmatchIndex(s); m != nil {
		return s[m[2]:m[3]], m[0], m[1], true
	}
	for _, m := range fractionRe.FindAllStringSubmatchIndex(s, -1) {
		if validFraction(s[m[2]:m[3]], s[m[4]:m[5]]) {
			return strings.TrimSpace(s[m[0]:m[1]]), m[0], m[1], true
		}
	}
	if m := lodeRe.FindStringIndex(s); m != nil {
		return strings.TrimSpace(s[m[0]:m[1]]), m[0], m[1], true
	}
	return "", 0, 0, false
}

func validFraction(num, den string) bool {
	n, err := strconv.Atoi(num)
	if err != nil {
		return false
	}
	d, err := strconv.Atoi(den)
	if err != nil {
		return false
	}
	return gradeScales[d] && n <= d
}

// isGrade reports whether value on its own is a well-formed grade.
func isGrade(value string) bool {
	value = strings.TrimSpace(value)
	if strictGPARe.MatchString(value) || strictLodeRe.MatchString(value) {
		return true
	}
	if m := strictFractionRe.FindStringSubmatch(value); m != nil {
		return validFraction(m[1], m[2])
	}
	return false
}

// gradeResidual is s with its grade expression and grade labels removed.
func gradeResidual(s string) string {
	if _, start, end, ok := findGrade(s); ok {
		s = s[:start] + " " + s[end:]
	}
	return gradeLabel.ReplaceAllString(s, " ")
}

func matchGrade(f text.TextFragment) (string, bool) {
	value, _, _, ok := findGrade(f.Text)
	return value, ok
}

func hasLetterOutsideGrade(f text.TextFragment) bool {
	return text.HasLetter(gradeResidual(f.Text))
}

func hasNumberOutsideGrade(f text.TextFragment) bool {
	return text.HasDigit(gradeResidual(f.Text))
}
