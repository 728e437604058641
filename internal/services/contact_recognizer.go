package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/interview-assessor/internal/models"
)

const (
	nameScanLines    = 10
	minNameTokens    = 2
	maxNameTokens    = 4
	minPhoneDigitLen = 8
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Tried in order; the first pattern with any match decides.
	phoneRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\b(?:\+?\d{1,3}[-.\s]?)?(?:\d{2,4}[-.\s]?\d{2,4}[-.\s]?\d{2,4})\b`),
	}

	nonDigitRegex  = regexp.MustCompile(`\D`)
	titleCaseRegex = regexp.MustCompile(`^[A-Z][a-z'-]+$`)
	allCapsRegex   = regexp.MustCompile(`^[A-Z]{2,}$`)
)

// RecognizeContactInfo guesses name, email and phone from resume text. It is a
// heuristic tuned for single-column resumes and has no side effects.
func RecognizeContactInfo(text string) models.ContactInfo {
	info := models.ContactInfo{
		Name:  recognizeName(text),
		Email: emailRegex.FindString(text),
		Phone: recognizePhone(text),
	}

	info.MissingFields = []string{}
	if info.Name == "" {
		info.MissingFields = append(info.MissingFields, models.FieldName)
	}
	if info.Email == "" {
		info.MissingFields = append(info.MissingFields, models.FieldEmail)
	}
	if info.Phone == "" {
		info.MissingFields = append(info.MissingFields, models.FieldPhone)
	}

	return info
}

func recognizePhone(text string) string {
	for _, rx := range phoneRegexes {
		match := rx.FindString(text)
		if match == "" {
			continue
		}
		if digits := nonDigitRegex.ReplaceAllString(match, ""); len(digits) >= minPhoneDigitLen {
			return digits
		}
	}
	return ""
}

func recognizeName(text string) string {
	lines := nonBlankLines(text)
	if len(lines) > nameScanLines {
		lines = lines[:nameScanLines]
	}

	for _, line := range lines {
		tokens := strings.Fields(line)
		if len(tokens) < minNameTokens || len(tokens) > maxNameTokens {
			continue
		}
		for _, token := range tokens {
			if titleCaseRegex.MatchString(token) || allCapsRegex.MatchString(token) {
				return line
			}
		}
	}

	return ""
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
