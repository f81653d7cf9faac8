package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// noTechStackMarker is what the backend answers when it found nothing.
const noTechStackMarker = "No tech stack"

// maxTechEntryRunes bounds an entry; longer ones are descriptions, not names.
const maxTechEntryRunes = 50

var (
	techSeparators = regexp.MustCompile(`[\n,;]`)
	techBullet     = regexp.MustCompile(`^[-•*]\s*`)

	techNoise = []string{
		"not mentioned",
		"not found",
		"not specified",
		"complete list",
		"technologies found",
	}
)

// HasTechStack reports whether the extracted stack is usable for question
// generation.
func HasTechStack(raw string) bool {
	return raw != "" && !strings.Contains(raw, noTechStackMarker)
}

// NormalizeTechStack turns the free-form extraction answer into a
// comma-separated list of technology names.
func NormalizeTechStack(raw string) string {
	parts := techSeparators.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		tech := techBullet.ReplaceAllString(strings.TrimSpace(part), "")
		if tech == "" || utf8.RuneCountInString(tech) >= maxTechEntryRunes || isTechNoise(tech) {
			continue
		}
		out = append(out, tech)
	}
	return strings.Join(out, ", ")
}

func isTechNoise(tech string) bool {
	lower := strings.ToLower(tech)
	for _, phrase := range techNoise {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
