package therapy

import (
	"regexp"
	"strings"
)

var (
	rolePrefixRe  = regexp.MustCompile(`(?i)^(therapist response:|therapist:|response:)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	sentenceEndRe = regexp.MustCompile(`[.!?]$`)
)

// genericOpeners are stock phrases that mark a low-effort generated reply
// when the reply is also very short.
var genericOpeners = []string{
	"i understand",
	"that sounds",
	"can you tell me more",
	"how does that make you feel",
	"i see",
	"thank you for sharing",
}

// CleanGenerated normalizes raw generative output into a single presentable
// sentence: strips any echoed prompt and role labels, drops surrounding
// quotes, keeps only the first line, collapses whitespace, and appends a
// period when the result lacks terminal punctuation.
func CleanGenerated(raw, prompt string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, prompt, ""))
	cleaned = strings.TrimSpace(rolePrefixRe.ReplaceAllString(cleaned, ""))
	cleaned = strings.Trim(cleaned, `"'`)
	if i := strings.IndexByte(cleaned, '\n'); i >= 0 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))

	if cleaned != "" && !sentenceEndRe.MatchString(cleaned) {
		cleaned += "."
	}
	return cleaned
}

// minGeneratedLength is the shortest generated reply worth keeping
const minGeneratedLength = 15

// genericLengthLimit: a generic opener only disqualifies short replies
const genericLengthLimit = 30

// Acceptable reports whether a cleaned generated reply should be used
// instead of the deterministic fallback.
func Acceptable(response string) bool {
	if len(response) < minGeneratedLength {
		return false
	}
	return !isGeneric(response)
}

func isGeneric(response string) bool {
	if len(response) >= genericLengthLimit {
		return false
	}
	lower := strings.ToLower(response)
	for _, phrase := range genericOpeners {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
