package therapy

import (
	"strings"
	"unicode"
)

// Emotion is one label from the fixed emotional taxonomy
type Emotion string

const (
	EmotionAnxiety    Emotion = "anxiety"
	EmotionDepression Emotion = "depression"
	EmotionAnger      Emotion = "anger"
	EmotionGrief      Emotion = "grief"
	EmotionStress     Emotion = "stress"
	EmotionLoneliness Emotion = "loneliness"
	EmotionFear       Emotion = "fear"
	EmotionShame      Emotion = "shame"
	EmotionConfusion  Emotion = "confusion"
	EmotionHappiness  Emotion = "happiness"
	EmotionHope       Emotion = "hope"
	EmotionNeutral    Emotion = "neutral"
)

// emotionPrecedence is the fixed order used both for classification output
// and for picking the dominant emotion during response selection.
var emotionPrecedence = []Emotion{
	EmotionAnxiety,
	EmotionDepression,
	EmotionAnger,
	EmotionGrief,
	EmotionStress,
	EmotionLoneliness,
	EmotionFear,
	EmotionShame,
	EmotionConfusion,
	EmotionHappiness,
	EmotionHope,
}

// emotionKeywords maps each emotion to the phrases whose presence tags a
// message with it. Matching is case-insensitive substring membership.
var emotionKeywords = map[Emotion][]string{
	EmotionAnxiety:    {"anxious", "worried", "nervous", "panic", "scared", "frightened", "overwhelmed"},
	EmotionDepression: {"sad", "depressed", "hopeless", "empty", "worthless", "numb", "tired"},
	EmotionAnger:      {"angry", "furious", "rage", "mad", "frustrated", "irritated", "hate"},
	EmotionGrief:      {"loss", "died", "death", "miss", "gone", "funeral", "mourning"},
	EmotionStress:     {"stressed", "pressure", "burnout", "exhausted", "overworked"},
	EmotionLoneliness: {"lonely", "alone", "isolated", "disconnected", "withdrawn"},
	EmotionFear:       {"afraid", "terrified", "phobia", "terror", "dread"},
	EmotionShame:      {"ashamed", "embarrassed", "guilty", "humiliated", "disgrace"},
	EmotionConfusion:  {"confused", "lost", "uncertain", "unclear", "mixed up"},
	EmotionHappiness:  {"happy", "good", "great", "wonderful", "joyful", "excited", "awesome"},
	EmotionHope:       {"hopeful", "better", "improving", "optimistic", "looking forward"},
}

// crisisKeywords is the fixed high-risk phrase list. Detection is purely
// lexical substring matching, so paraphrased crisis language can be missed;
// this is a documented limitation, not clinical-grade detection.
var crisisKeywords = []string{
	"kill myself",
	"suicide",
	"want to die",
	"end it all",
	"hurt myself",
	"self harm",
	"not worth living",
}

// greetings is the exact-phrase allowlist for greeting detection after
// normalization. Longer messages that merely contain a greeting word are
// excluded by the length ceiling.
var greetings = []string{
	"hi", "hello", "hey", "hi there", "hello there", "hey there",
	"good morning", "good afternoon", "good evening", "yo", "hiya",
}

// casualPhrases are conversational fillers that mark small talk
var casualPhrases = []string{
	"how are you", "whats up", "what's up", "thanks", "thank you",
	"bye", "goodbye", "see you", "ok", "okay", "cool", "nice",
}

const (
	greetingLengthLimit = 25
	casualLengthLimit   = 50
)

// Classification is the derived tag set for one user message.
// Emotions is never empty: neutral is assigned when nothing matches.
type Classification struct {
	IsCrisis   bool
	IsGreeting bool
	IsCasual   bool
	Emotions   []Emotion
}

// HasEmotion reports whether the tag set contains e
func (c Classification) HasEmotion(e Emotion) bool {
	for _, got := range c.Emotions {
		if got == e {
			return true
		}
	}
	return false
}

// Dominant returns the highest-precedence emotion present
func (c Classification) Dominant() Emotion {
	for _, e := range emotionPrecedence {
		if c.HasEmotion(e) {
			return e
		}
	}
	return EmotionNeutral
}

// Classify tags a raw user message with crisis, greeting, casual and emotion
// labels. Pure function: identical input always yields an identical tag set.
func Classify(text string) Classification {
	lower := strings.ToLower(strings.TrimSpace(text))

	// Crisis short-circuits everything else
	for _, kw := range crisisKeywords {
		if strings.Contains(lower, kw) {
			return Classification{
				IsCrisis: true,
				Emotions: []Emotion{EmotionNeutral},
			}
		}
	}

	c := Classification{}
	normalized := normalize(lower)

	if len(text) < greetingLengthLimit {
		for _, g := range greetings {
			if normalized == g {
				c.IsGreeting = true
				break
			}
		}
	}

	if !c.IsGreeting && len(text) < casualLengthLimit {
		for _, phrase := range casualPhrases {
			if strings.Contains(normalized, phrase) {
				c.IsCasual = true
				break
			}
		}
	}

	for _, e := range emotionPrecedence {
		for _, kw := range emotionKeywords[e] {
			if strings.Contains(lower, kw) {
				c.Emotions = append(c.Emotions, e)
				break
			}
		}
	}
	if len(c.Emotions) == 0 {
		c.Emotions = []Emotion{EmotionNeutral}
	}

	return c
}

// normalize lowercases, strips punctuation and collapses whitespace so
// greetings like "Hey!" match their allowlist entry.
func normalize(lower string) string {
	var b strings.Builder
	b.Grow(len(lower))
	lastSpace := false
	for _, r := range lower {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
