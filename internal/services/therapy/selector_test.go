package therapy

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

func newTestSelector(seed int64) *Selector {
	return NewSelector(DefaultPools(), rand.New(rand.NewSource(seed)))
}

func inPool(pool []string, s string) bool {
	for _, entry := range pool {
		if entry == s {
			return true
		}
	}
	return false
}

func TestSelector_CrisisIsFixed(t *testing.T) {
	t.Parallel()

	s := newTestSelector(1)
	tags := Classification{IsCrisis: true, Emotions: []Emotion{EmotionNeutral}}
	for i := 0; i < 5; i++ {
		got := s.Select("I want to end it all", models.TherapyGeneral, tags)
		if got != CrisisResponse {
			t.Fatalf("crisis response not byte-identical: %q", got)
		}
	}
}

func TestSelector_PriorityOrder(t *testing.T) {
	t.Parallel()

	pools := DefaultPools()

	tests := []struct {
		name        string
		message     string
		therapyType models.TherapyType
		tags        Classification
		wantPool    []string
	}{
		{
			name:        "greeting over emotion",
			message:     "hello",
			therapyType: models.TherapyCBT,
			tags:        Classification{IsGreeting: true, Emotions: []Emotion{EmotionAnxiety}},
			wantPool:    pools.Greeting,
		},
		{
			name:        "dominant emotion over modality",
			message:     "I feel anxious",
			therapyType: models.TherapyCBT,
			tags:        Classification{Emotions: []Emotion{EmotionAnxiety}},
			wantPool:    pools.Emotions[EmotionAnxiety],
		},
		{
			name:        "highest precedence emotion wins",
			message:     "I feel sad and worried",
			therapyType: models.TherapyGeneral,
			tags:        Classification{Emotions: []Emotion{EmotionAnxiety, EmotionDepression}},
			wantPool:    pools.Emotions[EmotionAnxiety],
		},
		{
			name:        "modality when neutral",
			message:     "tell me about my thinking",
			therapyType: models.TherapyDBT,
			tags:        Classification{Emotions: []Emotion{EmotionNeutral}},
			wantPool:    pools.Modalities[models.TherapyDBT],
		},
		{
			name:        "general fallback",
			message:     "something happened",
			therapyType: models.TherapyGeneral,
			tags:        Classification{Emotions: []Emotion{EmotionNeutral}},
			wantPool:    pools.General,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSelector(42)
			got := s.Select(tt.message, tt.therapyType, tt.tags)
			if !inPool(tt.wantPool, got) {
				t.Errorf("Select() = %q, not a member of the expected pool", got)
			}
		})
	}
}

func TestSelector_CasualSubPhrases(t *testing.T) {
	t.Parallel()

	s := newTestSelector(7)
	tags := Classification{IsCasual: true, Emotions: []Emotion{EmotionNeutral}}

	tests := []struct {
		name     string
		message  string
		wantPart string
	}{
		{name: "how are you", message: "how are you today?", wantPart: "how are you feeling"},
		{name: "thanks", message: "thanks a lot", wantPart: "You're very welcome"},
		{name: "goodbye", message: "ok bye now", wantPart: "Take care of yourself"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Select(tt.message, models.TherapyGeneral, tags)
			if !strings.Contains(got, tt.wantPart) {
				t.Errorf("Select(%q) = %q, want reply containing %q", tt.message, got, tt.wantPart)
			}
		})
	}

	generic := s.Select("cool", models.TherapyGeneral, tags)
	if !inPool(DefaultPools().CasualAck, generic) {
		t.Errorf("generic casual reply %q not drawn from the acknowledgement pool", generic)
	}
}

func TestSelector_SeededReproducibility(t *testing.T) {
	t.Parallel()

	tags := Classification{Emotions: []Emotion{EmotionDepression}}
	a := newTestSelector(99)
	b := newTestSelector(99)
	for i := 0; i < 10; i++ {
		got1 := a.Select("I feel down", models.TherapyGeneral, tags)
		got2 := b.Select("I feel down", models.TherapyGeneral, tags)
		if got1 != got2 {
			t.Fatalf("identical seeds diverged: %q vs %q", got1, got2)
		}
	}
}

func TestSelector_UnknownModalityFallsBackToGeneral(t *testing.T) {
	t.Parallel()

	s := newTestSelector(3)
	tags := Classification{Emotions: []Emotion{EmotionNeutral}}
	got := s.Select("just thinking", models.TherapyGeneral, tags)
	if !inPool(DefaultPools().General, got) {
		t.Errorf("Select() = %q, want member of the general pool", got)
	}
}

func TestSelector_AnxietyEndToEnd(t *testing.T) {
	t.Parallel()

	msg := "I've been feeling really anxious about everything lately"
	tags := Classify(msg)
	if tags.IsCrisis || tags.IsGreeting || tags.IsCasual {
		t.Fatalf("unexpected flags for %q: %+v", msg, tags)
	}
	if len(tags.Emotions) != 1 || tags.Emotions[0] != EmotionAnxiety {
		t.Fatalf("emotions = %v, want [anxiety]", tags.Emotions)
	}

	s := newTestSelector(5)
	got := s.Select(msg, models.TherapyGeneral, tags)
	if got == "" {
		t.Fatal("empty response")
	}
	if !inPool(DefaultPools().Emotions[EmotionAnxiety], got) {
		t.Errorf("response %q not drawn from the anxiety pool", got)
	}
}
