package therapy

import (
	"testing"
)

func TestClassify_Crisis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "direct phrase", text: "I want to kill myself"},
		{name: "mid sentence", text: "sometimes I think about suicide when things get bad"},
		{name: "mixed case", text: "I WANT TO DIE"},
		{name: "self harm", text: "I've been thinking about self harm again"},
		{name: "not worth living", text: "life is not worth living anymore"},
		{name: "with other emotions present", text: "I'm so anxious and sad that I want to end it all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.text)
			if !got.IsCrisis {
				t.Errorf("Classify(%q).IsCrisis = false, want true", tt.text)
			}
			// Crisis short-circuits everything else
			if got.IsGreeting || got.IsCasual {
				t.Error("crisis classification should suppress greeting and casual flags")
			}
			if len(got.Emotions) != 1 || got.Emotions[0] != EmotionNeutral {
				t.Errorf("crisis classification emotions = %v, want [neutral]", got.Emotions)
			}
		})
	}
}

func TestClassify_Greeting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "plain hi", text: "hi", want: true},
		{name: "hello with punctuation", text: "Hello!", want: true},
		{name: "hey there", text: "Hey there", want: true},
		{name: "good morning", text: "Good morning", want: true},
		{name: "long sentence containing hi", text: "hi, I wanted to talk about something that happened at work today", want: false},
		{name: "greeting word inside other word", text: "this is awful", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.text).IsGreeting; got != tt.want {
				t.Errorf("Classify(%q).IsGreeting = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_Casual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "how are you", text: "How are you doing?", want: true},
		{name: "thanks", text: "thanks, that helped", want: true},
		{name: "goodbye", text: "ok goodbye for now", want: true},
		{name: "too long for casual", text: "thanks, but I actually wanted to talk about my relationship with my mother and everything that happened", want: false},
		{name: "ordinary message", text: "my job has been difficult recently", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.text).IsCasual; got != tt.want {
				t.Errorf("Classify(%q).IsCasual = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_Emotions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []Emotion
	}{
		{
			name: "single emotion",
			text: "I've been feeling really anxious about everything lately",
			want: []Emotion{EmotionAnxiety},
		},
		{
			name: "multiple emotions ordered by precedence",
			text: "I'm so sad and angry and worried all at once",
			want: []Emotion{EmotionAnxiety, EmotionDepression, EmotionAnger},
		},
		{
			name: "grief keywords",
			text: "my grandmother died last month and I miss her",
			want: []Emotion{EmotionGrief},
		},
		{
			name: "stress keywords",
			text: "the pressure at work is giving me burnout",
			want: []Emotion{EmotionStress},
		},
		{
			name: "positive keywords",
			text: "I had a wonderful week and I feel joyful",
			want: []Emotion{EmotionHappiness},
		},
		{
			name: "no match defaults to neutral",
			text: "my commute changed this week",
			want: []Emotion{EmotionNeutral},
		},
		{
			name: "empty input is neutral",
			text: "",
			want: []Emotion{EmotionNeutral},
		},
		{
			name: "whitespace only is neutral",
			text: "   \n\t  ",
			want: []Emotion{EmotionNeutral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.text)
			if len(got.Emotions) != len(tt.want) {
				t.Fatalf("Classify(%q).Emotions = %v, want %v", tt.text, got.Emotions, tt.want)
			}
			for i, e := range tt.want {
				if got.Emotions[i] != e {
					t.Errorf("Classify(%q).Emotions[%d] = %v, want %v", tt.text, i, got.Emotions[i], e)
				}
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	text := "I'm worried and exhausted, and I feel so alone"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		got := Classify(text)
		if len(got.Emotions) != len(first.Emotions) {
			t.Fatalf("classification changed between identical calls: %v vs %v", got.Emotions, first.Emotions)
		}
		for j := range got.Emotions {
			if got.Emotions[j] != first.Emotions[j] {
				t.Fatalf("classification changed between identical calls: %v vs %v", got.Emotions, first.Emotions)
			}
		}
	}
}

func TestClassification_Dominant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tags Classification
		want Emotion
	}{
		{
			name: "anxiety outranks depression",
			tags: Classification{Emotions: []Emotion{EmotionDepression, EmotionAnxiety}},
			want: EmotionAnxiety,
		},
		{
			name: "grief outranks stress",
			tags: Classification{Emotions: []Emotion{EmotionStress, EmotionGrief}},
			want: EmotionGrief,
		},
		{
			name: "neutral when nothing tagged",
			tags: Classification{Emotions: []Emotion{EmotionNeutral}},
			want: EmotionNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.tags.Dominant(); got != tt.want {
				t.Errorf("Dominant() = %v, want %v", got, tt.want)
			}
		})
	}
}
