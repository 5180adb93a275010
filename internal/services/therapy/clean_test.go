package therapy

import "testing"

func TestCleanGenerated(t *testing.T) {
	t.Parallel()

	prompt := "You are a caring therapist.\n\nClient: \"hi\"\n\nTherapist response:"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "strips echoed prompt and role label",
			raw:  prompt + " Therapist: What has been on your mind lately?",
			want: "What has been on your mind lately?",
		},
		{
			name: "strips surrounding quotes",
			raw:  `"You deserve support through this."`,
			want: "You deserve support through this.",
		},
		{
			name: "keeps only first line",
			raw:  "Let's explore that together.\nClient: ok\nTherapist: sure",
			want: "Let's explore that together.",
		},
		{
			name: "collapses whitespace",
			raw:  "That  takes   real \t courage.",
			want: "That takes real courage.",
		},
		{
			name: "appends period when unterminated",
			raw:  "Tell me more about your week",
			want: "Tell me more about your week.",
		},
		{
			name: "keeps question mark",
			raw:  "What would help most right now?",
			want: "What would help most right now?",
		},
		{
			name: "empty stays empty",
			raw:  "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CleanGenerated(tt.raw, prompt); got != tt.want {
				t.Errorf("CleanGenerated() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAcceptable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{name: "empty", response: "", want: false},
		{name: "too short", response: "I hear you.", want: false},
		{name: "short generic opener", response: "I understand that.", want: false},
		{name: "short that sounds", response: "That sounds hard.", want: false},
		{name: "long enough and specific", response: "What does the anxiety feel like in your body right now?", want: true},
		{name: "generic opener but long", response: "That sounds incredibly difficult, and I want to understand what this week has really been like for you.", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Acceptable(tt.response); got != tt.want {
				t.Errorf("Acceptable(%q) = %v, want %v", tt.response, got, tt.want)
			}
		})
	}
}
