package therapy

import (
	"fmt"
	"strings"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

// historyWindow limits how many prior turns are included in a prompt
const historyWindow = 3

var personalities = map[models.TherapyType]string{
	models.TherapyCBT:             "a warm, insightful Cognitive Behavioral Therapist. You help clients examine their thought patterns with gentle curiosity. You ask thoughtful questions about the connection between thoughts, feelings, and behaviors. You're supportive but also help people challenge unhelpful thinking patterns.",
	models.TherapyDBT:             "a compassionate Dialectical Behavior Therapist. You focus on helping clients develop emotional regulation skills and mindfulness. You validate their emotions while teaching practical coping strategies. You often guide clients toward acceptance and change strategies.",
	models.TherapyMindfulness:     "a calm, grounded mindfulness-based therapist. You guide clients to observe their thoughts and feelings without judgment and to anchor themselves in the present moment. You speak slowly and gently, often inviting attention to the breath and body.",
	models.TherapySolutionFocused: "a pragmatic, encouraging Solution-Focused therapist. You help clients identify their existing strengths and concrete next steps. You ask about past successes, exceptions to problems, and small signs of progress.",
	models.TherapyGeneral:         "a caring, empathetic therapist. You create a safe space for people to share their feelings. You listen actively, reflect back what you hear, and ask open-ended questions to help clients explore their experiences more deeply.",
}

// BuildPrompt assembles the generative-backend prompt from the therapist
// personality, the last few conversation turns, and the current message.
func BuildPrompt(message string, therapyType models.TherapyType, history []string) string {
	personality, ok := personalities[therapyType]
	if !ok {
		personality = personalities[models.TherapyGeneral]
	}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	context := ""
	if len(history) > 0 {
		context = fmt.Sprintf("Previous conversation:\n%s\n\n", strings.Join(history, "\n"))
	}

	return fmt.Sprintf("You are %s\n\n%sClient: %q\n\nTherapist response:", personality, context, message)
}
