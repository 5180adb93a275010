package therapy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

// CrisisResponse is the fixed crisis-intervention message. It is never
// randomized so callers and tests can assert it byte for byte.
const CrisisResponse = "I'm very concerned about what you're sharing with me. Your safety is the most important thing right now. If you're having thoughts of hurting yourself, please reach out to a crisis hotline immediately: 988 (Suicide & Crisis Lifeline) or go to your nearest emergency room. I'm here to support you, but professional crisis intervention may be needed right now."

// Pools holds every curated response pool used by the deterministic
// selection path. The zero value is unusable; start from DefaultPools.
type Pools struct {
	Greeting   []string                        `yaml:"greeting"`
	CasualAck  []string                        `yaml:"casual_ack"`
	Emotions   map[Emotion][]string            `yaml:"emotions"`
	Modalities map[models.TherapyType][]string `yaml:"modalities"`
	General    []string                        `yaml:"general"`
}

// DefaultPools returns a fresh copy of the built-in curated pools.
// Callers may mutate the result freely.
func DefaultPools() *Pools {
	return &Pools{
		Greeting: []string{
			"Hello! I'm glad you're here. What's on your mind today?",
			"Hi there. This is your space to talk about whatever feels important. How are you doing?",
			"Hello, welcome. Take your time, and whenever you're ready, tell me what brought you here today.",
		},
		CasualAck: []string{
			"I'm here with you. Is there anything on your mind you'd like to talk through?",
			"Of course. Whenever you're ready, I'm listening.",
			"Sounds good. If anything comes up you'd like to explore, just say the word.",
		},
		Emotions: map[Emotion][]string{
			EmotionAnxiety: {
				"Anxiety can feel overwhelming, like your mind is racing with worst-case scenarios. Let's take a moment to ground ourselves. Can you tell me five things you can see around you right now? This can help bring you back to the present moment.",
				"I can hear the anxiety in what you're sharing. Your nervous system is in high alert mode right now. What does the anxiety feel like in your body? Is it tightness in your chest, butterflies in your stomach, or something else?",
				"Anxiety often tries to convince us that we're in immediate danger, even when we're safe. What thoughts are contributing most to this anxious feeling? Let's examine them together.",
			},
			EmotionDepression: {
				"Depression can make everything feel heavy and colorless. It takes courage to reach out when you're feeling this way. What's been the hardest part of your day today? Sometimes talking about the small struggles can help us understand the bigger picture.",
				"That feeling of emptiness or numbness - it's like being disconnected from yourself and the world around you. You're not alone in this feeling, even though depression can make it seem that way. What used to bring you joy that feels difficult to access right now?",
				"Depression lies to us about our worth and our future. When you're feeling worthless, what does that voice sound like? Is it familiar - perhaps echoing something someone once said to you, or how you learned to speak to yourself?",
			},
			EmotionAnger: {
				"Anger is often pain or hurt wearing a protective mask. It can feel safer to be angry than vulnerable. What might be underneath that rage you're feeling? What's the hurt or fear that the anger might be protecting?",
				"When anger feels explosive like this, it's usually because there's been a lot building up for a long time. What first lit that fuse? Sometimes understanding the deeper triggers can help us find better ways to express these intense feelings.",
				"Your anger is telling us something important about your boundaries, your values, or your needs. What is it trying to protect or defend? Let's listen to what it's really trying to communicate.",
			},
			EmotionGrief: {
				"Grief is love with nowhere to go. It's one of the most profound human experiences because it reflects how deeply we can connect with others. What do you miss most about them, beyond just their physical presence?",
				"Loss changes everything - it's like learning to live in a world that suddenly operates by different rules. There's no timeline for grief, despite what others might tell you. How has your grief been showing up for you lately?",
				"The pain of loss can feel unbearable because it represents the depth of your love and connection. Grief isn't something we 'get over' - it's something we learn to carry. How are you being gentle with yourself through this process?",
			},
			EmotionStress: {
				"It sounds like you're carrying a heavy load right now. When everything feels urgent, it's hard to know where to even start. What's the one pressure that's weighing on you most today?",
				"Stress builds up quietly until it suddenly feels like too much. What parts of your life feel most demanding right now, and where do you have any room to set something down?",
				"Running on empty for a long time takes a real toll. What would genuine rest look like for you, even in a small way, this week?",
			},
			EmotionLoneliness: {
				"Loneliness can hurt deeply, even when there are people around us. What does the disconnection feel like for you right now?",
				"Feeling alone with what you're going through is its own kind of pain. When was the last time you felt genuinely seen or understood by someone?",
				"Thank you for sharing something that isolating. Reaching out here is itself a step toward connection. What kind of connection do you find yourself missing most?",
			},
			EmotionFear: {
				"Fear can take up so much space that it's hard to think about anything else. What does this fear tell you might happen, and how likely does that feel when you say it out loud?",
				"When something feels terrifying, our whole body braces for it. Where do you feel this fear most, and what helps you feel even slightly safer?",
				"Naming a fear often loosens its grip a little. Can you describe what the scariest part of this is for you?",
			},
			EmotionShame: {
				"Shame thrives in silence, and it takes real courage to put it into words here. What is the voice of that shame saying to you, and whose voice does it sound like?",
				"Feeling embarrassed or guilty can make us want to hide, yet you chose to share it. What would you say to a close friend who told you they had done or felt the same thing?",
				"Guilt is about what we did; shame is about who we believe we are. Which of those feels closer to what you're carrying right now?",
			},
			EmotionConfusion: {
				"Feeling lost or uncertain can be deeply unsettling. Let's slow down together. If we untangle just one thread of this, which one feels most pressing?",
				"It's okay not to have clarity yet. Sometimes confusion is a sign that something important is shifting. What are the pieces that feel most mixed up right now?",
				"When everything feels unclear, small anchors help. What is one thing you do know for sure about this situation?",
			},
			EmotionHappiness: {
				"That's wonderful to hear! What specifically about this experience feels good to you?",
				"I can hear the positivity in what you're sharing. What do you think contributed to feeling this way?",
				"It sounds like things are going well for you right now. How can we build on these positive feelings?",
				"I'm glad you're experiencing something positive. What would you like to explore about this feeling?",
			},
			EmotionHope: {
				"It sounds like something is shifting for you, and that matters. What feels different compared to before?",
				"Noticing improvement takes real self-awareness. What do you think has helped things start to feel better?",
				"Holding onto hope, even a little, changes how we move through hard times. What are you looking forward to most?",
			},
		},
		Modalities: map[models.TherapyType][]string{
			models.TherapyCBT: {
				"Let's pause and examine the thoughts that were running through your mind in that moment. What was the first automatic thought that popped up? Often our emotional reactions are driven by these quick, unconscious thoughts.",
				"I'm noticing a thinking pattern here that might be worth exploring. What evidence do you have that supports this thought? And what evidence might challenge it? Sometimes our minds jump to conclusions without all the facts.",
				"That sounds like what we call a 'cognitive distortion' - when our minds play tricks on us and make situations seem worse than they are. If your best friend came to you with this exact same thought, what would you tell them?",
			},
			models.TherapyDBT: {
				"Let's practice some mindfulness right now. Can you take a deep breath with me and notice what you're feeling in your body at this moment? What sensations do you notice - tension, warmth, heaviness?",
				"This sounds like a moment where our distress tolerance skills could really help. When emotions feel this intense, what techniques have you tried before? Sometimes we need to ride the wave rather than fight it.",
				"I can hear the intensity of emotion in what you're sharing. Let's practice holding space for this feeling without trying to fix it or make it go away immediately. What would it look like to be compassionate with yourself right now?",
			},
			models.TherapyMindfulness: {
				"Let's bring our attention to this very moment. Without judging anything, what do you notice in your body and your breath right now?",
				"Thoughts and feelings pass through us like weather. Can you observe what you're experiencing right now as if watching clouds move across the sky?",
				"Before we go further, let's take three slow breaths together. As you breathe, what sensations stand out most to you?",
			},
			models.TherapySolutionFocused: {
				"Imagine waking up tomorrow and this problem had somehow improved, even a little. What would be the first small sign you'd notice?",
				"You've handled difficult situations before. What strengths or strategies have worked for you in the past that might apply here?",
				"On a scale from one to ten, where would you put things today? What would it take to move just one point higher?",
			},
		},
		General: []string{
			"Thank you for trusting me with something so personal. What you're sharing takes real courage. What feels most important for you to focus on right now as we talk through this together?",
			"I can hear how much this situation is weighing on you. Sometimes when we're in the middle of something difficult, it's hard to see all the pieces clearly. What would it mean for you if this situation started to feel different?",
			"There's so much complexity in what you're describing. You're carrying a lot right now. What kind of support would feel most helpful to you in this moment? What do you need most from our conversation today?",
			"What strikes me is how much strength it takes to be here, talking about these difficult things. That's not always easy to recognize when we're struggling, but it's important. How are you taking care of yourself through all of this?",
		},
	}
}

// LoadPoolsFile overlays pools from a YAML file on top of the defaults.
// Only non-empty sections in the file replace their built-in counterpart,
// so an override file can customize a single pool without restating all.
func LoadPoolsFile(path string) (*Pools, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pools file: %w", err)
	}

	var override Pools
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse pools file: %w", err)
	}

	pools := DefaultPools()
	if len(override.Greeting) > 0 {
		pools.Greeting = override.Greeting
	}
	if len(override.CasualAck) > 0 {
		pools.CasualAck = override.CasualAck
	}
	for emotion, entries := range override.Emotions {
		if len(entries) > 0 {
			pools.Emotions[emotion] = entries
		}
	}
	for modality, entries := range override.Modalities {
		if len(entries) > 0 {
			pools.Modalities[modality] = entries
		}
	}
	if len(override.General) > 0 {
		pools.General = override.General
	}

	if err := pools.Validate(); err != nil {
		return nil, err
	}
	return pools, nil
}

// Validate checks that every pool the selector can reach has at least one
// entry, so selection never has to handle an empty pool at runtime.
func (p *Pools) Validate() error {
	if len(p.Greeting) == 0 {
		return fmt.Errorf("greeting pool is empty")
	}
	if len(p.CasualAck) == 0 {
		return fmt.Errorf("casual_ack pool is empty")
	}
	if len(p.General) == 0 {
		return fmt.Errorf("general pool is empty")
	}
	for _, e := range emotionPrecedence {
		if len(p.Emotions[e]) == 0 {
			return fmt.Errorf("emotion pool %q is empty", e)
		}
	}
	for _, t := range []models.TherapyType{
		models.TherapyCBT,
		models.TherapyDBT,
		models.TherapyMindfulness,
		models.TherapySolutionFocused,
	} {
		if len(p.Modalities[t]) == 0 {
			return fmt.Errorf("modality pool %q is empty", t)
		}
	}
	return nil
}
