package therapy

import (
	"math/rand"
	"strings"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

// Selector picks a curated response for a classified message. Selection
// within a pool is uniformly random with no memory of prior picks; the
// random source is injected so callers can seed it for reproducibility.
type Selector struct {
	pools *Pools
	rng   *rand.Rand
}

// NewSelector builds a Selector over the given pools. A nil rng falls back
// to a source seeded from the default shared state.
func NewSelector(pools *Pools, rng *rand.Rand) *Selector {
	if pools == nil {
		pools = DefaultPools()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Selector{pools: pools, rng: rng}
}

// Select applies the priority-ordered decision policy: crisis, then
// greeting, then casual small talk, then the dominant tagged emotion,
// then the active therapy modality, then the generic pool. The crisis
// branch is the only one that is not randomized.
func (s *Selector) Select(message string, therapyType models.TherapyType, tags Classification) string {
	if tags.IsCrisis {
		return CrisisResponse
	}
	if tags.IsGreeting {
		return s.pick(s.pools.Greeting)
	}
	if tags.IsCasual {
		return s.casualReply(message)
	}
	if dominant := tags.Dominant(); dominant != EmotionNeutral {
		return s.pick(s.pools.Emotions[dominant])
	}
	if pool, ok := s.pools.Modalities[therapyType]; ok && len(pool) > 0 {
		return s.pick(pool)
	}
	return s.pick(s.pools.General)
}

// casualReply matches specific small-talk sub-phrases before falling back
// to a generic acknowledgement.
func (s *Selector) casualReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "how are you"):
		return "I'm here and ready to listen. More importantly, how are you feeling today?"
	case strings.Contains(lower, "thank"):
		return "You're very welcome. I'm glad we could talk. Is there anything else on your mind?"
	case strings.Contains(lower, "bye") || strings.Contains(lower, "goodbye"):
		return "Take care of yourself. Remember, I'm here whenever you need to talk."
	default:
		return s.pick(s.pools.CasualAck)
	}
}

func (s *Selector) pick(pool []string) string {
	if len(pool) == 0 {
		return s.pools.General[s.rng.Intn(len(s.pools.General))]
	}
	return pool[s.rng.Intn(len(pool))]
}
