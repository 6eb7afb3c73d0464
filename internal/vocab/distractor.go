package vocab

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// MaxDistractors is the number of wrong options shown next to the answer.
const MaxDistractors = 3

// Sampler builds multiple-choice option sets. Each session owns its own
// Sampler so no random state is shared between sessions.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler drawing from rng. A nil rng gets a
// crypto-seeded generator.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = NewRand()
	}
	return &Sampler{rng: rng}
}

// NewRand returns a PCG generator seeded from crypto/rand.
func NewRand() *rand.Rand {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(b[:8]),
		binary.LittleEndian.Uint64(b[8:]),
	))
}

// Rand exposes the underlying generator.
func (s *Sampler) Rand() *rand.Rand {
	return s.rng
}

// Sample returns current plus up to MaxDistractors other items from pool, in
// random order. Items sharing current's id are never used as distractors.
// Short pools produce fewer options; nothing is padded or duplicated.
func (s *Sampler) Sample(current StudyItem, pool []StudyItem) []StudyItem {
	others := make([]StudyItem, 0, len(pool))
	for _, it := range pool {
		if it.ID != current.ID {
			others = append(others, it)
		}
	}

	n := min(MaxDistractors, len(others))
	// Partial Fisher-Yates: the first n slots become a uniform sample.
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(others)-i)
		others[i], others[j] = others[j], others[i]
	}

	options := make([]StudyItem, 0, n+1)
	options = append(options, others[:n]...)
	options = append(options, current)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
