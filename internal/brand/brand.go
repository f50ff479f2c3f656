package brand

import (
	"math/rand"
	"sync"
)

// Service is one offering listed in the brand profile.
type Service struct {
	Name    string
	Tagline string
}

// Profile is the immutable brand identity woven into every prompt.
type Profile struct {
	Name        string
	Author      string
	AuthorTitle string
	Contact     string
	VoiceRules  []string
	Services    []Service
}

// UrgencyBlock is one of the rotating urgency messages, tagged by angle.
type UrgencyBlock struct {
	Angle string
	Text  string
}

// FaqTemplate seeds the generated FAQ section; the model adapts it, the
// scaffold is never copied verbatim into output.
type FaqTemplate struct {
	Question       string
	AnswerScaffold string
	SearchIntent   string
}

// CtaBlock closes every generated post.
type CtaBlock struct {
	Heading string
	Body    string
	URL     string
	Action  string
}

// Pool owns the static content registries plus the mutable rotation cursor.
// Construct once at process start and share by reference; the urgency index
// is the only mutable state and is guarded for safety.
type Pool struct {
	Brand    Profile
	urgency  []UrgencyBlock
	faqs     []FaqTemplate
	ctas     []CtaBlock
	rng      *rand.Rand
	mu       sync.Mutex
	urgV     int
	urgencyN int
}

// NewPool builds the pool with an injected randomness source so tests can
// supply a deterministic sequence.
func NewPool(rng *rand.Rand) *Pool {
	return &Pool{
		Brand:    defaultProfile,
		urgency:  urgencyBlocks,
		faqs:     faqTemplates,
		ctas:     ctaPool,
		rng:      rng,
		urgencyN: len(urgencyBlocks),
	}
}

// NextUrgency returns the next urgency block in rotation. Successive calls
// cycle through all blocks before repeating.
func (p *Pool) NextUrgency() UrgencyBlock {
	p.mu.Lock()
	defer p.mu.Unlock()
	block := p.urgency[p.urgV%p.urgencyN]
	p.urgV++
	return block
}

// SampleFAQs returns count FAQ templates in shuffled order. Count larger
// than the registry returns all of them.
func (p *Pool) SampleFAQs(count int) []FaqTemplate {
	p.mu.Lock()
	defer p.mu.Unlock()

	shuffled := make([]FaqTemplate, len(p.faqs))
	copy(shuffled, p.faqs)
	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count < 0 || count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// RandomCTA returns a random CTA block. Every CTA carries the contact URL.
func (p *Pool) RandomCTA() CtaBlock {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctas[p.rng.Intn(len(p.ctas))]
}

// FAQCount reports the registry size.
func (p *Pool) FAQCount() int { return len(p.faqs) }

// UrgencyCount reports the rotation cycle length.
func (p *Pool) UrgencyCount() int { return len(p.urgency) }
