package out

import (
	"math/rand/v2"

	"mugrush/internal/modules/drinking/domain"
	drinkingout "mugrush/internal/modules/drinking/port/out"
)

type PCGRandomSource struct{}

func NewPCGRandomSource() drinkingout.RandomSource {
	return PCGRandomSource{}
}

func (PCGRandomSource) New(seed int64) domain.Random {
	return &pcgRandom{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))}
}

type pcgRandom struct {
	r *rand.Rand
}

func (p *pcgRandom) Float64Range(min, max float64) float64 {
	return min + p.r.Float64()*(max-min)
}

func (p *pcgRandom) Side() domain.Side {
	if p.r.IntN(2) == 0 {
		return domain.SideLeft
	}
	return domain.SideRight
}
