package blog

import (
	"math/rand"

	"savvy-blog/internal/domain/entity"
)

// SamplePosts draws up to count posts uniformly at random from candidates,
// skipping any whose id appears in exclude. The draw is a partial
// Fisher-Yates shuffle over a filtered copy, so the input slice is never
// reordered and each eligible post is picked at most once.
func SamplePosts(rng *rand.Rand, candidates []*entity.BlogPost, exclude map[int64]struct{}, count int) []*entity.BlogPost {
	eligible := make([]*entity.BlogPost, 0, len(candidates))
	for _, p := range candidates {
		if _, skip := exclude[p.ID]; skip {
			continue
		}
		eligible = append(eligible, p)
	}

	if count > len(eligible) {
		count = len(eligible)
	}
	if count <= 0 {
		return []*entity.BlogPost{}
	}

	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}
	return eligible[:count]
}
