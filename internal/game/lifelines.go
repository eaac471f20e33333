package game

import (
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"

	"showdoidioma/internal/types"
)

// RevealCount is how many wrong options the cards lifeline hides.
const RevealCount = 2

// Poll bounds for the correct option, inclusive.
const (
	PollCorrectMin = 50
	PollCorrectMax = 79
)

// Rand is the randomness the poll lifeline draws from.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// SampleWrong picks n random entries of wrong.
func SampleWrong(wrong []int, n int) []int {
	return lo.Samples(wrong, n)
}

func wrongOptions(correct int) []int {
	return lo.Filter(lo.Range(types.OptionCount), func(i int, _ int) bool {
		return i != correct
	})
}

// revealWrongOptions returns RevealCount distinct wrong indices in ascending
// order. A picker that returns anything else is ignored in favour of the
// first wrong options.
func revealWrongOptions(correct int, pick func(wrong []int, n int) []int) []int {
	wrong := wrongOptions(correct)
	if pick == nil {
		pick = SampleWrong
	}
	picked := lo.Uniq(lo.Filter(pick(slices.Clone(wrong), RevealCount), func(i int, _ int) bool {
		return slices.Contains(wrong, i)
	}))
	if len(picked) != RevealCount {
		picked = wrong[:RevealCount]
	}
	picked = slices.Clone(picked)
	slices.Sort(picked)
	return picked
}

// pollDistribution builds the audience poll: the correct option takes
// [PollCorrectMin, PollCorrectMax], the other options split the rest in index
// order with the last one absorbing the remainder.
func pollDistribution(correct int, rng Rand) []int {
	if rng == nil {
		rng = globalRand{}
	}
	poll := make([]int, types.OptionCount)
	span := PollCorrectMax - PollCorrectMin
	share := PollCorrectMin + clamp(rng.IntN(span+1), 0, span)
	poll[correct] = share
	remaining := 100 - share

	others := wrongOptions(correct)
	for i, idx := range others {
		if i == len(others)-1 {
			poll[idx] = remaining
			break
		}
		v := 0
		if remaining > 0 {
			v = clamp(rng.IntN(remaining), 0, remaining)
		}
		poll[idx] = v
		remaining -= v
	}
	return poll
}

func clamp(v, low, high int) int {
	return max(low, min(v, high))
}
