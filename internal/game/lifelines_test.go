package game

import (
	"slices"
	"testing"

	"showdoidioma/internal/types"
)

func checkPoll(t *testing.T, poll []int, correct int) {
	t.Helper()
	if len(poll) != types.OptionCount {
		t.Fatalf("poll has %d entries", len(poll))
	}
	sum := 0
	for i, v := range poll {
		if v < 0 {
			t.Fatalf("poll[%d] = %d is negative: %v", i, v, poll)
		}
		sum += v
	}
	if sum != 100 {
		t.Fatalf("poll sums to %d: %v", sum, poll)
	}
	if poll[correct] < PollCorrectMin || poll[correct] > PollCorrectMax {
		t.Fatalf("correct option got %d, want [%d,%d]", poll[correct], PollCorrectMin, PollCorrectMax)
	}
}

func TestPollDistributionSumsTo100(t *testing.T) {
	for correct := range types.OptionCount {
		for range 500 {
			checkPoll(t, pollDistribution(correct, nil), correct)
		}
	}
}

func TestPollDistributionBounds(t *testing.T) {
	tests := []struct {
		name   string
		values []int
	}{
		{"all zero", []int{0}},
		{"all max", []int{1 << 30}},
		{"alternating", []int{0, 1 << 30}},
		{"mid", []int{15, 10, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for correct := range types.OptionCount {
				checkPoll(t, pollDistribution(correct, &seqRand{values: tt.values}), correct)
			}
		})
	}
}

func TestPollDistributionOrder(t *testing.T) {
	// correct=2 takes 50+10, option 0 draws 25 of 40, option 1 draws 5 of
	// 15, option 3 keeps the remaining 10.
	got := pollDistribution(2, &seqRand{values: []int{10, 25, 5}})
	want := []int{25, 5, 60, 10}
	if !slices.Equal(got, want) {
		t.Errorf("poll = %v, want %v", got, want)
	}
}

func TestRevealWrongOptions(t *testing.T) {
	for correct := range types.OptionCount {
		for range 100 {
			hidden := revealWrongOptions(correct, nil)
			if len(hidden) != RevealCount {
				t.Fatalf("hid %d options", len(hidden))
			}
			if hidden[0] == hidden[1] {
				t.Fatalf("duplicate hidden option: %v", hidden)
			}
			if slices.Contains(hidden, correct) {
				t.Fatalf("correct option %d hidden: %v", correct, hidden)
			}
			if !slices.IsSorted(hidden) {
				t.Fatalf("hidden not sorted: %v", hidden)
			}
		}
	}
}

func TestRevealIgnoresBadPicker(t *testing.T) {
	pickers := map[string]func([]int, int) []int{
		"picks correct": func([]int, int) []int { return []int{0, 1} },
		"too few":       func(w []int, _ int) []int { return w[:1] },
		"duplicates":    func(w []int, _ int) []int { return []int{w[0], w[0]} },
		"out of range":  func([]int, int) []int { return []int{7, 9} },
	}
	for name, pick := range pickers {
		t.Run(name, func(t *testing.T) {
			hidden := revealWrongOptions(0, pick)
			if !slices.Equal(hidden, []int{1, 2}) {
				t.Errorf("hidden = %v, want fallback [1 2]", hidden)
			}
		})
	}
}
