package main

import (
	"slices"

	"github.com/samber/lo"

	"showdoidioma/internal/game"
	"showdoidioma/internal/types"
)

// Mood is how the host mascot is drawn.
type Mood string

const (
	MoodIdle     Mood = "idle"
	MoodTalking  Mood = "talking"
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodThinking Mood = "thinking"
)

// hostMood derives the mascot's mood from the answer state and whether a
// question is loading. An unanswered host with nothing to say is idle.
func hostMood(answer game.AnswerState, loading, speaking bool) Mood {
	switch {
	case loading:
		return MoodThinking
	case answer == game.SelectedPending:
		return MoodThinking
	case answer == game.RevealedCorrect:
		return MoodHappy
	case answer == game.RevealedIncorrect:
		return MoodSad
	case speaking:
		return MoodTalking
	}
	return MoodIdle
}

// buildStateView turns a snapshot into what the client renders.
func buildStateView(st game.State, effects []types.Effect) stateView {
	v := stateView{
		State:   st,
		Mood:    hostMood(st.Answer, st.Loading, st.HostMessage != ""),
		Effects: effects,
	}
	if st.Question == nil {
		return v
	}
	v.Options = lo.Map(st.Question.Options, func(text string, i int) optionView {
		ov := optionView{
			Index:    i,
			Text:     text,
			Hidden:   slices.Contains(st.Hidden, i),
			Selected: st.Selected == i,
		}
		if len(st.Poll) == len(st.Question.Options) && !ov.Hidden {
			votes := st.Poll[i]
			ov.Votes = &votes
		}
		return ov
	})
	return v
}
