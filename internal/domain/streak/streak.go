// Package streak computes win/loss runs from a player's chronological
// outcome sequence.
package streak

import "github.com/torryt/foos-and-friends-sub002/internal/domain/match"

// Kind labels the current run.
type Kind string

const (
	KindNone Kind = "none"
	KindWin  Kind = "win"
	KindLoss Kind = "loss"
)

// Data summarizes a player's streaks. BestWin and WorstLoss are all-time
// maxima; Current describes the run the player is on right now. Draws break
// a run without starting one.
type Data struct {
	Current       Kind
	CurrentLength int
	BestWin       int
	WorstLoss     int
}

// Compute takes outcomes ordered oldest first.
func Compute(outcomes []match.Outcome) Data {
	var d Data

	// Pass 1, oldest to newest: longest win run and longest loss run.
	var winRun, lossRun int
	for _, o := range outcomes {
		switch o {
		case match.OutcomeWin:
			winRun++
			lossRun = 0
		case match.OutcomeLoss:
			lossRun++
			winRun = 0
		default:
			winRun, lossRun = 0, 0
		}
		if winRun > d.BestWin {
			d.BestWin = winRun
		}
		if lossRun > d.WorstLoss {
			d.WorstLoss = lossRun
		}
	}

	// Pass 2, newest to oldest: the active run.
	d.Current = KindNone
	for i := len(outcomes) - 1; i >= 0; i-- {
		o := outcomes[i]
		if o == match.OutcomeDraw {
			break
		}

		kind := KindWin
		if o == match.OutcomeLoss {
			kind = KindLoss
		}

		if d.Current == KindNone {
			d.Current = kind
		} else if d.Current != kind {
			break
		}
		d.CurrentLength++
	}

	return d
}
