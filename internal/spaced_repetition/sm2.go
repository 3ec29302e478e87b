package spaced_repetition

import (
	"database/sql"
	"time"

	"github.com/example/kazlearn/pkg/models"
)

// SM-2-family ease adjustment: correct answers lengthen the interval
// multiplicatively and nudge ease upward; incorrect answers reset the interval
// to one day and penalize ease. Ease is clamped to [MinEaseFactor, MaxEaseFactor].
const (
	// MinEaseFactor is the floor below which ease never drops
	MinEaseFactor = 1.3
	// MaxEaseFactor is the ceiling above which ease never grows
	MaxEaseFactor = 2.8
	// DefaultEaseFactor is the starting ease for a fresh record
	DefaultEaseFactor = 2.5
	// DefaultInterval is the starting review interval in days
	DefaultInterval = 1

	easeReward  = 0.1
	easePenalty = 0.2
)

// NextInterval computes the new review interval (days) and ease factor from
// the current values and the answer outcome
func NextInterval(interval int, ease float64, wasCorrect bool) (int, float64) {
	if wasCorrect {
		newInterval := int(float64(interval) * ease)
		if newInterval < 1 {
			newInterval = 1
		}
		newEase := ease + easeReward
		if newEase > MaxEaseFactor {
			newEase = MaxEaseFactor
		}
		return newInterval, newEase
	}

	newEase := ease - easePenalty
	if newEase < MinEaseFactor {
		newEase = MinEaseFactor
	}
	return 1, newEase
}

// Process applies one answer to a progress record: updates the interval, the
// ease factor and the next review timestamp. Counters are the caller's
// responsibility; Process must be invoked exactly once per recorded answer and
// never on pure status or note changes.
func Process(p *models.WordProgress, wasCorrect bool, now time.Time) {
	interval, ease := NextInterval(p.RepetitionInterval, p.EaseFactor, wasCorrect)
	p.RepetitionInterval = interval
	p.EaseFactor = ease
	p.NextReviewAt = sql.NullTime{Time: now.AddDate(0, 0, interval), Valid: true}
}
