package spaced_repetition_test

import (
	"math"
	"testing"
	"time"

	"github.com/example/kazlearn/internal/spaced_repetition"
	"github.com/example/kazlearn/pkg/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNextInterval(t *testing.T) {
	t.Run("correct answer grows the interval and rewards ease", func(t *testing.T) {
		interval, ease := spaced_repetition.NextInterval(1, 2.5, true)
		if interval != 2 {
			t.Errorf("expected interval 2, got %d", interval)
		}
		if !almostEqual(ease, 2.6) {
			t.Errorf("expected ease 2.6, got %v", ease)
		}

		interval, ease = spaced_repetition.NextInterval(interval, ease, true)
		if interval != 5 {
			t.Errorf("expected interval 5, got %d", interval)
		}
		if !almostEqual(ease, 2.7) {
			t.Errorf("expected ease 2.7, got %v", ease)
		}
	})

	t.Run("incorrect answer resets the interval and penalizes ease", func(t *testing.T) {
		interval, ease := spaced_repetition.NextInterval(13, 2.7, false)
		if interval != 1 {
			t.Errorf("expected interval 1, got %d", interval)
		}
		if !almostEqual(ease, 2.5) {
			t.Errorf("expected ease 2.5, got %v", ease)
		}
	})

	t.Run("ease never exceeds the ceiling", func(t *testing.T) {
		_, ease := spaced_repetition.NextInterval(10, spaced_repetition.MaxEaseFactor, true)
		if !almostEqual(ease, spaced_repetition.MaxEaseFactor) {
			t.Errorf("expected ease clamped to %v, got %v", spaced_repetition.MaxEaseFactor, ease)
		}
	})

	t.Run("ease never drops below the floor", func(t *testing.T) {
		_, ease := spaced_repetition.NextInterval(1, spaced_repetition.MinEaseFactor, false)
		if !almostEqual(ease, spaced_repetition.MinEaseFactor) {
			t.Errorf("expected ease clamped to %v, got %v", spaced_repetition.MinEaseFactor, ease)
		}
	})

	t.Run("interval never drops below one day", func(t *testing.T) {
		interval, _ := spaced_repetition.NextInterval(0, 1.3, true)
		if interval != 1 {
			t.Errorf("expected interval floor of 1, got %d", interval)
		}
	})

	t.Run("many failures in a row stay at the floor", func(t *testing.T) {
		interval, ease := 30, 2.8
		for i := 0; i < 20; i++ {
			interval, ease = spaced_repetition.NextInterval(interval, ease, false)
		}
		if interval != 1 {
			t.Errorf("expected interval 1, got %d", interval)
		}
		if !almostEqual(ease, spaced_repetition.MinEaseFactor) {
			t.Errorf("expected ease %v, got %v", spaced_repetition.MinEaseFactor, ease)
		}
	})
}

func TestProcess(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("schedules the next review interval days ahead", func(t *testing.T) {
		p := &models.WordProgress{
			RepetitionInterval: spaced_repetition.DefaultInterval,
			EaseFactor:         spaced_repetition.DefaultEaseFactor,
		}
		spaced_repetition.Process(p, true, now)

		if p.RepetitionInterval != 2 {
			t.Errorf("expected interval 2, got %d", p.RepetitionInterval)
		}
		if !p.NextReviewAt.Valid {
			t.Fatal("expected next_review_at to be set")
		}
		want := now.AddDate(0, 0, 2)
		if !p.NextReviewAt.Time.Equal(want) {
			t.Errorf("expected next review at %v, got %v", want, p.NextReviewAt.Time)
		}
	})

	t.Run("failure schedules a review tomorrow", func(t *testing.T) {
		p := &models.WordProgress{RepetitionInterval: 13, EaseFactor: 2.7}
		spaced_repetition.Process(p, false, now)

		if p.RepetitionInterval != 1 {
			t.Errorf("expected interval 1, got %d", p.RepetitionInterval)
		}
		want := now.AddDate(0, 0, 1)
		if !p.NextReviewAt.Time.Equal(want) {
			t.Errorf("expected next review at %v, got %v", want, p.NextReviewAt.Time)
		}
	})

	t.Run("does not touch the answer counters", func(t *testing.T) {
		p := &models.WordProgress{
			RepetitionInterval: 1,
			EaseFactor:         2.5,
			TimesSeen:          4,
			TimesCorrect:       3,
			TimesIncorrect:     1,
		}
		spaced_repetition.Process(p, true, now)

		if p.TimesSeen != 4 || p.TimesCorrect != 3 || p.TimesIncorrect != 1 {
			t.Errorf("counters changed: seen=%d correct=%d incorrect=%d",
				p.TimesSeen, p.TimesCorrect, p.TimesIncorrect)
		}
	})
}
