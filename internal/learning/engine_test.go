package learning_test

import (
	"testing"
	"time"

	"github.com/example/kazlearn/internal/learning"
	"github.com/example/kazlearn/pkg/models"
)

// fakeStore is an in-memory Store keyed by (user, word)
type fakeStore struct {
	records map[[2]int]*models.WordProgress
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[[2]int]*models.WordProgress)}
}

func (s *fakeStore) Get(userID, wordID int) (*models.WordProgress, error) {
	if p, ok := s.records[[2]int{userID, wordID}]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, learning.ErrNotFound
}

func (s *fakeStore) Create(p *models.WordProgress) (*models.WordProgress, error) {
	key := [2]int{p.UserID, p.WordID}
	if existing, ok := s.records[key]; ok {
		cp := *existing
		return &cp, nil
	}
	s.nextID++
	p.ID = s.nextID
	cp := *p
	s.records[key] = &cp
	out := cp
	return &out, nil
}

func (s *fakeStore) UpdateWithLock(userID, wordID int, fn func(p *models.WordProgress) error) (*models.WordProgress, error) {
	p, ok := s.records[[2]int{userID, wordID}]
	if !ok {
		return nil, learning.ErrNotFound
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

func (s *fakeStore) Delete(userID, wordID int) (bool, error) {
	key := [2]int{userID, wordID}
	if _, ok := s.records[key]; !ok {
		return false, nil
	}
	delete(s.records, key)
	return true, nil
}

func (s *fakeStore) DueForReview(userID int, now time.Time, limit int) ([]models.WordProgressWithWord, error) {
	var due []models.WordProgressWithWord
	for _, p := range s.records {
		if p.UserID != userID || !p.NextReviewAt.Valid || p.NextReviewAt.Time.After(now) {
			continue
		}
		active := false
		for _, st := range learning.ActiveStatuses() {
			if p.Status == st {
				active = true
				break
			}
		}
		if !active {
			continue
		}
		due = append(due, models.WordProgressWithWord{WordProgress: *p})
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (s *fakeStore) List(userID int, f learning.ListFilter) ([]models.WordProgressWithWord, error) {
	var out []models.WordProgressWithWord
	for _, p := range s.records {
		if p.UserID != userID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, models.WordProgressWithWord{WordProgress: *p})
	}
	return out, nil
}

func (s *fakeStore) Aggregate(userID int, now time.Time) (*models.LearningStats, error) {
	stats := &models.LearningStats{WordsByStatus: make(map[string]int)}
	for _, p := range s.records {
		if p.UserID != userID {
			continue
		}
		stats.TotalWords++
		stats.WordsByStatus[string(p.Status)]++
		stats.TotalSeen += p.TimesSeen
		stats.TotalCorrect += p.TimesCorrect
	}
	if stats.TotalSeen > 0 {
		stats.AccuracyRate = float64(stats.TotalCorrect) / float64(stats.TotalSeen) * 100
	}
	return stats, nil
}

// fakeCatalogue knows a fixed set of word ids
type fakeCatalogue map[int]bool

func (c fakeCatalogue) WordExists(wordID int) (bool, error) {
	return c[wordID], nil
}

func newEngine() (*learning.Engine, *fakeStore) {
	store := newFakeStore()
	catalog := fakeCatalogue{1: true, 2: true, 3: true}
	return learning.NewEngine(store, catalog), store
}

func TestAddToList(t *testing.T) {
	t.Run("creates a record with schedule defaults", func(t *testing.T) {
		engine, _ := newEngine()
		record, err := engine.AddToList(7, 1, models.StatusLearning)
		if err != nil {
			t.Fatal(err)
		}
		if record.Status != models.StatusLearning {
			t.Errorf("expected status learning, got %s", record.Status)
		}
		if record.RepetitionInterval != 1 {
			t.Errorf("expected default interval 1, got %d", record.RepetitionInterval)
		}
		if record.EaseFactor != 2.5 {
			t.Errorf("expected default ease 2.5, got %v", record.EaseFactor)
		}
		if record.TimesSeen != 0 {
			t.Errorf("expected fresh counters, got times_seen=%d", record.TimesSeen)
		}
	})

	t.Run("empty status defaults to want_to_learn", func(t *testing.T) {
		engine, _ := newEngine()
		record, err := engine.AddToList(7, 1, "")
		if err != nil {
			t.Fatal(err)
		}
		if record.Status != models.StatusWantToLearn {
			t.Errorf("expected want_to_learn, got %s", record.Status)
		}
	})

	t.Run("re-adding returns the existing record unchanged", func(t *testing.T) {
		engine, _ := newEngine()
		first, err := engine.AddToList(7, 1, models.StatusLearning)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := engine.RecordAnswer(7, 1, true); err != nil {
			t.Fatal(err)
		}

		again, err := engine.AddToList(7, 1, models.StatusMastered)
		if err != nil {
			t.Fatal(err)
		}
		if again.ID != first.ID {
			t.Errorf("expected the same record id %d, got %d", first.ID, again.ID)
		}
		if again.Status != models.StatusLearning {
			t.Errorf("re-add must not change status, got %s", again.Status)
		}
		if again.TimesSeen != 1 {
			t.Errorf("re-add must not reset counters, got times_seen=%d", again.TimesSeen)
		}
	})

	t.Run("rejects words missing from the catalogue", func(t *testing.T) {
		engine, store := newEngine()
		if _, err := engine.AddToList(7, 99, models.StatusLearning); err != learning.ErrUnknownWord {
			t.Errorf("expected ErrUnknownWord, got %v", err)
		}
		if len(store.records) != 0 {
			t.Error("no record should be written for an unknown word")
		}
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		engine, _ := newEngine()
		if _, err := engine.AddToList(7, 1, "memorized"); err != learning.ErrInvalidStatus {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})
}

func TestSetStatus(t *testing.T) {
	t.Run("stamps first_learned_at on first entry into learned only", func(t *testing.T) {
		engine, _ := newEngine()
		if _, err := engine.AddToList(7, 1, models.StatusLearning); err != nil {
			t.Fatal(err)
		}

		record, err := engine.SetStatus(7, 1, models.StatusLearned)
		if err != nil {
			t.Fatal(err)
		}
		if !record.FirstLearnedAt.Valid {
			t.Fatal("expected first_learned_at to be stamped")
		}
		stamped := record.FirstLearnedAt.Time

		// Leave and re-enter learned; the stamp must survive
		if _, err := engine.SetStatus(7, 1, models.StatusReview); err != nil {
			t.Fatal(err)
		}
		record, err = engine.SetStatus(7, 1, models.StatusLearned)
		if err != nil {
			t.Fatal(err)
		}
		if !record.FirstLearnedAt.Time.Equal(stamped) {
			t.Errorf("first_learned_at changed from %v to %v", stamped, record.FirstLearnedAt.Time)
		}
	})

	t.Run("status changes never advance the schedule", func(t *testing.T) {
		engine, _ := newEngine()
		if _, err := engine.AddToList(7, 1, models.StatusLearning); err != nil {
			t.Fatal(err)
		}

		record, err := engine.SetStatus(7, 1, models.StatusReview)
		if err != nil {
			t.Fatal(err)
		}
		if record.RepetitionInterval != 1 || record.EaseFactor != 2.5 {
			t.Errorf("schedule moved on a status change: interval=%d ease=%v",
				record.RepetitionInterval, record.EaseFactor)
		}
		if record.NextReviewAt.Valid {
			t.Error("next_review_at should stay unset until an answer is recorded")
		}
	})

	t.Run("any transition is allowed", func(t *testing.T) {
		engine, _ := newEngine()
		if _, err := engine.AddToList(7, 1, models.StatusMastered); err != nil {
			t.Fatal(err)
		}
		record, err := engine.SetStatus(7, 1, models.StatusWantToLearn)
		if err != nil {
			t.Fatal(err)
		}
		if record.Status != models.StatusWantToLearn {
			t.Errorf("expected want_to_learn, got %s", record.Status)
		}
	})

	t.Run("missing record yields ErrNotFound", func(t *testing.T) {
		engine, _ := newEngine()
		if _, err := engine.SetStatus(7, 1, models.StatusLearned); err != learning.ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRecordAnswer(t *testing.T) {
	t.Run("keeps the counter invariant and advances the schedule once", func(t *testing.T) {
		engine, _ := newEngine()
		if _, err := engine.AddToList(7, 1, models.StatusLearning); err != nil {
			t.Fatal(err)
		}

		record, err := engine.RecordAnswer(7, 1, true)
		if err != nil {
			t.Fatal(err)
		}
		if record.TimesSeen != 1 || record.TimesCorrect != 1 || record.TimesIncorrect != 0 {
			t.Errorf("unexpected counters after correct answer: %d/%d/%d",
				record.TimesSeen, record.TimesCorrect, record.TimesIncorrect)
		}
		if record.RepetitionInterval != 2 {
			t.Errorf("expected interval 2 after one correct answer, got %d", record.RepetitionInterval)
		}
		if !record.NextReviewAt.Valid {
			t.Error("expected next_review_at to be scheduled")
		}
		if !record.LastPracticedAt.Valid {
			t.Error("expected last_practiced_at to be stamped")
		}

		record, err = engine.RecordAnswer(7, 1, false)
		if err != nil {
			t.Fatal(err)
		}
		if record.TimesSeen != 2 || record.TimesCorrect != 1 || record.TimesIncorrect != 1 {
			t.Errorf("unexpected counters after incorrect answer: %d/%d/%d",
				record.TimesSeen, record.TimesCorrect, record.TimesIncorrect)
		}
		if record.TimesCorrect+record.TimesIncorrect != record.TimesSeen {
			t.Error("counter invariant broken")
		}
		if record.RepetitionInterval != 1 {
			t.Errorf("expected interval reset to 1, got %d", record.RepetitionInterval)
		}
	})

	t.Run("missing record yields ErrNotFound", func(t *testing.T) {
		engine, _ := newEngine()
		if _, err := engine.RecordAnswer(7, 1, true); err != learning.ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDueForReview(t *testing.T) {
	t.Run("excludes mastered and want_to_learn words", func(t *testing.T) {
		engine, store := newEngine()
		for wordID, status := range map[int]models.LearningStatus{
			1: models.StatusLearning,
			2: models.StatusMastered,
			3: models.StatusWantToLearn,
		} {
			if _, err := engine.AddToList(7, wordID, status); err != nil {
				t.Fatal(err)
			}
			// Make every word overdue
			if _, err := store.UpdateWithLock(7, wordID, func(p *models.WordProgress) error {
				p.NextReviewAt.Time = time.Now().UTC().AddDate(0, 0, -1)
				p.NextReviewAt.Valid = true
				return nil
			}); err != nil {
				t.Fatal(err)
			}
		}

		due, err := engine.DueForReview(7, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(due) != 1 {
			t.Fatalf("expected 1 due word, got %d", len(due))
		}
		if due[0].WordID != 1 {
			t.Errorf("expected word 1 to be due, got %d", due[0].WordID)
		}
	})

	t.Run("reading the queue does not move the schedule", func(t *testing.T) {
		engine, _ := newEngine()
		if _, err := engine.AddToList(7, 1, models.StatusLearning); err != nil {
			t.Fatal(err)
		}
		before, err := engine.RecordAnswer(7, 1, false)
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < 3; i++ {
			if _, err := engine.DueForReview(7, 10); err != nil {
				t.Fatal(err)
			}
		}

		after, err := engine.Get(7, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !after.NextReviewAt.Time.Equal(before.NextReviewAt.Time) {
			t.Error("next_review_at changed on a pure read")
		}
	})
}

func TestRatingAndNotes(t *testing.T) {
	engine, _ := newEngine()
	if _, err := engine.AddToList(7, 1, models.StatusLearning); err != nil {
		t.Fatal(err)
	}

	t.Run("stores a valid rating", func(t *testing.T) {
		record, err := engine.SetDifficultyRating(7, 1, models.RatingHard)
		if err != nil {
			t.Fatal(err)
		}
		if record.DifficultyRating.String != string(models.RatingHard) {
			t.Errorf("expected rating hard, got %s", record.DifficultyRating.String)
		}
	})

	t.Run("rejects unknown ratings", func(t *testing.T) {
		if _, err := engine.SetDifficultyRating(7, 1, "impossible"); err != learning.ErrInvalidRating {
			t.Errorf("expected ErrInvalidRating, got %v", err)
		}
	})

	t.Run("rating and notes leave the schedule alone", func(t *testing.T) {
		record, err := engine.SetNotes(7, 1, "көмек = help")
		if err != nil {
			t.Fatal(err)
		}
		if record.UserNotes.String != "көмек = help" {
			t.Errorf("unexpected notes: %s", record.UserNotes.String)
		}
		if record.TimesSeen != 0 || record.NextReviewAt.Valid {
			t.Error("notes update must not touch counters or schedule")
		}
	})
}

func TestRemove(t *testing.T) {
	engine, _ := newEngine()
	if _, err := engine.AddToList(7, 1, models.StatusLearning); err != nil {
		t.Fatal(err)
	}

	removed, err := engine.Remove(7, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Error("expected the record to be removed")
	}

	removed, err = engine.Remove(7, 1)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Error("second remove should report nothing deleted")
	}

	if _, err := engine.Get(7, 1); err != learning.ErrNotFound {
		t.Errorf("expected ErrNotFound after removal, got %v", err)
	}
}

func TestStats(t *testing.T) {
	engine, _ := newEngine()
	if _, err := engine.AddToList(7, 1, models.StatusLearning); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.AddToList(7, 2, models.StatusLearned); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.RecordAnswer(7, 1, true); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.RecordAnswer(7, 1, false); err != nil {
		t.Fatal(err)
	}

	stats, err := engine.Stats(7)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalWords != 2 {
		t.Errorf("expected 2 words, got %d", stats.TotalWords)
	}
	if stats.WordsByStatus[string(models.StatusLearning)] != 1 {
		t.Errorf("expected 1 learning word, got %d", stats.WordsByStatus[string(models.StatusLearning)])
	}
	if stats.TotalSeen != 2 || stats.TotalCorrect != 1 {
		t.Errorf("expected 2 seen / 1 correct, got %d/%d", stats.TotalSeen, stats.TotalCorrect)
	}
	if stats.AccuracyRate != 50 {
		t.Errorf("expected 50%% accuracy, got %v", stats.AccuracyRate)
	}
}
