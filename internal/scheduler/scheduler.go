package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/kazlearn/internal/database"
	"github.com/example/kazlearn/internal/learning"
)

// reminderBatch caps how many due words a single reminder mentions
const reminderBatch = 50

// Notifier delivers review reminders to a linked chat
type Notifier interface {
	SendReminder(chatID int64, count int) error
}

// Scheduler runs the background jobs: expired session cleanup and due-word
// reminders
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	users     *database.UserRepository
	sessions  *database.SessionRepository
	engine    *learning.Engine

	startHour int
	endHour   int
}

// New creates a scheduler. notifier may be nil, in which case reminders are
// skipped and only cleanup runs.
func New(notifier Notifier, users *database.UserRepository, sessions *database.SessionRepository, engine *learning.Engine, startHour, endHour int) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		users:     users,
		sessions:  sessions,
		engine:    engine,
		startHour: startHour,
		endHour:   endHour,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.cleanupSessions)
	s.scheduler.Every(1).Hour().Do(s.sendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// cleanupSessions removes auth sessions past their expiry
func (s *Scheduler) cleanupSessions() {
	deleted, err := s.sessions.DeleteExpired()
	if err != nil {
		log.Printf("Error deleting expired sessions: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Deleted %d expired sessions", deleted)
	}
}

// sendReminders pings users with linked Telegram chats about due words,
// within the configured daytime window
func (s *Scheduler) sendReminders() {
	if s.notifier == nil {
		return
	}

	currentHour := time.Now().Hour()
	if currentHour < s.startHour || currentHour > s.endHour {
		return
	}

	users, err := s.users.GetWithTelegram()
	if err != nil {
		log.Printf("Error getting users for reminders: %v", err)
		return
	}

	for _, user := range users {
		due, err := s.engine.DueForReview(user.ID, reminderBatch)
		if err != nil {
			log.Printf("Error getting due words for user %d: %v", user.ID, err)
			continue
		}
		if len(due) == 0 {
			continue
		}
		if err := s.notifier.SendReminder(user.TelegramChatID.Int64, len(due)); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

// RunManualCheck forces a reminder check for one user
func (s *Scheduler) RunManualCheck(userID int) error {
	if s.notifier == nil {
		return nil
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.TelegramChatID.Valid {
		return nil
	}

	due, err := s.engine.DueForReview(userID, reminderBatch)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}
	return s.notifier.SendReminder(user.TelegramChatID.Int64, len(due))
}
