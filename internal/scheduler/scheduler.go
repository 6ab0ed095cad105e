package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/murojaahbot/pkg/models"
	"github.com/go-co-op/gocron"
)

// reminderCron fires at the top of every hour
const reminderCron = "0 * * * *"

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	accounts  AccountLister
	location  *time.Location
	timeout   time.Duration
	now       func() time.Time
}

// Notifier interface for sending notifications
type Notifier interface {
	SendReminder(ctx context.Context, acc models.Account) error
}

// AccountLister returns the logged in accounts that want a reminder at hour
type AccountLister interface {
	ListForReminder(ctx context.Context, hour int) ([]models.Account, error)
}

// New creates a new scheduler instance. Reminder hours are read in location.
func New(notifier Notifier, accounts AccountLister, location *time.Location) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(location),
		notifier:  notifier,
		accounts:  accounts,
		location:  location,
		timeout:   5 * time.Minute,
		now:       time.Now,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Cron(reminderCron).Do(s.checkAndSendReminders); err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	log.Printf("Reminder scheduler started (%s)", s.location)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.RunCheck(ctx); err != nil {
		log.Printf("Error checking reminders: %v", err)
	}
}

// RunCheck sends reminders to every account whose reminder hour is the
// current hour and returns how many were notified. A failure for one account
// is logged and does not stop the others.
func (s *Scheduler) RunCheck(ctx context.Context) (int, error) {
	currentHour := s.now().In(s.location).Hour()

	accounts, err := s.accounts.ListForReminder(ctx, currentHour)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts for hour %d: %w", currentHour, err)
	}

	sent := 0
	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := s.notifier.SendReminder(ctx, acc); err != nil {
			log.Printf("Error sending reminder to chat %d: %v", acc.ChatID, err)
			continue
		}
		sent++
	}

	if len(accounts) > 0 {
		log.Printf("Reminder check for %02d:00: %d of %d accounts processed", currentHour, sent, len(accounts))
	}
	return sent, nil
}
