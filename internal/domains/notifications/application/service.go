package application

import (
	"context"
	"sort"
	"time"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/ports"
)

// Service implements the notifications bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the notifications service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Create records an unread notification for a user.
func (s *Service) Create(ctx context.Context, input ports.CreateNotificationInput) (*domain.Notification, error) {
	notification, err := domain.NewNotification(input.UserID, input.Message, input.Type, time.Now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, notification)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetByID loads a single notification.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns notifications matching all set filter fields, newest first.
func (s *Service) List(ctx context.Context, filter ports.Filter) ([]*domain.Notification, error) {
	notifications, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].ID > notifications[j].ID
		}
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// MarkRead flips one notification to read. Marking an already-read
// notification succeeds without changing ReadAt.
func (s *Service) MarkRead(ctx context.Context, id int64) (*domain.Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !notification.MarkRead(time.Now().UTC()) {
		return notification, nil
	}
	return s.repo.Save(ctx, notification)
}

// MarkAllRead flips every unread notification of a user to read and
// reports how many were updated.
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int, error) {
	unread := domain.StatusUnread
	notifications, err := s.repo.List(ctx, ports.Filter{UserID: &userID, Status: &unread})
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	updated := 0
	for _, notification := range notifications {
		if !notification.MarkRead(now) {
			continue
		}
		if _, err := s.repo.Save(ctx, notification); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// Delete removes a notification.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// StatsForUser aggregates a single user's notifications by status and type.
func (s *Service) StatsForUser(ctx context.Context, userID int64) (ports.UserStats, error) {
	notifications, err := s.repo.List(ctx, ports.Filter{UserID: &userID})
	if err != nil {
		return ports.UserStats{}, err
	}
	stats := ports.UserStats{
		UserID: userID,
		Total:  len(notifications),
		ByType: map[string]int{},
	}
	for _, notification := range notifications {
		if notification.Status == domain.StatusRead {
			stats.Read++
		} else {
			stats.Unread++
		}
		stats.ByType[notification.Type]++
	}
	return stats, nil
}

// Broadcast fans a message out to every user that already received at least
// one notification. Recipients are resolved from the store itself; there is
// no user directory on this side of the system.
func (s *Service) Broadcast(ctx context.Context, input ports.BroadcastInput) ([]*domain.Notification, error) {
	existing, err := s.repo.List(ctx, ports.Filter{})
	if err != nil {
		return nil, err
	}
	seen := map[int64]struct{}{}
	recipients := make([]int64, 0)
	for _, notification := range existing {
		if _, ok := seen[notification.UserID]; ok {
			continue
		}
		seen[notification.UserID] = struct{}{}
		recipients = append(recipients, notification.UserID)
	}
	sort.Slice(recipients, func(i, j int) bool { return recipients[i] < recipients[j] })

	kind := input.Type
	if kind == "" {
		kind = "announcement"
	}
	now := time.Now().UTC()
	created := make([]*domain.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notification, err := domain.NewNotification(userID, input.Message, kind, now)
		if err != nil {
			return nil, mapError(err)
		}
		saved, err := s.repo.Save(ctx, notification)
		if err != nil {
			return created, err
		}
		created = append(created, saved)
	}
	return created, nil
}

var _ ports.Service = (*Service)(nil)
