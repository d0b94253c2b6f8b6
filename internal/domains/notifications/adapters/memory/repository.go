package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory notification persistence adapter. Identifiers
// come from a monotonic counter that is never reused.
type Repository struct {
	mu            sync.RWMutex
	notifications map[int64]*domain.Notification
	nextID        int64
}

func NewRepository() *Repository {
	return &Repository{notifications: map[int64]*domain.Notification{}}
}

func (r *Repository) Save(_ context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if notification == nil {
		return nil, errors.New("notification is nil")
	}
	clone := *notification
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.notifications[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *notification
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.notifications, id)
	return nil
}

// List applies the filter fields with AND semantics, ordered by id.
func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Notification, 0, len(r.notifications))
	for _, notification := range r.notifications {
		if filter.UserID != nil && notification.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && notification.Status != *filter.Status {
			continue
		}
		clone := *notification
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
