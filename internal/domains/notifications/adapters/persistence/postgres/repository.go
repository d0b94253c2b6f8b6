package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/domain"
	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists notifications in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&notificationRecord{})
	}
	return repo
}

type notificationRecord struct {
	ID        int64      `gorm:"primaryKey;column:id"`
	UserID    int64      `gorm:"column:user_id;index:idx_notifications_user_status"`
	Message   string     `gorm:"column:message"`
	Type      string     `gorm:"column:type;type:varchar(32)"`
	Status    string     `gorm:"column:status;type:varchar(16);index:idx_notifications_user_status"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	ReadAt    *time.Time `gorm:"column:read_at"`
}

func (notificationRecord) TableName() string { return "notifications" }

func toRecord(notification *domain.Notification) notificationRecord {
	return notificationRecord{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Message:   notification.Message,
		Type:      notification.Type,
		Status:    string(notification.Status),
		CreatedAt: notification.CreatedAt,
		ReadAt:    notification.ReadAt,
	}
}

func (r notificationRecord) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Message:   r.Message,
		Type:      r.Type,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
		ReadAt:    r.ReadAt,
	}
}

// Save inserts or updates a notification keyed by id.
func (r *Repository) Save(ctx context.Context, notification *domain.Notification) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, errors.New("notification is nil")
	}
	clone := *notification
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "message", "type", "status", "read_at"}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a notification by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record notificationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a notification by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&notificationRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns notifications matching the filter ordered by id.
func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&notificationRecord{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	var records []notificationRecord
	if err := query.Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	notifications := make([]*domain.Notification, 0, len(records))
	for i := range records {
		notifications = append(notifications, records[i].toDomain())
	}
	return notifications, nil
}

func (r *Repository) ensureDB() error {
	if r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}
