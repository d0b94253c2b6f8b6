package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&productRecord{},
		&orderRecord{},
		&notificationRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;index"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Name      string          `gorm:"column:name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Category  string          `gorm:"column:category;index"`
	Stock     int32           `gorm:"column:stock"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         int64           `gorm:"primaryKey;column:id"`
	UserID     int64           `gorm:"column:user_id;index:idx_orders_user_status"`
	ProductID  int64           `gorm:"column:product_id"`
	Quantity   int32           `gorm:"column:quantity"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(12,2)"`
	Status     string          `gorm:"column:status;type:varchar(32);index:idx_orders_user_status"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Notification schema mirrors the notifications Postgres adapter.
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
