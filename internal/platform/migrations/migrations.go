// Package migrations applies the relational schema for every bounded context.
package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&userRecord{},
		&sessionRecord{},
		&challengeRecord{},
		&expenseRecord{},
		&storeConfigRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID                int64             `gorm:"primaryKey;column:id"`
	Name              string            `gorm:"column:name;index"`
	Price             int64             `gorm:"column:price"`
	Stock             int               `gorm:"column:stock"`
	LowStockThreshold int               `gorm:"column:low_stock_threshold"`
	Category          string            `gorm:"column:category;type:varchar(32);index"`
	Rating            float64           `gorm:"column:rating"`
	ImageURL          string            `gorm:"column:image_url"`
	Description       string            `gorm:"column:description"`
	Guide             string            `gorm:"column:guide"`
	ProTip            string            `gorm:"column:pro_tip"`
	Specs             map[string]string `gorm:"column:specs;serializer:json"`
	Installments      int               `gorm:"column:installments"`
	DeliveryDays      string            `gorm:"column:delivery_days"`
	Tags              pq.StringArray    `gorm:"column:tags;type:text[]"`
	CreatedAt         time.Time         `gorm:"column:created_at"`
	UpdatedAt         time.Time         `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the checkout Postgres adapter. Line items are stored
// denormalized as a JSON snapshot because they are immutable after purchase.
type orderRecord struct {
	ID            string          `gorm:"primaryKey;column:id;size:64"`
	CustomerEmail string          `gorm:"column:customer_email;index"`
	CustomerPhone string          `gorm:"column:customer_phone"`
	FullName      string          `gorm:"column:full_name"`
	Address       string          `gorm:"column:address"`
	City          string          `gorm:"column:city"`
	Region        string          `gorm:"column:region;type:varchar(32)"`
	Lines         []byte          `gorm:"column:lines;type:jsonb"`
	Subtotal      int64           `gorm:"column:subtotal"`
	ShippingFee   int64           `gorm:"column:shipping_fee"`
	Total         int64           `gorm:"column:total"`
	Status        string          `gorm:"column:status;type:varchar(32);index"`
	PlacedAt      time.Time       `gorm:"column:placed_at;index"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	Name           string    `gorm:"column:name"`
	Email          string    `gorm:"column:email;uniqueIndex"`
	PasswordHash   string    `gorm:"column:password_hash"`
	Role           string    `gorm:"column:role;type:varchar(16)"`
	LearningPoints int64     `gorm:"column:learning_points"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Email     string     `gorm:"column:email;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Challenge schema mirrors the verification Postgres store.
type challengeRecord struct {
	Destination string    `gorm:"primaryKey;column:destination;size:320"`
	Code        string    `gorm:"column:code;size:8"`
	Attempts    int       `gorm:"column:attempts"`
	Consumed    bool      `gorm:"column:consumed"`
	IssuedAt    time.Time `gorm:"column:issued_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (challengeRecord) TableName() string { return "verification_challenges" }

// Expense schema mirrors the admin ledger store.
type expenseRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	Category    string    `gorm:"column:category;type:varchar(32);index"`
	Description string    `gorm:"column:description"`
	Amount      int64     `gorm:"column:amount"`
	SpentAt     time.Time `gorm:"column:spent_at;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (expenseRecord) TableName() string { return "expenses" }

// StoreConfig is a single-row table keyed by a fixed id.
type storeConfigRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	StoreName    string    `gorm:"column:store_name"`
	PaymentURL   string    `gorm:"column:payment_url"`
	ShippingURL  string    `gorm:"column:shipping_url"`
	ContactEmail string    `gorm:"column:contact_email"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (storeConfigRecord) TableName() string { return "store_config" }
