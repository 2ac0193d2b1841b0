package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thinkfashz/Osart/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps one session row per email so a purger can sweep stale
// tokens.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Email     string     `gorm:"column:email;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

func (s *SessionStore) Save(ctx context.Context, email, token string, expiresAt time.Time) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	// one active session per email
	if err := s.db.WithContext(ctx).Delete(&sessionRecord{}, "email = ?", email).Error; err != nil {
		return err
	}
	record := sessionRecord{Token: token, Email: email, ExpiresAt: &expiresAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, UpdateAll: true}).
		Create(&record).Error
}

func (s *SessionStore) Delete(ctx context.Context, email string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "email = ?", email).Error
}

// PurgeExpired removes sessions whose expiry has passed and returns how many
// rows were swept.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Delete(&sessionRecord{}, "expires_at IS NOT NULL AND expires_at < ?", time.Now())
	return result.RowsAffected, result.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}
