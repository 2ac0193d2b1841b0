package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thinkfashz/Osart/internal/domains/verification/domain"
	"github.com/thinkfashz/Osart/internal/domains/verification/ports"
)

var (
	_ ports.Store  = (*Store)(nil)
	_ ports.Purger = (*Store)(nil)
)

// Store persists challenges in PostgreSQL. Unlike the Redis store nothing
// expires on its own, so a purger process sweeps stale rows.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

type challengeRecord struct {
	Destination string    `gorm:"primaryKey;column:destination;type:varchar(320)"`
	Code        string    `gorm:"column:code;type:varchar(8)"`
	Attempts    int       `gorm:"column:attempts"`
	Consumed    bool      `gorm:"column:consumed"`
	IssuedAt    time.Time `gorm:"column:issued_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index"`
}

func (challengeRecord) TableName() string { return "verification_challenges" }

func (s *Store) Save(ctx context.Context, challenge *domain.Challenge) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if challenge == nil || challenge.Destination == "" {
		return domain.ErrEmptyDestination
	}
	record := challengeRecord{
		Destination: challenge.Destination,
		Code:        challenge.Code,
		Attempts:    challenge.Attempts,
		Consumed:    challenge.Consumed,
		IssuedAt:    challenge.IssuedAt,
		ExpiresAt:   challenge.ExpiresAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "destination"}},
			UpdateAll: true,
		}).Create(&record).Error
}

func (s *Store) Get(ctx context.Context, destination string) (*domain.Challenge, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record challengeRecord
	err := s.db.WithContext(ctx).First(&record, "destination = ?", domain.NormalizeDestination(destination)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.Challenge{
		Destination: record.Destination,
		Code:        record.Code,
		Attempts:    record.Attempts,
		Consumed:    record.Consumed,
		IssuedAt:    record.IssuedAt,
		ExpiresAt:   record.ExpiresAt,
	}, nil
}

func (s *Store) Delete(ctx context.Context, destination string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Delete(&challengeRecord{}, "destination = ?", domain.NormalizeDestination(destination)).Error
}

// PurgeExpired removes challenges whose expiry has passed and returns how many
// rows were swept.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Delete(&challengeRecord{}, "expires_at < ?", time.Now())
	return result.RowsAffected, result.Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres verification store not configured")
	}
	return nil
}
