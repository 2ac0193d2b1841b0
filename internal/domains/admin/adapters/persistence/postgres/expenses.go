package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thinkfashz/Osart/internal/domains/admin/domain"
	"github.com/thinkfashz/Osart/internal/domains/admin/ports"
)

var _ ports.ExpenseStore = (*ExpenseStore)(nil)

// ExpenseStore persists the spending ledger in PostgreSQL.
type ExpenseStore struct {
	db *gorm.DB
}

func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

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

func (s *ExpenseStore) Save(ctx context.Context, expense *domain.Expense) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := expenseRecord{
		ID:          expense.ID,
		Category:    string(expense.Category),
		Description: expense.Description,
		Amount:      expense.Amount,
		SpentAt:     expense.SpentAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&record).Error
}

func (s *ExpenseStore) List(ctx context.Context) ([]*domain.Expense, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []expenseRecord
	if err := s.db.WithContext(ctx).Order("spent_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	expenses := make([]*domain.Expense, 0, len(records))
	for _, record := range records {
		expenses = append(expenses, &domain.Expense{
			ID:          record.ID,
			Category:    domain.ExpenseCategory(record.Category),
			Description: record.Description,
			Amount:      record.Amount,
			SpentAt:     record.SpentAt,
		})
	}
	return expenses, nil
}

func (s *ExpenseStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres expense store not configured")
	}
	return nil
}
