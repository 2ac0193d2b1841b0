package domain

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Role separates shoppers from back-office operators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// InitialLearningPoints is the XP balance granted on registration.
const InitialLearningPoints int64 = 750

var (
	ErrEmptyName      = errors.New("user name is required")
	ErrInvalidEmail   = errors.New("email must contain '@'")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
	ErrNegativePoints = errors.New("learning points cannot go negative")
)

// User is a storefront account. Passwords are stored only as bcrypt hashes.
type User struct {
	ID             int64
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	LearningPoints int64
}

// NewUser builds an account with a hashed password and the starting XP grant.
func NewUser(name, email, password string, role Role) (*User, error) {
	user := &User{Role: role, LearningPoints: InitialLearningPoints}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if user.Role == "" {
		user.Role = RoleCustomer
	}
	return user, nil
}

func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetEmail normalizes and validates the address; it doubles as the login key.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword hashes the plaintext with bcrypt.
func (u *User) SetPassword(password string) error {
	if len(strings.TrimSpace(password)) < 6 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the plaintext against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CreditPoints moves the XP balance; negative deltas may not overdraw it.
func (u *User) CreditPoints(delta int64) error {
	if u.LearningPoints+delta < 0 {
		return ErrNegativePoints
	}
	u.LearningPoints += delta
	return nil
}

// IsAdmin reports back-office access.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetName(u.Name); err != nil {
		return err
	}
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return ErrWeakPassword
	}
	if u.LearningPoints < 0 {
		return ErrNegativePoints
	}
	return nil
}
