package repository

import (
	"context"
	"errors"
	"strings"

	"oabplanner/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAccountExists = errors.New("account already exists")

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create stores a new account, assigning an ID when missing. An account
// with the same email yields ErrAccountExists.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.Email = NormalizeEmail(account.Email)
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	if _, err := r.FindByEmail(ctx, account.Email); err == nil {
		return ErrAccountExists
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	err := r.db.WithContext(ctx).Create(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAccountExists
	}
	return err
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&account).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &account, nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
