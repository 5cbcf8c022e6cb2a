package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/juniorcleaning/cleaning-app/models"
)

// Accounts is the auth provider's record store.
type Accounts struct {
	DB *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{DB: db}
}

func (a *Accounts) ByID(ctx context.Context, id string) (*models.Account, error) {
	var acc models.Account
	err := a.DB.WithContext(ctx).Where("id = ?", id).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (a *Accounts) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	err := a.DB.WithContext(ctx).Where("email = ?", email).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (a *Accounts) Create(ctx context.Context, acc *models.Account) error {
	return a.DB.WithContext(ctx).Create(acc).Error
}

func (a *Accounts) UpdateDisplayName(ctx context.Context, id, name string) error {
	return a.DB.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Update("display_name", name).Error
}
