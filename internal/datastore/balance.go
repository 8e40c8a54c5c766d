package datastore

import (
	"context"
	"time"

	"spigot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUserBalance(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserBalance)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func GetUserBalance(ctx context.Context, db *bun.DB, userID string) (*models.UserBalance, error) {
	var balance models.UserBalance
	err := db.NewSelect().Model(&balance).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &balance, nil
}

// CreditUserBalance adds amount to the user's ledger row, creating the row
// with that amount when none exists. The increment happens inside the
// database so concurrent credits never lose updates.
func CreditUserBalance(ctx context.Context, idb bun.IDB, userID string, amount float64) error {
	balance := &models.UserBalance{
		UserID:    userID,
		Balance:   amount,
		UpdatedAt: time.Now(),
	}

	_, err := idb.NewInsert().Model(balance).
		On("CONFLICT (user_id) DO UPDATE").
		Set("balance = user_balance.balance + EXCLUDED.balance").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// DebitUserBalance subtracts amount from the user's ledger row only when
// the remaining balance stays non-negative. Returns ErrInsufficientBalance
// when the guard matches no row.
func DebitUserBalance(ctx context.Context, idb bun.IDB, userID string, amount float64) error {
	res, err := idb.NewUpdate().Model((*models.UserBalance)(nil)).
		Set("balance = balance - ?", amount).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Where("balance >= ?", amount).
		Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientBalance
	}

	return nil
}
