package datastore

import (
	"context"
	"time"

	"spigot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableWithdrawal(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Withdrawal)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Withdrawal)(nil)).Index("index_withdrawal_reference").IfNotExists().Unique().Column("reference").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Withdrawal)(nil)).Index("index_withdrawal_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Withdrawal)(nil)).Index("index_withdrawal_status_requested_at").IfNotExists().Column("status", "requested_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// ReserveWithdrawal deducts the amount and records the pending row in one
// transaction. The deduction happens before any external call, so the
// user's visible balance reflects funds in flight.
func ReserveWithdrawal(ctx context.Context, db *bun.DB, withdrawal *models.Withdrawal) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := DebitUserBalance(ctx, tx, withdrawal.UserID, withdrawal.Amount); err != nil {
			return err
		}

		_, err := tx.NewInsert().Model(withdrawal).Exec(ctx)
		return err
	})
}

func MarkWithdrawalProcessed(ctx context.Context, db *bun.DB, withdrawalID int64, transactionID string) error {
	now := time.Now()
	_, err := db.NewUpdate().Model((*models.Withdrawal)(nil)).
		Set("status = ?", models.WithdrawalStatusProcessed).
		Set("transaction_id = ?", transactionID).
		Set("settled_at = ?", now).
		Where("id = ?", withdrawalID).
		Where("status = ?", models.WithdrawalStatusPending).
		Exec(ctx)
	return err
}

// FailWithdrawalAndRefund flips a pending row to failed and credits the
// amount back. The status guard makes the refund idempotent: a row already
// settled by another path is left alone.
func FailWithdrawalAndRefund(ctx context.Context, db *bun.DB, withdrawal *models.Withdrawal) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model((*models.Withdrawal)(nil)).
			Set("status = ?", models.WithdrawalStatusFailed).
			Set("settled_at = ?", time.Now()).
			Where("id = ?", withdrawal.ID).
			Where("status = ?", models.WithdrawalStatusPending).
			Exec(ctx)
		if err != nil {
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		return CreditUserBalance(ctx, tx, withdrawal.UserID, withdrawal.Amount)
	})
}

func GetStalePendingWithdrawals(ctx context.Context, db *bun.DB, before time.Time, limit int) ([]*models.Withdrawal, error) {
	var withdrawals []*models.Withdrawal
	err := db.NewSelect().Model(&withdrawals).
		Where("status = ?", models.WithdrawalStatusPending).
		Where("requested_at < ?", before).
		Order("requested_at ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return withdrawals, nil
}

func GetWithdrawalsByUser(ctx context.Context, db *bun.DB, userID string, limit, offset int) ([]*models.Withdrawal, error) {
	var withdrawals []*models.Withdrawal
	err := db.NewSelect().Model(&withdrawals).
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return withdrawals, nil
}
