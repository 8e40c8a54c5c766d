package datastore

import (
	"context"

	"spigot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableFaucetClaim(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.FaucetClaim)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.FaucetClaim)(nil)).Index("index_faucet_claim_user_id_claimed_at").IfNotExists().Column("user_id", "claimed_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetLastFaucetClaim(ctx context.Context, db *bun.DB, userID string) (*models.FaucetClaim, error) {
	var claim models.FaucetClaim
	err := db.NewSelect().Model(&claim).
		Where("user_id = ?", userID).
		Order("claimed_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &claim, nil
}

// InsertClaimAndCredit appends the claim row and credits the reward in one
// transaction.
func InsertClaimAndCredit(ctx context.Context, db *bun.DB, claim *models.FaucetClaim, reward float64) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(claim).Exec(ctx); err != nil {
			return err
		}

		return CreditUserBalance(ctx, tx, claim.UserID, reward)
	})
}
