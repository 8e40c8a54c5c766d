package datastore

import (
	"context"

	"spigot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTaskCompletion(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.TaskCompletion)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.TaskCompletion)(nil)).Index("index_task_completion_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	// authoritative guard against double completion
	_, err = db.NewCreateIndex().Model((*models.TaskCompletion)(nil)).Index("index_task_completion_user_id_task_id").IfNotExists().Unique().Column("user_id", "task_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func HasCompletedTask(ctx context.Context, db *bun.DB, userID string, taskID int64) (bool, error) {
	count, err := db.NewSelect().Model((*models.TaskCompletion)(nil)).
		Where("user_id = ?", userID).
		Where("task_id = ?", taskID).
		Count(ctx)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CompleteTaskAndCredit records the completion and credits the reward in
// one transaction; a unique violation on the completion insert rolls the
// credit back, so re-invocation never double-credits.
func CompleteTaskAndCredit(ctx context.Context, db *bun.DB, completion *models.TaskCompletion, reward float64) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(completion).Exec(ctx); err != nil {
			return err
		}

		return CreditUserBalance(ctx, tx, completion.UserID, reward)
	})
}
