package datastore

import (
	"context"
	"spigot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTask(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Task)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Task)(nil)).Index("index_task_enabled").IfNotExists().Column("enabled").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertTasks(ctx context.Context, db *bun.DB, tasks []*models.Task) error {
	_, err := db.NewInsert().Model(&tasks).Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func GetEnabledTasks(ctx context.Context, db *bun.DB) ([]*models.Task, error) {
	var tasks []*models.Task
	err := db.NewSelect().Model(&tasks).Where("enabled = ?", true).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func GetTaskByID(ctx context.Context, db *bun.DB, taskID int64) (*models.Task, error) {
	var task models.Task
	err := db.NewSelect().Model(&task).Where("id = ?", taskID).Where("enabled = ?", true).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &task, nil
}
