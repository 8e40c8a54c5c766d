package datastore

import (
	"context"

	"spigot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func FindUserByID(ctx context.Context, db *bun.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateUser inserts the user unless the id already exists. The returned
// flag reports whether this call created the row; a concurrent creator may
// have won the insert.
func CreateUser(ctx context.Context, db *bun.DB, user *models.User) (bool, error) {
	res, err := db.NewInsert().Model(user).On("CONFLICT (id) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func UpdateUserProfile(ctx context.Context, db *bun.DB, user *models.User) error {
	_, err := db.NewUpdate().Model(user).
		Set("username = ?", user.Username).
		Set("updated_at = ?", user.UpdatedAt).
		WherePK().
		Exec(ctx)
	return err
}
