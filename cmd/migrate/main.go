package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"

	"spigot/internal/datastore"
	"spigot/internal/models"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandSeedTasks(),
			commandSetConfig(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableTask(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableTaskCompletion(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUserBalance(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableFaucetClaim(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableWithdrawal(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			log.Println("migration done")
			return nil
		},
	}
}

func commandSeedTasks() *cli.Command {
	return &cli.Command{
		Name:  "seed-tasks",
		Usage: "insert the task registry from a json file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "path to a json array of tasks",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(c.String("file"))
			if err != nil {
				return err
			}

			var tasks []*models.Task
			if err := json.Unmarshal(raw, &tasks); err != nil {
				return err
			}

			for _, task := range tasks {
				task.Enabled = true
			}

			if err := datastore.InsertTasks(ctx, db, tasks); err != nil {
				return err
			}

			log.Printf("seeded %d tasks\n", len(tasks))
			return nil
		},
	}
}

func commandSetConfig() *cli.Command {
	return &cli.Command{
		Name:  "set-config",
		Usage: "upsert a runtime config key",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Required: true},
			&cli.StringFlag{Name: "value", Required: true},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			return datastore.UpsertConfig(ctx, db, &models.Config{
				Key:   c.String("key"),
				Value: c.String("value"),
			})
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
