package main

import (
	"context"
	"log"
	"os"

	"spigot/internal/container"
	"spigot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/urfave/cli/v2"
)

const defaultReconcileSchedule = "*/5 * * * *"

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	vs, err := env.EnvsRequired(
		"DB_DSN",
		"JWT_SECRET",
		"PAYOUT_API_URL",
		"PAYOUT_API_KEY",
	)
	if err != nil {
		log.Fatal(err)
	}

	injector := container.New(vs)

	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(injector),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob(injector *do.Injector) *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			serviceConfig, err := do.Invoke[*services.ServiceConfig](injector)
			if err != nil {
				return err
			}

			serviceWithdrawal, err := do.Invoke[*services.ServiceWithdrawal](injector)
			if err != nil {
				return err
			}

			schedule, _ := serviceConfig.GetStringConfig(context.Background(), "CRONJOB_TIME_WITHDRAWAL_RECONCILE", defaultReconcileSchedule)

			cronRunner := cron.New()

			reconcileJob := NewWithdrawalReconcileJob(serviceWithdrawal, schedule)
			reconcileJob.Start(cronRunner)

			log.Println("start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}
