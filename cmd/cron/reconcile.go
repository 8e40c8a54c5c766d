package main

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type withdrawalReconciler interface {
	ReconcilePending(ctx context.Context) (int, error)
}

// WithdrawalReconcileJob fails and refunds withdrawals stuck pending past
// the deadline, typically left behind by a crash between the reservation
// and the payout call.
type WithdrawalReconcileJob struct {
	reconciler withdrawalReconciler
	schedule   string
}

func NewWithdrawalReconcileJob(reconciler withdrawalReconciler, schedule string) *WithdrawalReconcileJob {
	return &WithdrawalReconcileJob{
		reconciler: reconciler,
		schedule:   schedule,
	}
}

func (j *WithdrawalReconcileJob) Start(cronRunner *cron.Cron) {
	_, err := cronRunner.AddFunc(j.schedule, j.runScheduledTask)
	log.Println("withdrawal reconcile cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", j.schedule, err)
}

func (j *WithdrawalReconcileJob) runScheduledTask() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	reconciled, err := j.reconciler.ReconcilePending(ctx)
	if err != nil {
		log.Println("reconcile run failed:", err)
		return
	}

	if reconciled > 0 {
		log.Println("reconciled stale withdrawals:", reconciled)
	}
}
