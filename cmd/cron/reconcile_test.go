package main

import (
	"context"
	"errors"
	"testing"
)

type stubReconciler struct {
	calls int
	ctx   context.Context
	n     int
	err   error
}

func (s *stubReconciler) ReconcilePending(ctx context.Context) (int, error) {
	s.calls++
	s.ctx = ctx
	return s.n, s.err
}

func TestReconcileJobInvokesService(t *testing.T) {
	stub := &stubReconciler{n: 3}
	job := NewWithdrawalReconcileJob(stub, defaultReconcileSchedule)

	job.runScheduledTask()

	if stub.calls != 1 {
		t.Fatalf("expected 1 reconcile call, got %d", stub.calls)
	}
	if stub.ctx == nil {
		t.Fatal("expected a context")
	}
	if _, ok := stub.ctx.Deadline(); !ok {
		t.Fatal("expected a bounded context")
	}
}

func TestReconcileJobSurvivesServiceError(t *testing.T) {
	stub := &stubReconciler{err: errors.New("db down")}
	job := NewWithdrawalReconcileJob(stub, defaultReconcileSchedule)

	// must not panic; the next tick retries
	job.runScheduledTask()
	job.runScheduledTask()

	if stub.calls != 2 {
		t.Fatalf("expected 2 reconcile calls, got %d", stub.calls)
	}
}
