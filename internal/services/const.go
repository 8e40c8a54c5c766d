package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrFaucetClaimLock = errors.New("faucet claim in progress")
var ErrWithdrawalLock = errors.New("withdrawal in progress")

const (
	CONFIG_FAUCET_REWARD                    = "FAUCET_REWARD"
	CONFIG_FAUCET_COOLDOWN_HOURS            = "FAUCET_COOLDOWN_HOURS"
	CONFIG_WITHDRAWAL_PENDING_DEADLINE_MINS = "WITHDRAWAL_PENDING_DEADLINE_MINS"

	DEFAULT_FAUCET_REWARD                    = 10
	DEFAULT_FAUCET_COOLDOWN_HOURS            = 24
	DEFAULT_WITHDRAWAL_PENDING_DEADLINE_MINS = 30

	FAUCET_RATE_LIMIT_PER_MINUTE     = 10
	WITHDRAWAL_RATE_LIMIT_PER_MINUTE = 5

	PAYOUT_CALL_TIMEOUT = 15 * time.Second

	CACHE_TTL_1_MIN   = 1 * time.Minute
	CACHE_TTL_5_MINS  = 5 * time.Minute
	CACHE_TTL_15_MINS = 15 * time.Minute
)

func LockKeyFaucetClaim(userID string) string {
	return fmt.Sprintf("lock:faucet-claim:%s", userID)
}

func LockKeyWithdrawal(userID string) string {
	return fmt.Sprintf("lock:withdrawal:%s", userID)
}

// db
func DBKeyTasks() string {
	return "tasks:enabled"
}

func DBKeyTask(taskID int64) string {
	return fmt.Sprintf("task:%d", taskID)
}

func DBKeyUser(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func DBKeyUserBalance(userID string) string {
	return fmt.Sprintf("user_balance:%s", userID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func LimitKeyFaucetClaim(userID string) string {
	return fmt.Sprintf("limit:faucet-claim:%s", userID)
}

func LimitKeyWithdrawal(userID string) string {
	return fmt.Sprintf("limit:withdrawal:%s", userID)
}
