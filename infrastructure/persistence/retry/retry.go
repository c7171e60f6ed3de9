/*
Package retry re-runs a unit of work when it lost a race: an order saved with a
stale version, an InnoDB deadlock, or a lock wait timeout. Business errors are
returned on the first attempt.
*/
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/config"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/order"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/infrastructure/persistence"
	"github.com/Fubuki233/WebAppDev-Ca-sub001/pkg/logger"
)

// MySQL server error numbers.
const (
	errDeadlock    = 1213
	errLockTimeout = 1205
)

type Config struct {
	Enabled                       bool
	MaxAttempts                   int
	InitialDelay                  time.Duration
	MaxDelay                      time.Duration
	BackoffFactor                 float64
	JitterEnabled                 bool
	RetryOnConcurrentModification bool
	RetryOnDeadlock               bool
	RetryOnLockTimeout            bool
}

var DefaultConfig = Config{
	Enabled:                       true,
	MaxAttempts:                   3,
	InitialDelay:                  100 * time.Millisecond,
	MaxDelay:                      2 * time.Second,
	BackoffFactor:                 2.0,
	JitterEnabled:                 true,
	RetryOnConcurrentModification: true,
	RetryOnDeadlock:               true,
	RetryOnLockTimeout:            true,
}

func FromAppConfig(appConfig *config.Config) Config {
	r := appConfig.Database.Retry
	return Config{
		Enabled:                       r.Enabled,
		MaxAttempts:                   r.MaxAttempts,
		InitialDelay:                  r.InitialDelay,
		MaxDelay:                      r.MaxDelay,
		BackoffFactor:                 r.BackoffFactor,
		JitterEnabled:                 r.JitterEnabled,
		RetryOnConcurrentModification: r.RetryOnConcurrentModification,
		RetryOnDeadlock:               r.RetryOnDeadlock,
		RetryOnLockTimeout:            r.RetryOnLockTimeout,
	}
}

// Cause names the transient failure behind a retry.
type Cause string

const (
	CauseNone           Cause = ""
	CauseVersionClash   Cause = "version_conflict"
	CauseDeadlock       Cause = "deadlock"
	CauseLockTimeout    Cause = "lock_timeout"
	CauseConnectionLost Cause = "connection_lost"
)

// Classify maps err onto a transient cause, or CauseNone.
func Classify(err error) Cause {
	if err == nil {
		return CauseNone
	}
	if errors.Is(err, order.ErrConcurrentModification) {
		return CauseVersionClash
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case errDeadlock:
			return CauseDeadlock
		case errLockTimeout:
			return CauseLockTimeout
		}
		return CauseNone
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadlock"):
		return CauseDeadlock
	case strings.Contains(msg, "lock wait timeout"):
		return CauseLockTimeout
	case errors.Is(err, gorm.ErrInvalidTransaction),
		strings.Contains(msg, "connection") && strings.Contains(msg, "lost"):
		return CauseConnectionLost
	}
	return CauseNone
}

// IsRetryableError reports whether err is a transient cause enabled in config.
func IsRetryableError(err error, config Config) bool {
	switch Classify(err) {
	case CauseVersionClash:
		return config.RetryOnConcurrentModification
	case CauseDeadlock:
		return config.RetryOnDeadlock
	case CauseLockTimeout:
		return config.RetryOnLockTimeout
	case CauseConnectionLost:
		return true
	}
	return false
}

// ExponentialBackoffWithJitter is the wait before the attempt after `attempt`,
// capped at MaxDelay and spread by ±20% when jitter is on.
func ExponentialBackoffWithJitter(attempt int, config Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := math.Min(
		float64(config.InitialDelay)*math.Pow(config.BackoffFactor, float64(attempt-1)),
		float64(config.MaxDelay),
	)
	if config.JitterEnabled {
		delay *= 0.8 + rand.Float64()*0.4
	}
	return time.Duration(math.Max(delay, 0))
}

// ExecuteWithRetry runs fn until it succeeds, fails with a non-transient
// error, or MaxAttempts is reached. The last error is returned unchanged.
func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if !config.Enabled || config.MaxAttempts < 1 {
		return fn(ctx)
	}

	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if !IsRetryableError(err, config) {
			return err
		}
		if attempt == config.MaxAttempts {
			logger.Warn("Giving up after transient failures",
				zap.String("request_id", persistence.RequestIDFromContext(ctx)),
				zap.String("cause", string(Classify(err))),
				zap.Int("attempts", attempt),
				zap.Error(err))
			return err
		}

		delay := ExponentialBackoffWithJitter(attempt, config)
		logger.Debug("Retrying unit of work",
			zap.String("request_id", persistence.RequestIDFromContext(ctx)),
			zap.String("cause", string(Classify(err))),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
