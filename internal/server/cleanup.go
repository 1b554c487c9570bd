package server

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const purgeTimeout = time.Minute

// TokenPurger removes refresh tokens that can no longer be used.
type TokenPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// cronLogger routes cron's own messages through zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// TokenCleanup periodically purges expired refresh tokens.
type TokenCleanup struct {
	cron *cron.Cron
}

// NewTokenCleanup schedules purges with a standard cron spec ("@hourly",
// "0 3 * * *", "@every 30m").
func NewTokenCleanup(schedule string, tokens TokenPurger, lgr zerolog.Logger) (*TokenCleanup, error) {
	cl := cronLogger{log: lgr}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if _, err := c.AddFunc(schedule, purgeJob(tokens, time.Now, lgr)); err != nil {
		return nil, fmt.Errorf("invalid token cleanup schedule %q: %w", schedule, err)
	}
	return &TokenCleanup{cron: c}, nil
}

// Run starts the scheduler and blocks until ctx is done and any running purge finished.
func (t *TokenCleanup) Run(ctx context.Context) {
	t.cron.Start()
	<-ctx.Done()
	<-t.cron.Stop().Done()
}

func purgeJob(tokens TokenPurger, now func() time.Time, lgr zerolog.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()

		n, err := tokens.DeleteExpired(ctx, now())
		if err != nil {
			lgr.Warn().Err(err).Msg("Failed to purge expired refresh tokens")
			return
		}
		if n > 0 {
			lgr.Info().Int64("count", n).Msg("Purged expired refresh tokens")
		}
	}
}
