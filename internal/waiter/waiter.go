// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package waiter polls a remote resource until it reaches a terminal state.
package waiter

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tfctl/gsctl/internal/log"
)

// ErrTimeout is returned when Config.Timeout elapses before the poll
// function reports done.
var ErrTimeout = errors.New("timed out waiting")

// Config controls the polling cadence. Intervals grow by Multiplier after
// every poll up to MaxInterval.
type Config struct {
	Interval    time.Duration
	MaxInterval time.Duration
	Multiplier  float64
	Timeout     time.Duration // zero waits until ctx is done
	Jitter      bool
}

// DefaultConfig suits control-plane resources that settle in seconds to
// minutes.
func DefaultConfig() Config {
	return Config{
		Interval:    2 * time.Second,
		MaxInterval: 30 * time.Second,
		Multiplier:  1.5,
		Timeout:     30 * time.Minute,
		Jitter:      true,
	}
}

// PollFunc inspects the resource once. done=true stops the loop; a non-nil
// error stops it too and is returned as is.
type PollFunc func(ctx context.Context) (done bool, err error)

// sleep is swapped by tests.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Until calls poll immediately and then after each backoff interval until
// poll is done, poll fails, the timeout elapses or ctx is cancelled.
func Until(ctx context.Context, cfg Config, poll PollFunc) error {
	cfg = normalize(cfg)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	interval := cfg.Interval
	for attempt := 1; ; attempt++ {
		done, err := poll(ctx)
		if err != nil {
			if cfg.Timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("%w after %d polls: %w", ErrTimeout, attempt, err)
			}
			return err
		}
		if done {
			log.Debugf("wait satisfied: polls=%d", attempt)
			return nil
		}

		d := withJitter(interval, cfg)
		log.Tracef("wait poll %d not done, sleeping %s", attempt, d)
		if err := sleep(ctx, d); err != nil {
			if errors.Is(err, context.DeadlineExceeded) && cfg.Timeout > 0 {
				return fmt.Errorf("%w after %d polls (%s)", ErrTimeout, attempt, cfg.Timeout)
			}
			return fmt.Errorf("wait canceled after %d polls: %w", attempt, err)
		}

		interval = next(interval, cfg)
	}
}

func normalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.MaxInterval < cfg.Interval {
		cfg.MaxInterval = cfg.Interval
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return cfg
}

func next(d time.Duration, cfg Config) time.Duration {
	n := time.Duration(float64(d) * cfg.Multiplier)
	if n > cfg.MaxInterval {
		return cfg.MaxInterval
	}
	return n
}

// withJitter spreads d by +/-20% when enabled, never exceeding MaxInterval.
func withJitter(d time.Duration, cfg Config) time.Duration {
	if !cfg.Jitter {
		return d
	}
	spread := float64(d) * 0.2
	j := time.Duration(float64(d) + rand.Float64()*2*spread - spread) //nolint:gosec
	if j > cfg.MaxInterval {
		j = cfg.MaxInterval
	}
	if j < 0 {
		j = 0
	}
	return j
}
