// Package gate blocks service startup until every declared dependency
// endpoint accepts TCP connections, or fails after a bounded per-endpoint
// timeout. Endpoints are probed strictly in declared order so dependents
// with implicit startup ordering (the cache binds database-backed state)
// are never raced.
package gate

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/graveboards/gbctl/internal/logger"
)

// Endpoint is one TCP-reachable dependency of the main process.
type Endpoint struct {
	Name string
	Host string
	Port int
}

// Addr returns the host:port dial target.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, fmt.Sprintf("%d", e.Port))
}

// GateError reports an endpoint that did not become ready in time.
// Endpoints after the failing one were never probed.
type GateError struct {
	Endpoint Endpoint
	Elapsed  time.Duration
	Err      error
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s (%s) not ready after %s: %v",
		e.Endpoint.Name, e.Endpoint.Addr(), e.Elapsed.Round(time.Millisecond), e.Err)
}

func (e *GateError) Unwrap() error {
	return e.Err
}

// Options tune the polling loop. The zero value uses the defaults below.
type Options struct {
	// Timeout is the readiness budget per endpoint. Default 30s.
	Timeout time.Duration
	// Interval is the fixed delay between attempts. Default 250ms.
	Interval time.Duration
	// DialTimeout bounds a single connection attempt. Default 1s.
	DialTimeout time.Duration
	// Quiet suppresses progress logging. The failure itself is always
	// surfaced through the returned error.
	Quiet bool
}

func (o *Options) applyDefaults() {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Interval <= 0 {
		o.Interval = 250 * time.Millisecond
	}
	if o.DialTimeout <= 0 {
		o.DialTimeout = time.Second
	}
}

// Await probes each endpoint in declared order, blocking until it accepts a
// connection or its timeout elapses. The first failure aborts: later
// endpoints are not probed, so deployment fails loudly rather than starting
// against a half-available dependency set. A successful probe is trusted;
// there is no re-verification.
func Await(ctx context.Context, endpoints []Endpoint, opts Options) error {
	opts.applyDefaults()

	for _, ep := range endpoints {
		if err := awaitOne(ctx, ep, opts); err != nil {
			return err
		}
	}

	return nil
}

func awaitOne(ctx context.Context, ep Endpoint, opts Options) error {
	start := time.Now()

	if !opts.Quiet {
		logger.Info("waiting for dependency", "endpoint", ep.Name, "addr", ep.Addr(), "timeout", opts.Timeout)
	}

	probeCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	attempt := 0
	probe := func() error {
		attempt++
		dialer := net.Dialer{Timeout: opts.DialTimeout}
		conn, err := dialer.DialContext(probeCtx, "tcp", ep.Addr())
		if err != nil {
			if !opts.Quiet {
				logger.Debug("probe failed", "endpoint", ep.Name, "attempt", attempt, "error", err)
			}
			return err
		}
		return conn.Close()
	}

	bo := backoff.WithContext(backoff.NewConstantBackOff(opts.Interval), probeCtx)
	if err := backoff.Retry(probe, bo); err != nil {
		return &GateError{Endpoint: ep, Elapsed: time.Since(start), Err: err}
	}

	if !opts.Quiet {
		logger.Info("dependency ready", "endpoint", ep.Name, "elapsed", time.Since(start).Round(time.Millisecond))
	}

	return nil
}
