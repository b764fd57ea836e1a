// Package delivery forwards rendered fiche documents to the configured
// best-effort sinks. A failing target never affects another target and never
// fails the submission that produced the document.
package delivery

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/samuel/go-metrics/metrics"
)

// Document is a rendered fiche handed over for delivery.
type Document struct {
	Token    string
	Filename string
	Path     string
}

type FaultKind string

const (
	FaultNetwork  FaultKind = "network"
	FaultAuth     FaultKind = "auth"
	FaultQuota    FaultKind = "quota"
	FaultTimeout  FaultKind = "timeout"
	FaultInternal FaultKind = "internal"
)

// Fault wraps a target error with its classification.
type Fault struct {
	Kind FaultKind
	Err  error
}

func (f *Fault) Error() string {
	return string(f.Kind) + ": " + f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Outcome records one delivery attempt for observability.
type Outcome struct {
	Target   string
	Ok       bool
	Fault    FaultKind
	Detail   string
	Duration time.Duration
}

// Target is one delivery sink. Implementations must not share mutable state
// across documents. A retry policy can be layered as a wrapping Target
// without touching the dispatcher.
type Target interface {
	Name() string
	Deliver(ctx context.Context, doc Document) error
}

type targetStats struct {
	attempts *metrics.Counter
	failures *metrics.Counter
}

// Dispatcher runs every configured target for a document, each attempt
// bounded by the timeout and isolated from the others.
type Dispatcher struct {
	targets []Target
	timeout time.Duration
	stats   map[string]targetStats
}

func NewDispatcher(targets []Target, timeout time.Duration, registry metrics.Registry) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	d := &Dispatcher{
		targets: targets,
		timeout: timeout,
		stats:   make(map[string]targetStats),
	}
	for _, t := range targets {
		scope := registry.Scope("delivery/" + t.Name())
		s := targetStats{
			attempts: metrics.NewCounter(),
			failures: metrics.NewCounter(),
		}
		scope.Add("attempts", s.attempts)
		scope.Add("failures", s.failures)
		d.stats[t.Name()] = s
	}
	return d
}

func (d *Dispatcher) TargetCount() int {
	return len(d.targets)
}

// Dispatch attempts every target concurrently and returns one outcome per
// target. It never returns an error: delivery is an enhancement, not a
// precondition of the submission.
func (d *Dispatcher) Dispatch(doc Document) []Outcome {
	outcomes := make([]Outcome, len(d.targets))

	var wg sync.WaitGroup
	for i, target := range d.targets {
		wg.Add(1)
		go func(i int, target Target) {
			defer wg.Done()
			outcomes[i] = d.attempt(target, doc)
		}(i, target)
	}
	wg.Wait()

	for _, outcome := range outcomes {
		stats := d.stats[outcome.Target]
		stats.attempts.Inc(1)
		if outcome.Ok {
			log.Printf("delivery %s: ok (%s, %v)", outcome.Target, doc.Filename, outcome.Duration)
		} else {
			stats.failures.Inc(1)
			log.Printf("delivery %s: %s fault (%s): %s", outcome.Target, outcome.Fault, doc.Filename, outcome.Detail)
		}
	}
	return outcomes
}

func (d *Dispatcher) attempt(target Target, doc Document) Outcome {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- target.Deliver(ctx, doc)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = &Fault{Kind: FaultTimeout, Err: ctx.Err()}
	}

	outcome := Outcome{
		Target:   target.Name(),
		Duration: time.Since(start),
	}
	if err == nil {
		outcome.Ok = true
		return outcome
	}

	var fault *Fault
	if errors.As(err, &fault) {
		outcome.Fault = fault.Kind
	} else if errors.Is(err, context.DeadlineExceeded) {
		outcome.Fault = FaultTimeout
	} else {
		outcome.Fault = FaultInternal
	}
	outcome.Detail = err.Error()
	return outcome
}
