package auth

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/fx"

	"schoolapp/config"
	"schoolapp/internal/domain/service"
	"schoolapp/internal/errors"
)

// ErrHasherStopped is returned once the pool has been shut down.
var ErrHasherStopped = errors.New("password hasher stopped")

type hashJob struct {
	run  func()
	done chan struct{}
}

// HashPool bounds the number of goroutines running the CPU-heavy key derivation.
// Callers block until a worker picks up their job or their context ends.
type HashPool struct {
	inner   service.PasswordHasher
	jobs    chan hashJob
	quit    chan struct{}
	wg      sync.WaitGroup
	stopped sync.Once
}

// NewHashPool starts workers goroutines that execute inner's operations.
func NewHashPool(inner service.PasswordHasher, workers int) *HashPool {
	if workers < 1 {
		workers = 1
	}

	p := &HashPool{
		inner: inner,
		jobs:  make(chan hashJob),
		quit:  make(chan struct{}),
	}

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

func (p *HashPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.quit:
			return
		case job := <-p.jobs:
			job.run()
			close(job.done)
		}
	}
}

// submit hands fn to a worker and waits for it to complete.
// Once a worker has accepted the job it always runs to completion,
// so the result captured by fn is safe to read after a nil return.
func (p *HashPool) submit(ctx context.Context, fn func()) error {
	job := hashJob{run: fn, done: make(chan struct{})}

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-p.quit:
		return ErrHasherStopped
	case p.jobs <- job:
	}

	<-job.done

	return nil
}

// Hash implements service.PasswordHasher.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	var (
		digest string
		err    error
	)
	if submitErr := p.submit(ctx, func() {
		digest, err = p.inner.Hash(context.WithoutCancel(ctx), password)
	}); submitErr != nil {
		return "", submitErr
	}

	return digest, err
}

// Check implements service.PasswordHasher.
func (p *HashPool) Check(ctx context.Context, password, hash string) (bool, error) {
	var (
		ok  bool
		err error
	)
	if submitErr := p.submit(ctx, func() {
		ok, err = p.inner.Check(context.WithoutCancel(ctx), password, hash)
	}); submitErr != nil {
		return false, submitErr
	}

	return ok, err
}

// Stop signals the workers to exit and waits for in-flight jobs to finish.
func (p *HashPool) Stop() {
	p.stopped.Do(func() {
		close(p.quit)
	})
	p.wg.Wait()
}

// PasswordHasherParams holds dependencies for the pooled password hasher.
type PasswordHasherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// NewPasswordHasher wires a bcrypt hasher behind a bounded worker pool
// and stops the pool with the application.
func NewPasswordHasher(params PasswordHasherParams) service.PasswordHasher {
	cfg := params.Config.Auth
	pool := NewHashPool(NewBcryptHasher(cfg.BcryptCost), cfg.HashWorkers)

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Stopping password hasher pool", slog.Int("workers", cfg.HashWorkers))
			pool.Stop()

			return nil
		},
	})

	return pool
}
