package assetkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/alnah/go-assetkit/internal/sass"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent Dart Sass processes.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the Dart Sass processes themselves.
	cpuDivisor = 2
)

// CompilerFactory starts one compiler instance.
type CompilerFactory func() (sass.Compiler, error)

// DartSassFactory returns a factory starting Dart Sass processes.
func DartSassFactory(opts sass.DartSassOptions) CompilerFactory {
	return func() (sass.Compiler, error) {
		return sass.NewDartSass(opts)
	}
}

// CompilerPool shares up to n compilers between concurrent builds.
// Compilers are started lazily on first acquire, so a build without Sass
// never needs the binary. CompilerPool implements sass.Compiler.
type CompilerPool struct {
	size      int
	factory   CompilerFactory
	compilers []sass.Compiler
	sem       chan sass.Compiler
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewCompilerPool creates a pool with capacity for n compilers.
func NewCompilerPool(n int, factory CompilerFactory) *CompilerPool {
	if n < 1 {
		n = 1
	}

	return &CompilerPool{
		size:      n,
		factory:   factory,
		compilers: make([]sass.Compiler, 0, n),
		sem:       make(chan sass.Compiler, n),
	}
}

// Acquire gets a compiler from the pool, starting one if needed.
// Blocks while all compilers are in use.
func (p *CompilerPool) Acquire(ctx context.Context) (sass.Compiler, error) {
	select {
	case c, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return c, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Start outside the lock.
		c, err := p.factory()
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, fmt.Errorf("%w: %v", ErrCompilerUnavailable, err)
		}

		p.mu.Lock()
		p.compilers = append(p.compilers, c)
		p.mu.Unlock()

		return c, nil
	}
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case c, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return c, nil
	}
}

// Release returns a compiler to the pool. The channel has room for every
// compiler, so sending under the lock never blocks.
func (p *CompilerPool) Release(c sass.Compiler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- c
}

// Compile runs req on a pooled compiler.
func (p *CompilerPool) Compile(ctx context.Context, req sass.Request) (string, error) {
	c, err := p.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer p.Release(c)
	return c.Compile(ctx, req)
}

// Close stops every started compiler.
// Returns an aggregated error if several fail to close.
func (p *CompilerPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	compilers := p.compilers
	p.mu.Unlock()

	var errs []error
	for _, c := range compilers {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *CompilerPool) Size() int {
	return p.size
}

// Started returns how many compilers have been started.
func (p *CompilerPool) Started() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}

// Compile-time interface check.
var _ sass.Compiler = (*CompilerPool)(nil)
