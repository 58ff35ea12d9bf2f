package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const defaultForcedTimeout = 2 * time.Second

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

type step struct {
	name string
	fn   Func
}

// Closer закрывает зарегистрированные ресурсы в обратном порядке регистрации.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	steps         []step
	forcedTimeout time.Duration
}

// NewCloser создает Closer. forcedTimeout ограничивает принудительное закрытие
// ресурсов, до которых не дошла очередь к моменту отмены контекста Close.
func NewCloser(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует функцию закрытия. Имя попадает в текст ошибки.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, step{name: name, fn: f})
}

// AddSimple регистрирует функцию закрытия без контекста (pool.Close, conn.Close и т.п.).
func (c *Closer) AddSimple(name string, f func() error) {
	c.Add(name, func(context.Context) error { return f() })
}

// Close выполняется один раз. Ресурсы закрываются по одному, начиная с последнего
// зарегистрированного. Если ctx истекает раньше, оставшиеся закрываются параллельно
// с собственным таймаутом.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		pending := make([]step, 0, len(c.steps))
		for i := len(c.steps) - 1; i >= 0; i-- {
			pending = append(pending, c.steps[i])
		}
		c.mu.Unlock()

		closed, errs := c.closeInOrder(ctx, pending)
		if closed == len(pending) {
			if len(errs) > 0 {
				err = fmt.Errorf("shutdown finished with error(s): %w", errors.Join(errs...))
			}
			return
		}

		errs = append(errs, c.forceClose(pending[closed:])...)
		err = fmt.Errorf("shutdown interrupted after %d/%d funcs: %w", closed, len(pending), errors.Join(errs...))
	})

	return err
}

// closeInOrder возвращает число шагов, дождавшихся завершения до отмены ctx.
func (c *Closer) closeInOrder(ctx context.Context, steps []step) (int, []error) {
	var errs []error
	for i, s := range steps {
		done := make(chan error, 1)
		go func() { done <- s.fn(ctx) }()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Errorf("[!] %s: %w", s.name, err))
			}
		case <-ctx.Done():
			return i, errs
		}
	}

	return len(steps), errs
}

func (c *Closer) forceClose(steps []step) []error {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, s := range steps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("[FORCED] %s: %w", s.name, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return errs
}
