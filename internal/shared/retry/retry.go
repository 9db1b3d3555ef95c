package retry

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

// WithRetry выполняет op с повторами и экспоненциальным бэкоффом (с джиттером, потолок 5s).
// Возвращает последнюю ошибку op либо ошибку контекста, если ожидание прервано.
func WithRetry(ctx context.Context, attempts int, sleep time.Duration, op func(context.Context) error) error {
	b := &backoff.Backoff{Min: sleep, Max: 5 * time.Second, Factor: 2, Jitter: true}
	var err error
	for i := 0; i < attempts; i++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(b.Duration())
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return err
}
