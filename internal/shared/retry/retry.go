package retry

import (
	"context"
	"time"
)

// WithRetry выполняет op с повторами и простым экспоненциальным бэкоффом.
// Отмена ctx прерывает ожидание и возвращает последнюю ошибку op.
func WithRetry(ctx context.Context, attempts int, sleep time.Duration, op func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	backoff := sleep
	for i := 0; i < attempts; i++ {
		if err = op(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}
	return err
}
