// Package shutdown отвечает за остановку сервиса: ждет SIGINT или SIGTERM,
// после чего параллельно запускает переданные хуки освобождения ресурсов.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Wait блокируется до первого сигнала остановки, затем выполняет хуки.
// Каждому хуку передается контекст с общим timeout; хук, не успевший
// завершиться, обрывается вместе с контекстом. Ошибки хуков игнорируются.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = hook(ctx)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
