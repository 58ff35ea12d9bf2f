package kafka

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/jitter"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"
)

const (
	outboxChannel     = "outbox_pending"
	pollInterval      = 30 * time.Second
	retryBaseDelay    = 500 * time.Millisecond
	retryMaxDelay     = 30 * time.Second
	reconnectBaseWait = 2 * time.Second
)

// OutboxWorker публикует события из outbox в Kafka. Новые события приходят через
// LISTEN outbox_pending, а периодический опрос подбирает пропущенные уведомления.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	batchSize int
	stop      chan struct{}
	stopOnce  sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	dbConnStr string

	failures int
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	batchSize int,
	dbConnStr string,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = 10
	}

	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		batchSize: batchSize,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

// Start запускает публикацию и слушатель уведомлений. Вызывается один раз.
func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	wake := make(chan struct{}, 1)

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.run(ctx, wake)
	}()

	// Запускаем слушатель уведомлений
	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx, wake)
	}()
}

// Stop останавливает воркер и дожидается завершения горутин. Ожидание
// уведомления прерывается сразу, не дожидаясь таймаута опроса.
func (w *OutboxWorker) Stop(ctx context.Context) error {
	w.stopOnce.Do(func() {
		close(w.stop)
		if w.cancel != nil {
			w.cancel()
		}
	})

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run — единственная горутина, которая публикует события.
func (w *OutboxWorker) run(ctx context.Context, wake <-chan struct{}) {
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped by context cancellation")
			return
		case <-w.stop:
			w.logger.Infof("Outbox worker stopped")
			return
		case <-wake:
			w.drain(ctx)
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain обрабатывает пачки, пока они не закончатся. После ошибки публикации
// ждёт с экспоненциальной задержкой и джиттером.
func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			delay := jitter.ExponentialBackoff(retryBaseDelay, retryMaxDelay, w.failures, jitter.DefaultJitter)
			w.failures++
			w.logger.Warnf("Outbox batch failed, retry in %s: %v", delay, err)

			if !w.sleep(ctx, delay) {
				return
			}
			continue
		}

		w.failures = 0
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context, wake chan<- struct{}) {
	var conn *pgx.Conn

	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err := c.Exec(ctx, "LISTEN "+outboxChannel); err != nil {
			_ = c.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		conn = c
		w.logger.Infof("Subscribed to '%s' channel", outboxChannel)
		return nil
	}

	for attempt := 0; ; attempt++ {
		err := connect()
		if err == nil {
			break
		}

		w.logger.Warnf("LISTEN connect failed: %v", err)
		if !w.sleep(ctx, jitter.ExponentialBackoff(reconnectBaseWait, retryMaxDelay, attempt, jitter.DefaultJitter)) {
			return
		}
	}
	defer func() {
		if conn != nil {
			_ = conn.Close(context.Background())
		}
	}()

	for attempt := 0; ; {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
		}

		waitCtx, cancel := context.WithTimeout(ctx, pollInterval)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				continue
			}

			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(context.Background())
			conn = nil

			for conn == nil {
				if !w.sleep(ctx, jitter.ExponentialBackoff(reconnectBaseWait, retryMaxDelay, attempt, jitter.DefaultJitter)) {
					return
				}
				attempt++
				if err := connect(); err != nil {
					w.logger.Warnf("Reconnect failed: %v", err)
				}
			}
			attempt = 0
			continue
		}

		if notif != nil && notif.Channel == outboxChannel {
			w.logger.Debugf("Received outbox notification")
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}

// processBatch публикует одну пачку событий. Возвращает true, если пачка была непустой.
// Событие с временной ошибкой возвращается в очередь, обработка пачки прерывается.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for i, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			if !isRetryableError(err) {
				// Событие остаётся в processing до ручного разбора
				w.logger.Errorf(err, "Permanent Kafka failure, event %s (order %d, %d earlier attempts) left in processing",
					event.EventID, event.OrderID, event.Attempts)
				continue
			}

			w.requeue(ctx, events[i:])
			return false, err
		}

		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return true, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	req := usecase.NewWriteRawMessageReq(strconv.FormatInt(event.OrderID, 10), event.Payload)
	req.Headers = map[string]string{
		"event_id":   event.EventID,
		"event_type": string(event.EventType),
	}
	if err := w.producer.WriteRawMessage(ctx, req); err != nil {
		return e.Wrap("publish "+event.EventID, err)
	}
	return nil
}

// requeue возвращает необработанные события в pending, в том числе во время остановки.
func (w *OutboxWorker) requeue(ctx context.Context, events []*usecase.OutboxEvent) {
	ctx = context.WithoutCancel(ctx)
	for _, event := range events {
		if err := w.repo.MarkAsPending(ctx, event.ID); err != nil {
			w.logger.Warnf("mark pending failed for event %s: %v", event.EventID, err)
		}
	}
}

// sleep ждёт d или остановки воркера. Возвращает false, если воркер остановлен.
func (w *OutboxWorker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	case <-w.stop:
		return false
	}
}

// isRetryableError отличает временные сбои брокера и сети от ошибок, которые
// повтор не исправит.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"connection reset",
		"broken pipe",
		"no such host",
	} {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
