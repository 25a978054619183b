package kafka

import (
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"Inkwell/internal/pkg/logger"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
	maxRetries   = 5
)

var ErrTableMismatch = errors.New("table name not match")

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		processBatch(session.Context(), batch, logic)
		session.MarkMessage(batch[len(batch)-1], "")
		batch = make([]*sarama.ConsumerMessage, 0, batchSize)
	}

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，单条消息按指数退避重试，超过次数后丢弃
func processBatch(ctx context.Context, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			msgCtx := logger.WithTraceID(ctx, "kafka-"+m.Topic+"-"+uuid.NewString())
			retryInterval := 100 * time.Millisecond

			for attempt := 1; ; attempt++ {
				err := logic(msgCtx, m)
				if err == nil {
					return
				}
				if errors.Is(err, ErrTableMismatch) {
					return
				}
				if attempt >= maxRetries {
					log.ErrorContext(msgCtx, "drop message after retries",
						"topic", m.Topic, "partition", m.Partition, "offset", m.Offset, "err", err)
					return
				}

				log.WarnContext(msgCtx, "process message error", "attempt", attempt, "err", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(retryInterval):
				}
				retryInterval = min(retryInterval*2, 5*time.Second)
			}
		}(msg)
	}

	wg.Wait()
}

// ToCanalMessage 将 kafka 消息转换为 canal 消息结构体
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, errors.Wrap(err, "unmarshal canal message")
	}
	if canalMsg.IsDDL || canalMsg.Table != tableName {
		return nil, errors.Wrapf(ErrTableMismatch, "got %q want %q", canalMsg.Table, tableName)
	}
	if len(canalMsg.Data) == 0 {
		return nil, errors.New("data is empty")
	}
	return &canalMsg, nil
}
