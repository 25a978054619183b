package kafka

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

type consumer struct {
	name    string
	topic   string
	group   sarama.ConsumerGroup
	handler sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	consumers []*consumer
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	postDBRepo repository.PostRepo,
	postESRepo es.PostRepo,
	cache redis.Cache,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	postsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPostConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	commentsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCommentConsumer.GroupID, saramaCfg)
	if err != nil {
		_ = postsConsumer.Close()
		return nil, err
	}

	return &ConsumerManager{
		consumers: []*consumer{
			{
				name:    "Post",
				topic:   cfg.KafkaPostConsumer.Topic,
				group:   postsConsumer,
				handler: NewPostsHandler(postDBRepo, postESRepo),
			},
			{
				name:    "Comment",
				topic:   cfg.KafkaCommentConsumer.Topic,
				group:   commentsConsumer,
				handler: NewCommentsHandler(cache),
			},
		},
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	for _, c := range m.consumers {
		go m.run(ctx, c)
	}

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	for _, c := range m.consumers {
		if err := c.group.Close(); err != nil {
			log.Error("Failed to close consumer", "consumer", c.name, "err", err)
		}
	}
	return nil
}

func (m *ConsumerManager) run(ctx context.Context, c *consumer) {
	log.Info(c.name+" consumer started", "topic", c.topic)
	go func() {
		for err := range c.group.Errors() {
			log.Error("consumer group error", "consumer", c.name, "err", err)
		}
	}()
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
			log.Error("Error from consumer", "consumer", c.name, "err", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
