package kafka

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// PostsHandler 将 posts 表的变更同步到 ES 探索索引
type PostsHandler struct {
	postDBRepo repository.PostRepo
	postESRepo es.PostRepo
}

func NewPostsHandler(postDBRepo repository.PostRepo, postESRepo es.PostRepo) *PostsHandler {
	return &PostsHandler{
		postDBRepo: postDBRepo,
		postESRepo: postESRepo,
	}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	log.Info("topic-post consume claim end")
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "posts")
	if err != nil {
		return err
	}

	for _, row := range canalMsg.Data {
		id := RowUint64(row, "id")
		if id == 0 {
			continue
		}
		if err = s.sync(ctx, canalMsg, id); err != nil {
			return err
		}
	}
	return nil
}

// sync 以数据库当前状态为准，已发布的写入索引，其余从索引移除
func (s *PostsHandler) sync(ctx context.Context, canalMsg *CanalMessage, id uint64) error {
	if canalMsg.Type == CanalDelete {
		return s.postESRepo.DeletePost(ctx, id)
	}

	post, err := s.postDBRepo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post == nil || post.Status != model.PostStatusPublished {
		return s.postESRepo.DeletePost(ctx, id)
	}

	version := post.UpdatedAt.UnixMilli()
	if canalMsg.ES > version {
		version = canalMsg.ES
	}
	log.DebugContext(ctx, "index post", "post_id", id, "version", version)
	return s.postESRepo.IndexPost(ctx, es.FromPost(post), version)
}
