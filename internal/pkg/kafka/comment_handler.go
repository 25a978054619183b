package kafka

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
)

// CommentsHandler comments 表变更后清理对应帖子的评论数缓存
type CommentsHandler struct {
	cache redis.Cache
}

func NewCommentsHandler(cache redis.Cache) *CommentsHandler {
	return &CommentsHandler{cache: cache}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	log.Info("topic-comment consume claim end")
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		return err
	}

	seen := make(map[uint64]struct{})
	keys := make([]string, 0, len(canalMsg.Data))
	collect := func(rows []map[string]interface{}) {
		for _, row := range rows {
			postID := RowUint64(row, "post_id")
			if postID == 0 {
				continue
			}
			if _, ok := seen[postID]; ok {
				continue
			}
			seen[postID] = struct{}{}
			keys = append(keys, consts.PostCommentKey+strconv.FormatUint(postID, 10))
		}
	}
	collect(canalMsg.Data)
	// 评论不会修改 post_id，Old 中出现时也一并清理
	collect(canalMsg.Old)

	if len(keys) == 0 {
		return nil
	}
	return s.cache.DeleteKey(ctx, keys...)
}
