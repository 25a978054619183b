package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/thread"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"
)

const (
	defaultCommentMaxLength = 1000
	commentCountExpiration  = 5 * time.Minute
)

// Actor 发起操作的用户身份
type Actor struct {
	UserID  uint64
	IsAdmin bool
}

type CommentService interface {
	CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	GetComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error)
	GetCommentTree(ctx context.Context, postID uint64) ([]*dto.CommentNodeDTO, error)
	GetCommentCount(ctx context.Context, postID uint64) (int64, error)
	DeleteComment(ctx context.Context, actor Actor, commentID uint64) error
	CascadeDelete(ctx context.Context, commentID uint64) (int64, error)
	DeleteCommentsByAuthor(ctx context.Context, authorID uint64) error
	SweepOrphans(ctx context.Context) (int64, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	userRepo    repository.UserRepo
	notifier    NotificationService
	cache       redis.Cache
	maxLength   int
	threadOpts  []thread.Option
}

type CommentOption func(*commentServiceImpl)

// WithOrphanPromotion 构造线程树时把父评论缺失的评论提升为一级评论
func WithOrphanPromotion() CommentOption {
	return func(s *commentServiceImpl) {
		s.threadOpts = append(s.threadOpts, thread.WithOrphanPromotion())
	}
}

func WithMaxLength(n int) CommentOption {
	return func(s *commentServiceImpl) {
		if n > 0 {
			s.maxLength = n
		}
	}
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	notifier NotificationService,
	cache redis.Cache,
	opts ...CommentOption,
) CommentService {
	s := &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		cache:       cache,
		maxLength:   defaultCommentMaxLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func commentKey(c *model.Comment) (uint64, *uint64) {
	return c.ThreadKey()
}

// CreateComment 创建评论或回复，评论他人帖子时通知帖子作者
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	content, ok := util.NormalizeContent(req.Content, s.maxLength)
	if !ok {
		return nil, ErrCommentContentInvalid
	}

	post, err := s.postRepo.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetCommentByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != post.ID {
			return nil, ErrParentCommentNotFound
		}
	}

	comment := &model.Comment{
		PostID:    post.ID,
		AuthorID:  userID,
		ParentID:  req.ParentID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.dropCommentCount(ctx, post.ID)

	author, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.WarnContext(ctx, "comment author lookup failed", "user_id", userID, "err", err)
	}
	authorName := ""
	if author != nil {
		authorName = author.Name
	}

	if post.AuthorID != userID {
		s.notifier.Notify(ctx, Notice{
			RecipientID: post.AuthorID,
			Sender:      mongo.UserSender(userID),
			Type:        mongo.TypeComment,
			PostID:      util.Ptr(post.ID),
			Message:     fmt.Sprintf("%s commented on your post \"%s\"", authorName, post.Title),
		})
	}

	d := toCommentDTO(comment)
	d.AuthorName = authorName
	return d, nil
}

// GetComments 扁平列表，最新的在前
func (s *commentServiceImpl) GetComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, true)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		res = append(res, toCommentDTO(c))
	}
	return res, nil
}

// GetCommentTree 按创建时间正序构造线程树
func (s *commentServiceImpl) GetCommentTree(ctx context.Context, postID uint64) ([]*dto.CommentNodeDTO, error) {
	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, false)
	if err != nil {
		return nil, err
	}
	return buildCommentForest(comments, s.threadOpts...), nil
}

func (s *commentServiceImpl) GetCommentCount(ctx context.Context, postID uint64) (int64, error) {
	key := commentCountKey(postID)
	if cached, err := s.cache.GetValue(ctx, key); err == nil && cached != "" {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}
	count, err := s.commentRepo.CountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = s.cache.SetWithExpiration(ctx, key, count, commentCountExpiration)
	return count, nil
}

// DeleteComment 评论作者、帖子作者或管理员可删除，连同全部回复
func (s *commentServiceImpl) DeleteComment(ctx context.Context, actor Actor, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if !actor.IsAdmin && comment.AuthorID != actor.UserID {
		post, err := s.postRepo.GetPost(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post == nil {
			return ErrPostNotFound
		}
		if post.AuthorID != actor.UserID {
			return ErrActionForbidden
		}
	}

	_, err = s.CascadeDelete(ctx, commentID)
	return err
}

// CascadeDelete 删除评论及其所有后代，评论不存在时什么也不做
func (s *commentServiceImpl) CascadeDelete(ctx context.Context, commentID uint64) (int64, error) {
	target, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return 0, err
	}
	if target == nil {
		return 0, nil
	}

	comments, err := s.commentRepo.GetCommentsByPostID(ctx, target.PostID, false)
	if err != nil {
		return 0, err
	}
	ids := thread.Closure(comments, commentKey, commentID)
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := s.commentRepo.DeleteCommentsByIDs(ctx, ids)
	if err != nil {
		return n, err
	}
	s.dropCommentCount(ctx, target.PostID)
	return n, nil
}

// DeleteCommentsByAuthor 删除用户的全部评论以及这些评论下的回复
func (s *commentServiceImpl) DeleteCommentsByAuthor(ctx context.Context, authorID uint64) error {
	own, err := s.commentRepo.GetCommentsByAuthorID(ctx, authorID)
	if err != nil {
		return err
	}

	byPost := make(map[uint64][]uint64)
	for _, c := range own {
		byPost[c.PostID] = append(byPost[c.PostID], c.ID)
	}

	for postID, roots := range byPost {
		comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, false)
		if err != nil {
			return err
		}
		ids := closureOfAll(comments, roots)
		if _, err = s.commentRepo.DeleteCommentsByIDs(ctx, ids); err != nil {
			return err
		}
		s.dropCommentCount(ctx, postID)
	}
	return nil
}

// SweepOrphans 清理父评论已不存在的评论及其后代
func (s *commentServiceImpl) SweepOrphans(ctx context.Context) (int64, error) {
	postIDs, err := s.commentRepo.GetOrphanPostIDs(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, postID := range postIDs {
		comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, false)
		if err != nil {
			return total, err
		}
		ids := closureOfAll(comments, thread.Orphans(comments, commentKey))
		n, err := s.commentRepo.DeleteCommentsByIDs(ctx, ids)
		if err != nil {
			return total, err
		}
		total += n
		s.dropCommentCount(ctx, postID)
	}
	return total, nil
}

// dropCommentCount 写评论后删除计数缓存，失败只记录日志
func (s *commentServiceImpl) dropCommentCount(ctx context.Context, postID uint64) {
	if err := s.cache.DeleteKey(ctx, commentCountKey(postID)); err != nil {
		log.WarnContext(ctx, "drop comment count cache failed", "post_id", postID, "err", err)
	}
}

func commentCountKey(postID uint64) string {
	return consts.PostCommentKey + strconv.FormatUint(postID, 10)
}

func closureOfAll(comments []*model.Comment, roots []uint64) []uint64 {
	seen := make(map[uint64]struct{})
	ids := make([]uint64, 0, len(roots))
	for _, root := range roots {
		for _, id := range thread.Closure(comments, commentKey, root) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func buildCommentForest(comments []*model.Comment, opts ...thread.Option) []*dto.CommentNodeDTO {
	roots := thread.Build(comments, commentKey, opts...)
	return toCommentNodes(roots)
}

func toCommentNodes(nodes []*thread.Node[*model.Comment]) []*dto.CommentNodeDTO {
	out := make([]*dto.CommentNodeDTO, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &dto.CommentNodeDTO{
			CommentDTO: *toCommentDTO(n.Value),
			Replies:    toCommentNodes(n.Replies),
		})
	}
	return out
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		AuthorName: c.Author.Name,
		ParentID:   c.ParentID,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}
