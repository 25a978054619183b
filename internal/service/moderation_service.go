package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/thread"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"fmt"
	log "log/slog"
)

type ModerationService interface {
	GetPostModerationView(ctx context.Context, postID uint64) (*dto.ModerationViewDTO, error)
	GetPostComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, commentID uint64) error
	DeletePost(ctx context.Context, postID uint64) error
}

type moderationServiceImpl struct {
	commentRepo    repository.CommentRepo
	postRepo       repository.PostRepo
	userRepo       repository.UserRepo
	commentService CommentService
	postService    PostService
	notifier       NotificationService
	threadOpts     []thread.Option
}

func NewModerationService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	commentService CommentService,
	postService PostService,
	notifier NotificationService,
	promoteOrphans bool,
) ModerationService {
	s := &moderationServiceImpl{
		commentRepo:    commentRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
		commentService: commentService,
		postService:    postService,
		notifier:       notifier,
	}
	if promoteOrphans {
		s.threadOpts = append(s.threadOpts, thread.WithOrphanPromotion())
	}
	return s
}

// GetPostModerationView 帖子、作者以及带作者名的完整评论树
func (s *moderationServiceImpl) GetPostModerationView(ctx context.Context, postID uint64) (*dto.ModerationViewDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, false)
	if err != nil {
		return nil, err
	}
	if err = s.fillAuthors(ctx, comments); err != nil {
		return nil, err
	}

	postDTO := toPostDTO(post)
	postDTO.Author = &dto.AuthorDTO{ID: post.Author.ID, Name: post.Author.Name, Email: post.Author.Email}

	return &dto.ModerationViewDTO{
		Post:     postDTO,
		Comments: buildCommentForest(comments, s.threadOpts...),
	}, nil
}

// GetPostComments 扁平列表，最早的在前
func (s *moderationServiceImpl) GetPostComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	comments, err := s.commentRepo.GetCommentsByPostID(ctx, postID, false)
	if err != nil {
		return nil, err
	}
	if err = s.fillAuthors(ctx, comments); err != nil {
		return nil, err
	}
	res := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		res = append(res, toCommentDTO(c))
	}
	return res, nil
}

// DeleteComment 管理员删除评论及其回复，并通知评论作者与帖子作者
func (s *moderationServiceImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	post, err := s.postRepo.GetPost(ctx, comment.PostID)
	if err != nil {
		return err
	}

	if _, err = s.commentService.CascadeDelete(ctx, commentID); err != nil {
		return err
	}

	title := ""
	var postAuthorID uint64
	if post != nil {
		title = post.Title
		postAuthorID = post.AuthorID
	}

	s.notifier.Notify(ctx, Notice{
		RecipientID: comment.AuthorID,
		Sender:      mongo.SystemSender(),
		Type:        mongo.TypeAdminCommentDeleted,
		PostID:      util.Ptr(comment.PostID),
		Message:     fmt.Sprintf("Your comment on \"%s\" was deleted by an admin.", title),
	})

	if postAuthorID != 0 && postAuthorID != comment.AuthorID {
		s.notifier.Notify(ctx, Notice{
			RecipientID: postAuthorID,
			Sender:      mongo.SystemSender(),
			Type:        mongo.TypeAdminDeletedCommentOnPost,
			PostID:      util.Ptr(comment.PostID),
			Message:     fmt.Sprintf("A comment on your post \"%s\" was deleted by an admin.", title),
		})
	}

	log.InfoContext(ctx, "comment deleted by admin", "comment_id", commentID, "post_id", comment.PostID)
	return nil
}

// DeletePost 管理员删除帖子并通知作者
func (s *moderationServiceImpl) DeletePost(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err = s.postService.PurgePosts(ctx, []uint64{postID}); err != nil {
		return err
	}

	s.notifier.Notify(ctx, Notice{
		RecipientID: post.AuthorID,
		Sender:      mongo.SystemSender(),
		Type:        mongo.TypeAdminPostDeleted,
		Message:     fmt.Sprintf("Your post \"%s\" was deleted by an admin.", post.Title),
	})
	return nil
}

// fillAuthors 对未预加载作者的评论批量补全作者名
func (s *moderationServiceImpl) fillAuthors(ctx context.Context, comments []*model.Comment) error {
	missing := make([]uint64, 0)
	for _, c := range comments {
		if c.Author.ID == 0 {
			missing = append(missing, c.AuthorID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, missing)
	if err != nil {
		return err
	}
	byID := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, c := range comments {
		if u, ok := byID[c.AuthorID]; ok && c.Author.ID == 0 {
			c.Author = *u
		}
	}
	return nil
}
