package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
)

const excerptLength = 200

type PostService interface {
	CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, viewerID uint64, postID uint64) (*dto.PostDTO, error)
	GetPublishedPosts(ctx context.Context, page, pageSize int) ([]*dto.PostDTO, error)
	GetMyPosts(ctx context.Context, userID uint64) ([]*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID uint64, postID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID uint64, postID uint64) error
	PurgePosts(ctx context.Context, postIDs []uint64) error
	ToggleLike(ctx context.Context, userID uint64, postID uint64) (*dto.PostLikeStateDTO, error)
}

type postServiceImpl struct {
	postRepo       repository.PostRepo
	postActionRepo repository.PostActionRepo
	commentRepo    repository.CommentRepo
	userRepo       repository.UserRepo
	commentService CommentService
	notifier       NotificationService
}

func NewPostService(
	postRepo repository.PostRepo,
	postActionRepo repository.PostActionRepo,
	commentRepo repository.CommentRepo,
	userRepo repository.UserRepo,
	commentService CommentService,
	notifier NotificationService,
) PostService {
	return &postServiceImpl{
		postRepo:       postRepo,
		postActionRepo: postActionRepo,
		commentRepo:    commentRepo,
		userRepo:       userRepo,
		commentService: commentService,
		notifier:       notifier,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	post := &model.Post{AuthorID: authorID}
	applyPostFields(post, req)

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

// GetPost 草稿只对作者可见，其余情况浏览量加一
func (s *postServiceImpl) GetPost(ctx context.Context, viewerID uint64, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || (post.Status != model.PostStatusPublished && post.AuthorID != viewerID) {
		return nil, ErrPostNotFound
	}

	if post.AuthorID != viewerID {
		if err = s.postRepo.IncrementViews(ctx, postID); err != nil {
			log.WarnContext(ctx, "increment views failed", "post_id", postID, "err", err)
		} else {
			post.Views++
		}
	}

	out := toPostDTO(post)
	if out.CommentCount, err = s.commentService.GetCommentCount(ctx, postID); err != nil {
		log.WarnContext(ctx, "comment count failed", "post_id", postID, "err", err)
	}
	return out, nil
}

func (s *postServiceImpl) GetPublishedPosts(ctx context.Context, page, pageSize int) ([]*dto.PostDTO, error) {
	limit, offset := util.Page(page, pageSize)
	posts, err := s.postRepo.GetPublishedPosts(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return toPostSummaries(posts), nil
}

// GetMyPosts 当前用户的全部帖子，包含草稿
func (s *postServiceImpl) GetMyPosts(ctx context.Context, userID uint64) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPostSummaries(posts), nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, postID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrActionForbidden
	}

	applyPostFields(post, req)
	err = s.postRepo.UpdatePostFields(ctx, postID, map[string]interface{}{
		"title":         post.Title,
		"content":       post.Content,
		"cover_image":   post.CoverImage,
		"image_gallery": post.ImageGallery,
		"tags":          post.Tags,
		"category":      post.Category,
		"status":        post.Status,
	})
	if err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

// DeletePost 作者删除自己的帖子
func (s *postServiceImpl) DeletePost(ctx context.Context, userID uint64, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		return ErrActionForbidden
	}
	return s.PurgePosts(ctx, []uint64{postID})
}

// PurgePosts 删除帖子以及其下的评论与点赞，索引由 canal 消费者同步移除
func (s *postServiceImpl) PurgePosts(ctx context.Context, postIDs []uint64) error {
	if len(postIDs) == 0 {
		return nil
	}
	if err := s.commentRepo.DeleteCommentsByPostIDs(ctx, postIDs); err != nil {
		return err
	}
	if err := s.postActionRepo.DeleteLikesByPostIDs(ctx, postIDs); err != nil {
		return err
	}
	return s.postRepo.DeletePostsByIDs(ctx, postIDs)
}

// ToggleLike 点赞或取消点赞，点赞他人帖子时通知作者
func (s *postServiceImpl) ToggleLike(ctx context.Context, userID uint64, postID uint64) (*dto.PostLikeStateDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	removed, err := s.postActionRepo.DeleteLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err = s.postRepo.AddLikesCount(ctx, postID, -1); err != nil {
			return nil, err
		}
		return &dto.PostLikeStateDTO{Liked: false, LikesCount: max(post.LikesCount-1, 0)}, nil
	}

	err = s.postActionRepo.CreateLike(ctx, &model.PostLike{UserID: userID, PostID: postID})
	if err != nil {
		if isDuplicateError(err) {
			return &dto.PostLikeStateDTO{Liked: true, LikesCount: post.LikesCount}, nil
		}
		return nil, err
	}
	if err = s.postRepo.AddLikesCount(ctx, postID, 1); err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		name := ""
		if liker, err := s.userRepo.GetUserByID(ctx, userID); err == nil && liker != nil {
			name = liker.Name
		}
		s.notifier.Notify(ctx, Notice{
			RecipientID: post.AuthorID,
			Sender:      mongo.UserSender(userID),
			Type:        mongo.TypeLike,
			PostID:      util.Ptr(postID),
			Message:     fmt.Sprintf("%s liked your blog post \"%s\"", name, post.Title),
		})
	}

	return &dto.PostLikeStateDTO{Liked: true, LikesCount: post.LikesCount + 1}, nil
}

func applyPostFields(post *model.Post, req *dto.PostCreateDTO) {
	post.Title = strings.TrimSpace(req.Title)
	post.Content = req.Content
	post.CoverImage = req.CoverImage
	post.ImageGallery = util.ExtractImageSources(req.Content)
	post.Tags = util.NormalizeTags(req.Tags)
	post.Category = strings.TrimSpace(req.Category)
	if post.Category == "" {
		post.Category = model.DefaultCategory
	}
	post.Status = req.Status
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}
}

// toPostDTO 将 Model 转换为返回给前端的 DTO，作者只暴露 id 与名称
func toPostDTO(post *model.Post) *dto.PostDTO {
	out := &dto.PostDTO{}
	_ = copier.Copy(out, post)
	out.Excerpt = util.PlainText(post.Content, excerptLength)
	out.Author = &dto.AuthorDTO{ID: post.AuthorID, Name: post.Author.Name}
	return out
}

// toPostSummaries 列表只返回摘要，不带正文
func toPostSummaries(posts []*model.Post) []*dto.PostDTO {
	res := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		d := toPostDTO(p)
		d.Content = ""
		res = append(res, d)
	}
	return res
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

