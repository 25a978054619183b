package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"
)

const banTimeLayout = "2006-01-02 15:04 MST"

type AdminUserService interface {
	ListUsers(ctx context.Context, q *dto.AdminUserQuery) (*dto.AdminUserListDTO, error)
	GetUserDetail(ctx context.Context, userID uint64) (*dto.AdminUserDetailDTO, error)
	UpdateUser(ctx context.Context, userID uint64, req *dto.AdminUserUpdateDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, operatorID, userID uint64) error
	BanUser(ctx context.Context, operatorID, userID uint64, req *dto.BanDTO) (*dto.UserDTO, error)
	UnbanUser(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	LiftExpiredBans(ctx context.Context) (int, error)
}

type adminUserServiceImpl struct {
	userRepo         repository.UserRepo
	postRepo         repository.PostRepo
	commentRepo      repository.CommentRepo
	postActionRepo   repository.PostActionRepo
	userFollowRepo   repository.UserFollowRepo
	notificationRepo mongo.NotificationRepo
	postESRepo       es.PostRepo
	postService      PostService
	commentService   CommentService
	notifier         NotificationService
	now              func() time.Time
}

func NewAdminUserService(
	userRepo repository.UserRepo,
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	postActionRepo repository.PostActionRepo,
	userFollowRepo repository.UserFollowRepo,
	notificationRepo mongo.NotificationRepo,
	postESRepo es.PostRepo,
	postService PostService,
	commentService CommentService,
	notifier NotificationService,
) AdminUserService {
	return &adminUserServiceImpl{
		userRepo:         userRepo,
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		postActionRepo:   postActionRepo,
		userFollowRepo:   userFollowRepo,
		notificationRepo: notificationRepo,
		postESRepo:       postESRepo,
		postService:      postService,
		commentService:   commentService,
		notifier:         notifier,
		now:              time.Now,
	}
}

func (s *adminUserServiceImpl) ListUsers(ctx context.Context, q *dto.AdminUserQuery) (*dto.AdminUserListDTO, error) {
	limit, offset := util.Page(q.Page, q.Limit)
	users, total, err := s.userRepo.SearchUsers(ctx, repository.UserQuery{
		Search: strings.TrimSpace(q.Search),
		Role:   q.Role,
		Status: q.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	res := &dto.AdminUserListDTO{
		Users: make([]*dto.UserDTO, 0, len(users)),
		Total: total,
	}
	for _, u := range users {
		d, err := toUserDTO(u)
		if err != nil {
			return nil, err
		}
		res.Users = append(res.Users, d)
	}
	return res, nil
}

func (s *adminUserServiceImpl) GetUserDetail(ctx context.Context, userID uint64) (*dto.AdminUserDetailDTO, error) {
	user, err := s.mustGetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	commentCount, err := s.commentRepo.CountByAuthorID(ctx, userID)
	if err != nil {
		return nil, err
	}

	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	postDTOs := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		p.Author = *user
		postDTOs = append(postDTOs, toPostDTO(p))
	}
	return &dto.AdminUserDetailDTO{
		User:         userDTO,
		Posts:        postDTOs,
		CommentCount: commentCount,
	}, nil
}

func (s *adminUserServiceImpl) UpdateUser(ctx context.Context, userID uint64, req *dto.AdminUserUpdateDTO) (*dto.UserDTO, error) {
	user, err := s.mustGetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	renamed := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		name := strings.TrimSpace(*req.Name)
		renamed = name != user.Name
		fields["name"] = name
		user.Name = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			exist, err := s.userRepo.GetUserByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exist != nil {
				return nil, ErrUserExist
			}
		}
		fields["email"] = email
		user.Email = email
	}
	if req.Role != nil {
		fields["role"] = *req.Role
		user.Role = *req.Role
	}
	if req.Status != nil {
		fields["status"] = *req.Status
		user.Status = *req.Status
	}

	if err = s.userRepo.UpdateUserFields(ctx, userID, fields); err != nil {
		if isDuplicateError(err) {
			return nil, ErrUserExist
		}
		return nil, err
	}
	if renamed {
		if err = s.postESRepo.UpdateAuthorName(ctx, userID, user.Name); err != nil {
			log.WarnContext(ctx, "sync author name to es failed", "user_id", userID, "err", err)
		}
	}
	return toUserDTO(user)
}

// DeleteUser 删除用户及其帖子、帖子下的评论、本人发表的评论与回复
func (s *adminUserServiceImpl) DeleteUser(ctx context.Context, operatorID, userID uint64) error {
	if operatorID == userID {
		return ErrActionForbidden
	}
	if _, err := s.mustGetUser(ctx, userID); err != nil {
		return err
	}

	postIDs, err := s.postRepo.GetPostIDsByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	if err = s.postService.PurgePosts(ctx, postIDs); err != nil {
		return err
	}
	if err = s.commentService.DeleteCommentsByAuthor(ctx, userID); err != nil {
		return err
	}
	if err = s.postActionRepo.DeleteLikesByUser(ctx, userID); err != nil {
		return err
	}
	if err = s.userFollowRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if err = s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	// 以下清理失败不影响删除结果
	if err = s.notificationRepo.DeleteByRecipient(ctx, userID); err != nil {
		log.WarnContext(ctx, "delete notifications of user failed", "user_id", userID, "err", err)
	}
	if err = s.postESRepo.DeletePostsByAuthor(ctx, userID); err != nil {
		log.WarnContext(ctx, "delete es posts of user failed", "user_id", userID, "err", err)
	}

	log.InfoContext(ctx, "user deleted by admin", "user_id", userID, "posts", len(postIDs))
	return nil
}

func (s *adminUserServiceImpl) BanUser(ctx context.Context, operatorID, userID uint64, req *dto.BanDTO) (*dto.UserDTO, error) {
	if operatorID == userID {
		return nil, ErrUserBanSelf
	}
	if !req.BannedUntil.After(s.now()) {
		return nil, ErrBanUntilInvalid
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrParamInvalid
	}

	user, err := s.mustGetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, ErrUserBanAdmin
	}

	if err = s.userRepo.BanUser(ctx, userID, req.BannedUntil, reason); err != nil {
		return nil, err
	}
	until := req.BannedUntil
	user.IsBanned = true
	user.BannedUntil = &until
	user.BanReason = reason
	user.Status = model.UserStatusBanned

	s.notifier.Notify(ctx, Notice{
		RecipientID: userID,
		Sender:      mongo.SystemSender(),
		Type:        mongo.TypeBanNotice,
		Message: fmt.Sprintf("You have been banned until %s. Reason: %s",
			until.UTC().Format(banTimeLayout), reason),
	})
	return toUserDTO(user)
}

func (s *adminUserServiceImpl) UnbanUser(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.mustGetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err = s.unban(ctx, user); err != nil {
		return nil, err
	}
	return toUserDTO(user)
}

// LiftExpiredBans 解除所有已到期的封禁，单个用户失败不影响其余用户
func (s *adminUserServiceImpl) LiftExpiredBans(ctx context.Context) (int, error) {
	users, err := s.userRepo.GetExpiredBans(ctx, s.now())
	if err != nil {
		return 0, err
	}

	lifted := 0
	for _, u := range users {
		if err = s.unban(ctx, u); err != nil {
			log.ErrorContext(ctx, "lift expired ban failed", "user_id", u.ID, "err", err)
			continue
		}
		lifted++
	}
	return lifted, nil
}

func (s *adminUserServiceImpl) unban(ctx context.Context, user *model.User) error {
	if err := s.userRepo.UnbanUser(ctx, user.ID); err != nil {
		return err
	}
	user.IsBanned = false
	user.BannedUntil = nil
	user.BanReason = ""
	user.Status = model.UserStatusActive

	s.notifier.Notify(ctx, Notice{
		RecipientID: user.ID,
		Sender:      mongo.SystemSender(),
		Type:        mongo.TypeUnbanNotice,
		Message:     "Your account ban has been lifted. You may now post, like, and comment.",
	})
	return nil
}

func (s *adminUserServiceImpl) mustGetUser(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
