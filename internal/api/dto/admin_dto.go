package dto

import "time"

// AdminUserQuery 管理员用户列表查询
type AdminUserQuery struct {
	Search string `form:"search" binding:"omitempty,max=100"`
	Role   string `form:"role" binding:"omitempty,oneof=user admin"`
	Status string `form:"status" binding:"omitempty,oneof=active banned"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// AdminUserListDTO 用户列表
type AdminUserListDTO struct {
	Users []*UserDTO `json:"users"`
	Total int64      `json:"total"`
}

// AdminUserUpdateDTO 管理员修改用户
type AdminUserUpdateDTO struct {
	Name   *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Role   *string `json:"role" binding:"omitempty,oneof=user admin"`
	Status *string `json:"status" binding:"omitempty,oneof=active banned"`
}

// AdminUserDetailDTO 用户详情
type AdminUserDetailDTO struct {
	User         *UserDTO   `json:"user"`
	Posts        []*PostDTO `json:"posts"`
	CommentCount int64      `json:"comment_count"`
}

// BanDTO 封禁请求
type BanDTO struct {
	BannedUntil time.Time `json:"banned_until" binding:"required"`
	Reason      string    `json:"reason" binding:"required,max=255"`
}

// OverviewDTO 管理后台概览
type OverviewDTO struct {
	Totals       OverviewTotals   `json:"totals"`
	RecentUsers  []*UserBriefDTO  `json:"recent_users"`
	TopPost      *PostDTO         `json:"top_post"`
	TopAuthors   []*AuthorStatDTO `json:"top_authors"`
	Categories   []*CategoryStat  `json:"categories"`
	MonthlyTrend []*MonthlyStat   `json:"monthly_trend"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

type OverviewTotals struct {
	Users     int64 `json:"users"`
	Posts     int64 `json:"posts"`
	Published int64 `json:"published"`
	Drafts    int64 `json:"drafts"`
	Views     int64 `json:"views"`
	Likes     int64 `json:"likes"`
	Comments  int64 `json:"comments"`
}

type AuthorStatDTO struct {
	AuthorID uint64 `json:"author_id"`
	Name     string `json:"name"`
	Posts    int64  `json:"posts"`
	Likes    int64  `json:"likes"`
	Views    int64  `json:"views"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type MonthlyStat struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}
