package dto

import "time"

// UserOverviewDTO 个人数据面板
type UserOverviewDTO struct {
	Stats       UserStats  `json:"stats"`
	Ban         BanState   `json:"ban"`
	RecentPosts []*PostDTO `json:"recent_posts"`
}

type UserStats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Drafts    int64 `json:"drafts"`
	Views     int64 `json:"views"`
	Likes     int64 `json:"likes"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

type BanState struct {
	IsBanned    bool       `json:"is_banned"`
	BannedUntil *time.Time `json:"banned_until"`
	Reason      string     `json:"reason,omitempty"`
}

// PeriodStat 按 YYYY-MM 统计的发布数
type PeriodStat struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

type WordStatsDTO struct {
	TotalWords   int64 `json:"total_words"`
	TotalPosts   int64 `json:"total_posts"`
	AverageWords int64 `json:"average_words"`
}

// LikedPostDTO 最近收到点赞的帖子
type LikedPostDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	LikesCount  int64     `json:"likes_count"`
	LastLikedAt time.Time `json:"last_liked_at"`
}

type MilestonesDTO struct {
	PublishedPosts int64 `json:"published_posts"`
	TotalLikes     int64 `json:"total_likes"`
	Has10Posts     bool  `json:"has_10_posts"`
	Has100Likes    bool  `json:"has_100_likes"`
}
