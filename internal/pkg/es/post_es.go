package es

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"time"
)

const excerptLength = 200

// PostES 探索页索引中的帖子文档，只包含已发布的帖子
type PostES struct {
	ID           uint64    `json:"id"`
	AuthorID     uint64    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	CoverImage   string    `json:"cover_image"`
	ImageGallery []string  `json:"image_gallery"`
	Tags         []string  `json:"tags"`
	Category     string    `json:"category"`
	Views        int64     `json:"views"`
	LikesCount   int64     `json:"likes_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	SortRecent  = "recent"
	SortPopular = "popular"
	SortViews   = "views"
)

// SearchQuery 探索页检索条件
type SearchQuery struct {
	Text     string
	Category string
	Sort     string
	From     int
	Size     int

	// 个性化探索：排除自己的帖子，命中兴趣分类或关注作者的帖子排在前面
	ExcludeAuthorID  uint64
	PreferCategories []string
	PreferAuthorIDs  []uint64
}

func (q SearchQuery) personalized() bool {
	return len(q.PreferCategories) > 0 || len(q.PreferAuthorIDs) > 0
}

// FromPost 由帖子构造索引文档，需要预加载作者
func FromPost(post *model.Post) *PostES {
	return &PostES{
		ID:           post.ID,
		AuthorID:     post.AuthorID,
		AuthorName:   post.Author.Name,
		Title:        post.Title,
		Excerpt:      util.PlainText(post.Content, excerptLength),
		CoverImage:   post.CoverImage,
		ImageGallery: post.ImageGallery,
		Tags:         post.Tags,
		Category:     post.Category,
		Views:        post.Views,
		LikesCount:   post.LikesCount,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}
