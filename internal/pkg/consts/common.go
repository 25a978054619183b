package consts

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const (
	RecentUsersLimit = 5
	TopAuthorsLimit  = 5
)

// 个人数据面板
const (
	RecentPostsLimit   = 10
	TopPostsLimit      = 3
	StaleDraftsLimit   = 5
	RecentlyLikedLimit = 5
	MilestonePosts     = 10
	MilestoneLikes     = 100
)
