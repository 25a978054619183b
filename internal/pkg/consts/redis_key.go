package consts

const (
	TokenBlacklistKey = "token:blacklist:"
	PostCommentKey    = "post:comment:"
	AdminOverviewKey  = "admin:overview"
	UserOverviewKey   = "user:overview:"
)

const (
	BanExpiryLock   = "lock:job:ban_expiry"
	OrphanSweepLock = "lock:job:orphan_sweep"
)
