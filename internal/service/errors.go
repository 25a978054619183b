package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrCommentContentInvalid = errors.New("评论内容不能为空且不能超过1000个字符")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrUserBan               = errors.New("账号已被封禁")
	ErrUserBanSelf           = errors.New("不能封禁自己")
	ErrUserBanAdmin          = errors.New("不能封禁管理员")
	ErrBanUntilInvalid       = errors.New("封禁截止时间必须晚于当前时间")
	ErrUserExist             = errors.New("用户已存在")
	ErrPasswordIncorrect     = errors.New("邮箱或密码错误")
	ErrUserFollowSelf        = errors.New("用户不能关注自己")
	ErrPostNotFound          = errors.New("帖子不存在")
	ErrCommentNotFound       = errors.New("评论不存在")
	ErrParentCommentNotFound = errors.New("回复的评论不存在")
	ErrNotificationNotFound  = errors.New("通知不存在")
	ErrActionForbidden       = errors.New("无权执行此操作")
	UnauthorizedError        = errors.New("未登录或登录已过期")
	UnExpectedError          = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrCommentContentInvalid: BadRequest,
	ErrUserNotFound:          NotFound,
	ErrUserBan:               Forbidden,
	ErrUserBanSelf:           BadRequest,
	ErrUserBanAdmin:          BadRequest,
	ErrBanUntilInvalid:       BadRequest,
	ErrUserExist:             BadRequest,
	ErrPasswordIncorrect:     Unauthorized,
	ErrUserFollowSelf:        BadRequest,
	ErrPostNotFound:          NotFound,
	ErrCommentNotFound:       NotFound,
	ErrParentCommentNotFound: NotFound,
	ErrNotificationNotFound:  NotFound,
	ErrActionForbidden:       Forbidden,
	UnauthorizedError:        Unauthorized,
	UnExpectedError:          InternalServerError,
}

// CodeOf 返回 err 对应的业务码，未知错误返回 false
func CodeOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return 0, false
}
