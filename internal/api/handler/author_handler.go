package handler

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	authorService service.AuthorService
}

func NewAuthorHandler(authorService service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// GetAuthorPage 作者主页，可按 category 过滤帖子
func (s *AuthorHandler) GetAuthorPage(c *gin.Context) {
	authorID, ok := uintParam(c, "id")
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.authorService.GetAuthorPage(c.Request.Context(), authorID, c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
