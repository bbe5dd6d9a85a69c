package handler

import (
	"Moodboard/pkg/context"
	"Moodboard/pkg/response"
	"Moodboard/service"
	"Moodboard/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	AuthService service.IAuthService
}

func (h *Auth) RegisterRouter(r gin.IRouter) {
	r.POST("/auth/login", context.Wrap(h.Login))
}

func (h *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
