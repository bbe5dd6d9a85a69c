package handler

import (
	"Moodboard/config"
	"Moodboard/middleware"
	"Moodboard/pkg/context"
	"Moodboard/pkg/response"
	"Moodboard/service"
	"Moodboard/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Prompt struct {
	Config        *config.Config
	PromptService service.IPromptService
}

func (h *Prompt) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/images/:sno/prompts", authorize)
	g.GET("", context.Wrap(h.List))
	g.POST("", context.Wrap(h.Create))
	g.POST("/batch", context.Wrap(h.CreateBatch))
	g.PUT("", context.Wrap(h.Update))
	g.DELETE("", context.Wrap(h.Delete))

	r.PUT("/prompts/:id", authorize, context.Wrap(h.Edit))
}

func (h *Prompt) List(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	prompts, err := h.PromptService.List(c.Request.Context(), sno)
	if err != nil {
		return err
	}
	response.Success(c, prompts)
	return nil
}

func (h *Prompt) Create(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	var req types.CreatePromptRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	prompt, err := h.PromptService.Create(c.Request.Context(), sno, req.Text)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, response.Response{Msg: "success", Data: prompt})
	return nil
}

func (h *Prompt) CreateBatch(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	var req types.BatchPromptRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	resp, err := h.PromptService.CreateBatch(c.Request.Context(), sno, req.Text)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

func (h *Prompt) Update(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	var req types.UpdatePromptRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.PromptService.Update(c.Request.Context(), sno, req.OldText, req.NewText); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Prompt) Delete(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	var req types.DeletePromptRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.PromptService.Delete(c.Request.Context(), sno, req.Text); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

// Edit 按行号改写
func (h *Prompt) Edit(c *gin.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req types.EditPromptRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	prompt, err := h.PromptService.UpdateByID(c.Request.Context(), id, req.Text)
	if err != nil {
		return err
	}
	response.Success(c, prompt)
	return nil
}
