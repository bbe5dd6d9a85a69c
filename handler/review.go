package handler

import (
	"Moodboard/config"
	"Moodboard/middleware"
	"Moodboard/pkg/context"
	"Moodboard/pkg/response"
	"Moodboard/service"
	"Moodboard/types"

	"github.com/gin-gonic/gin"
)

type Review struct {
	Config        *config.Config
	ReviewService service.IReviewService
}

func (h *Review) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	img := r.Group("/images/:sno", authorize)
	img.POST("/approve", context.Wrap(h.Approve))
	img.POST("/reject", context.Wrap(h.Reject))
	img.PUT("/rating", context.Wrap(h.RateImage))
	img.PUT("/comments", context.Wrap(h.Comment))

	p := r.Group("/prompts/:id", authorize)
	p.PUT("/rating", context.Wrap(h.RatePrompt))
	p.PUT("/correlation", context.Wrap(h.RateCorrelation))
}

func (h *Review) Approve(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	result, err := h.ReviewService.Approve(c.Request.Context(), sno)
	if err != nil {
		return err
	}
	response.Success(c, result)
	return nil
}

func (h *Review) Reject(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	result, err := h.ReviewService.Reject(c.Request.Context(), sno)
	if err != nil {
		return err
	}
	response.Success(c, result)
	return nil
}

func (h *Review) RateImage(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	var req types.RatingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.ReviewService.RateImage(c.Request.Context(), sno, *req.Value); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Review) Comment(c *gin.Context) error {
	sno, err := paramSno(c)
	if err != nil {
		return err
	}
	var req types.CommentsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.ReviewService.Comment(c.Request.Context(), sno, req.Comments); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Review) RatePrompt(c *gin.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req types.RatingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.ReviewService.RatePrompt(c.Request.Context(), id, *req.Value); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Review) RateCorrelation(c *gin.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req types.RatingRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.ReviewService.RateCorrelation(c.Request.Context(), id, *req.Value); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
