package response

import (
	"Moodboard/pkg/errs"
	"Moodboard/pkg/log"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// StatusOf 错误分类对应的 HTTP 状态码
func StatusOf(err error) int {
	var be *BizError
	if errors.As(err, &be) {
		return be.Code
	}
	switch {
	case errors.Is(err, errs.ErrDuplicateSerial), errors.Is(err, errs.ErrDuplicatePrompt),
		errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrForeignKey):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrNotFound), errs.IsBlobNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrRatingRange), errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrBusy):
		return http.StatusTooManyRequests
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrBlob):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				Abort(c, http.StatusInternalServerError, "internal server error")
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			Fail(c, StatusOf(err), err.Error())
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
