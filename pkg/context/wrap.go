package context

import (
	"Moodboard/pkg/log"
	"Moodboard/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUsername  = "username"
	CtxRequestID = "request_id"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			status := response.StatusOf(err)
			if status >= http.StatusInternalServerError {
				log.L.Error("request failed",
					zap.String("request_id", c.GetString(CtxRequestID)),
					zap.String("path", c.FullPath()),
					zap.Error(err),
				)
			}
			response.Fail(c, status, err.Error())
		}
	}
}

func GetUsername(c *gin.Context) (string, error) {
	v, ok := c.Get(CtxUsername)
	if !ok {
		return "", errors.New("username 不存在")
	}

	name, ok := v.(string)
	if !ok {
		return "", errors.New("username 类型错误")
	}

	return name, nil
}
