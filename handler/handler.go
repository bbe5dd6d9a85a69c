package handler

import (
	"Moodboard/pkg/errs"
	"Moodboard/pkg/response"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func paramSno(c *gin.Context) (int64, error) {
	sno, err := strconv.ParseInt(c.Param("sno"), 10, 64)
	if err != nil || sno <= 0 {
		return 0, errs.Invalid("sno", "Serial No. must be a valid number")
	}
	return sno, nil
}

func paramID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.Invalid("serial_nos", "Prompt id must be a valid number")
	}
	return id, nil
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}
