package response

import (
	"Moodboard/pkg/errs"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&errs.DuplicateSerialError{Sno: 1}, http.StatusConflict},
		{&errs.DuplicatePromptError{Sno: 1, Text: "x"}, http.StatusConflict},
		{&errs.InvalidTransitionError{Sno: 1, From: "APPROVED", To: "PENDING"}, http.StatusConflict},
		{&errs.ForeignKeyError{Sno: 1}, http.StatusUnprocessableEntity},
		{errs.ImageNotFound(1), http.StatusNotFound},
		{errs.BlobNotFound("get", "p/image1.jpg"), http.StatusNotFound},
		{&errs.RatingRangeError{Field: "image_feedback", Value: 11, Max: 10}, http.StatusBadRequest},
		{errs.Invalid("sno", "bad"), http.StatusBadRequest},
		{&errs.BusyError{Sno: 1}, http.StatusTooManyRequests},
		{errs.ErrUnauthorized, http.StatusUnauthorized},
		{errs.Blob("put", "p/image1.jpg", errors.New("timeout")), http.StatusBadGateway},
		{errs.Store("create image", errors.New("conn reset")), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
		{NewError(http.StatusBadRequest, "bad body"), http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", &errs.BusyError{}), http.StatusTooManyRequests},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusOf(c.err), c.err.Error())
	}
}
