package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var ErrInternalError = errors.New("Internal error")

type apiResponse struct {
	Errors []string `json:"errors,omitempty"`
	Data   any      `json:"data,omitempty"`
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}

func RespondOK(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, apiResponse{Data: obj})
}

func RespondBadRequestErr(c *gin.Context, errors []error) {
	RespondCustomStatusErr(c, http.StatusBadRequest, errors)
}

func RespondNotFoundErr(c *gin.Context, errors []error, obj any) {
	c.AbortWithStatusJSON(http.StatusNotFound, apiResponse{Errors: errorStrings(errors), Data: obj})
}

func RespondCustomStatusErr(c *gin.Context, status int, errors []error) {
	c.AbortWithStatusJSON(status, apiResponse{Errors: errorStrings(errors)})
}

func RespondInternalErr(c *gin.Context) {
	RespondCustomStatusErr(c, http.StatusInternalServerError, []error{ErrInternalError})
}
