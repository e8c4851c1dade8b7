package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every API endpoint replies with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, err string) {
	c.JSON(status, Response{Success: false, Error: err})
}

func badRequest(c *gin.Context, err string) {
	fail(c, http.StatusBadRequest, err)
}

func notFound(c *gin.Context, err string) {
	fail(c, http.StatusNotFound, err)
}

func internalError(c *gin.Context, err string) {
	fail(c, http.StatusInternalServerError, err)
}
