// Package response renders every payload the API returns: JSend-style
// success envelopes and the single terminal error stage all handlers and
// middleware funnel failures through.
package response

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/trekline/gotours/internal/pkg/apperror"
)

// Envelope is the JSend success shape.
type Envelope struct {
	Status      string      `json:"status" example:"success"`
	RequestedAt string      `json:"requestedAt,omitempty" example:"2024-05-01T10:00:00Z"`
	Results     *int        `json:"results,omitempty" example:"9"`
	Token       string      `json:"token,omitempty"`
	Message     string      `json:"message,omitempty"`
	Data        interface{} `json:"data"`
}

// ErrorEnvelope is the JSend failure shape. Err and Stack are only populated
// in development.
type ErrorEnvelope struct {
	Status  string `json:"status" example:"fail"`
	Message string `json:"message" example:"Invalid ID"`
	Err     string `json:"error,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// development switches the error renderer to full verbosity. Set once at
// startup.
var development = true

func SetMode(production bool) { development = !production }

// Success sends data wrapped in the success envelope with the given status.
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Status: "success", Data: data})
}

// List sends a collection with the results count and request timestamp.
func List(c *gin.Context, results int, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:      "success",
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
		Results:     &results,
		Data:        data,
	})
}

// Created sends a 201 with the created document.
func Created(c *gin.Context, data interface{}) {
	Success(c, http.StatusCreated, data)
}

// NoContent sends the 204 delete envelope.
func NoContent(c *gin.Context) {
	c.JSON(http.StatusNoContent, Envelope{Status: "success", Data: nil})
}

// WithToken sends a session token alongside optional data.
func WithToken(c *gin.Context, code int, token string, data interface{}) {
	c.JSON(code, Envelope{Status: "success", Token: token, Data: data})
}

// Message sends a success envelope carrying only a message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Status: "success", Message: message, Data: nil})
}

// Error is the terminal error stage. Every failure, operational or not, is
// translated and rendered here. Unknown errors keep their detail out of the
// production response but are always logged.
func Error(c *gin.Context, err error) {
	appErr := apperror.Translate(err)

	if appErr.Code >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	body := ErrorEnvelope{
		Status:  appErr.Status(),
		Message: appErr.Message,
	}
	if development {
		body.Err = appErr.Error()
		body.Stack = string(debug.Stack())
	}

	c.AbortWithStatusJSON(appErr.Code, body)
}
