package util

import (
	"exam_quiz_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResultEnvelope wraps every successful response body.
type ResultEnvelope struct {
	Result interface{} `json:"result"`
}

// ErrorEnvelope wraps every failure response body.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func OK(c *gin.Context, result interface{}) {
	c.JSON(http.StatusOK, ResultEnvelope{Result: result})
}

// Fail writes the flat {code, message} pair for a failure. Internal detail
// (the wrapped cause) is only logged, never surfaced.
func Fail(c *gin.Context, err error) {
	appErr := AsAppError(err)

	if appErr.Err != nil && logger.Log != nil {
		logger.Log.Error("request failed",
			zap.String("code", appErr.Code),
			zap.String("path", c.FullPath()),
			zap.Error(appErr.Err),
		)
	}

	c.JSON(HTTPStatus(appErr.Code), ErrorEnvelope{
		Error: ErrorBody{Code: appErr.Code, Message: appErr.Message},
	})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorEnvelope{
		Error: ErrorBody{Code: CodeUnauthorized, Message: "Unauthorized"},
	})
}
