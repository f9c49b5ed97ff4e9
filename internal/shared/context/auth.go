package context

import (
	"net/http"
	"strconv"

	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Context keys for storing operator authentication information
const (
	OperatorIDKey    = "operator_id"
	OperatorEmailKey = "operator_email"
)

// GetOperatorID returns the authenticated operator ID set by the JWT middleware.
// The ID must be a decimal operator primary key.
func GetOperatorID(c *gin.Context) (string, bool) {
	value, exists := c.Get(OperatorIDKey)
	if !exists {
		return "", false
	}

	id, ok := value.(string)
	if !ok {
		return "", false
	}

	if _, err := strconv.ParseUint(id, 10, 32); err != nil {
		return "", false
	}

	return id, true
}

func GetOperatorEmail(c *gin.Context) string {
	return c.GetString(OperatorEmailKey)
}

// RequireOperatorID retrieves the authenticated operator's ID from the Gin context.
// If the ID is not found, an authentication error response is sent and the chain is aborted.
func RequireOperatorID(c *gin.Context) (string, bool) {
	operatorID, ok := GetOperatorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-000",
			Message: "로그인을 해주세요.",
		})
		c.Abort()
		logger.FromContext(c.Request.Context()).Error("[API] context에 운영자 ID가 존재하지 않습니다.")
		return "", false
	}
	return operatorID, true
}
