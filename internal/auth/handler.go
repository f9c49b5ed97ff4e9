package auth

import (
	"net/http"

	sharedContext "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/context"
	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Signup(c *gin.Context) {
	var request SignupRequest

	// Parse and validate JSON request
	if !handler.BindJSON(c, &request) {
		return
	}

	err := a.authService.Signup(c.Request.Context(), &request)
	if err != nil {
		if resp, ok := sharedError.ResolveDomainError(err); ok {
			handler.RespondError(c, err, resp)
			return
		}

		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}
	c.JSON(http.StatusCreated, gin.H{})
}

// Logout requires the JWT middleware
func (a *AuthHandler) Logout(c *gin.Context) {
	operatorID, ok := sharedContext.RequireOperatorID(c)
	if !ok {
		return
	}

	a.authService.Logout(c.Request.Context(), operatorID, sharedContext.GetOperatorEmail(c))
	c.Status(http.StatusNoContent)
}
