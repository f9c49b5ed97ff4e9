package auth

import (
	"net/http"

	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
)

const (
	operatorAlreadyExists  = "OPERATOR_ALREADY_EXISTS"  // errInfo
	incorrectEmailPassword = "INCORRECT_EMAIL_PASSWORD" // errInfo
)

var (
	ErrOperatorAlreadyExists  = sharedError.NewDomainError(operatorAlreadyExists)
	ErrInCorrectEmailPassword = sharedError.NewDomainError(incorrectEmailPassword)
)

func init() {
	sharedError.RegisterDomainErrorResponse(operatorAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "AUTH-001",
		Message: "이미 가입된 운영자입니다.",
	})

	sharedError.RegisterDomainErrorResponse(incorrectEmailPassword, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "이메일 또는 비밀번호가 일치하지 않습니다.",
	})
}
