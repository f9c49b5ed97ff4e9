package store

import (
	"net/http"

	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
)

const (
	storeUnavailable = "STORE_UNAVAILABLE" // errInfo
	memberNotFound   = "MEMBER_NOT_FOUND"  // errInfo
)

var (
	ErrStore    = sharedError.NewDomainError(storeUnavailable)
	ErrNotFound = sharedError.NewDomainError(memberNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(storeUnavailable, sharedError.ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "STORE-001",
		Message: "회원 저장소에 연결할 수 없습니다. 잠시 후 다시 시도해 주세요.",
	})

	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "회원 정보를 찾을 수 없습니다.",
	})
}
