package member

import (
	"net/http"

	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
)

const (
	cacheLoadFailed = "MEMBER_CACHE_LOAD_FAILED" // errInfo
)

var (
	ErrCacheLoad = sharedError.NewDomainError(cacheLoadFailed)
)

// Messages exposed on State.Error
const (
	loadFailedMessage    = "Failed to load members. Please refresh the page."
	refreshFailedMessage = "Failed to refresh members."
)

func init() {
	sharedError.RegisterDomainErrorResponse(cacheLoadFailed, sharedError.ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "MEMBER-003",
		Message: "회원 목록을 불러오지 못했습니다. 잠시 후 다시 시도해 주세요.",
	})
}
