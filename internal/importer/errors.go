package importer

import (
	"net/http"

	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
)

const (
	unreadableWorkbook = "UNREADABLE_WORKBOOK" // errInfo
)

var (
	ErrUnreadableWorkbook = sharedError.NewDomainError(unreadableWorkbook)
)

// missingIDMessage is reported for rows whose B + C concatenation is empty
const missingIDMessage = "No ID found (columns B + C are empty)"

func init() {
	sharedError.RegisterDomainErrorResponse(unreadableWorkbook, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "IMPORT-001",
		Message: "엑셀 파일을 읽을 수 없습니다.",
	})
}
