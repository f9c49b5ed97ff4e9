package member

import (
	"strings"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/importer"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
)

type CreateMemberRequest struct {
	ID           string `json:"id" binding:"required,memberid"`
	Name         string `json:"name" binding:"required,max=100"`
	Car          string `json:"car" binding:"max=200"`
	IsActive     *bool  `json:"isActive"`
	ValidPayment *bool  `json:"validPayment"`
	Notes        string `json:"notes" binding:"max=1000"`
}

// Flags defaults missing flags to true, matching a new paying member
func (r *CreateMemberRequest) Flags() (isActive, validPayment bool) {
	isActive, validPayment = true, true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	if r.ValidPayment != nil {
		validPayment = *r.ValidPayment
	}
	return isActive, validPayment
}

type UpdateMemberRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	Car          *string `json:"car" binding:"omitempty,max=200"`
	IsActive     *bool   `json:"isActive"`
	ValidPayment *bool   `json:"validPayment"`
	Notes        *string `json:"notes" binding:"omitempty,max=1000"`
}

func (r *UpdateMemberRequest) ToPatch() model.MemberPatch {
	return model.MemberPatch{
		Name:         trimmed(r.Name),
		Car:          trimmed(r.Car),
		IsActive:     r.IsActive,
		ValidPayment: r.ValidPayment,
		Notes:        trimmed(r.Notes),
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

type MemberURI struct {
	ID string `uri:"id" binding:"required"`
}

type KioskURI struct {
	Code string `uri:"code" binding:"required,memberid"`
}

type ListResponse struct {
	Members   []model.Member `json:"members"`
	IsLoading bool           `json:"isLoading"`
	Error     *string        `json:"error"`
}

func newListResponse(state State) ListResponse {
	return ListResponse{
		Members:   state.Members,
		IsLoading: state.IsLoading,
		Error:     state.Error,
	}
}

type MutationResponse struct {
	ID string `json:"id"`
}

// Kiosk statuses
const (
	KioskStatusActive     = "ACTIVE"
	KioskStatusPaymentDue = "PAYMENT_DUE"
	KioskStatusInactive   = "INACTIVE"
)

type KioskResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Car    string `json:"car"`
	Status string `json:"status"`
}

func newKioskResponse(m *model.Member) KioskResponse {
	status := KioskStatusActive
	switch {
	case !m.IsActive:
		status = KioskStatusInactive
	case !m.ValidPayment:
		status = KioskStatusPaymentDue
	}

	return KioskResponse{
		ID:     m.ID,
		Name:   m.Name,
		Car:    m.Car,
		Status: status,
	}
}

type ImportResponse struct {
	*importer.Result
	RefreshError *string `json:"refreshError,omitempty"`
}
