package member

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/importer"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	sharedContext "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/context"
	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/handler"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/store"
	"github.com/gin-gonic/gin"
)

const importFormField = "file"

type MemberHandler struct {
	registry       *CacheRegistry
	gateway        store.Gateway
	importer       *importer.Engine
	maxUploadBytes int64
}

func NewMemberHandler(registry *CacheRegistry, gateway store.Gateway, engine *importer.Engine, maxUploadBytes int64) *MemberHandler {
	return &MemberHandler{
		registry:       registry,
		gateway:        gateway,
		importer:       engine,
		maxUploadBytes: maxUploadBytes,
	}
}

// cache resolves the signed-in operator's member cache
func (h *MemberHandler) cache(c *gin.Context) (*MemberCache, bool) {
	operatorID, ok := sharedContext.RequireOperatorID(c)
	if !ok {
		return nil, false
	}
	return h.registry.ForOperator(c.Request.Context(), operatorID), true
}

// List GET /members?name=&validPayment=
func (h *MemberHandler) List(c *gin.Context) {
	cache, ok := h.cache(c)
	if !ok {
		return
	}

	// The payment filter is always answered by the store
	if raw, present := c.GetQuery("validPayment"); present {
		validPayment, err := strconv.ParseBool(raw)
		if err != nil {
			handler.RespondError(c, err, sharedError.InvalidRequest)
			return
		}

		members, err := h.gateway.ReadByPaymentStatus(c.Request.Context(), validPayment)
		if err != nil {
			handler.RespondDomainError(c, err)
			return
		}
		if members == nil {
			members = []model.Member{}
		}
		c.JSON(http.StatusOK, ListResponse{Members: members})
		return
	}

	state := cache.Snapshot()
	if name := c.Query("name"); name != "" {
		state.Members = cache.Search(name)
	}

	c.JSON(http.StatusOK, newListResponse(state))
}

// Get GET /members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	var uri MemberURI
	if !handler.BindURI(c, &uri) {
		return
	}

	cache, ok := h.cache(c)
	if !ok {
		return
	}

	member, err := cache.GetMember(c.Request.Context(), uri.ID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	if member == nil {
		handler.RespondDomainError(c, fmt.Errorf("member %s: %w", uri.ID, store.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, member)
}

// Create POST /members
func (h *MemberHandler) Create(c *gin.Context) {
	var request CreateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	cache, ok := h.cache(c)
	if !ok {
		return
	}

	isActive, validPayment := request.Flags()
	id, err := cache.CreateMember(c.Request.Context(),
		request.ID,
		strings.TrimSpace(request.Name),
		strings.TrimSpace(request.Car),
		isActive,
		validPayment,
		strings.TrimSpace(request.Notes),
	)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MutationResponse{ID: id})
}

// Update PATCH /members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	var uri MemberURI
	if !handler.BindURI(c, &uri) {
		return
	}

	var request UpdateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	cache, ok := h.cache(c)
	if !ok {
		return
	}

	id, err := cache.UpdateMember(c.Request.Context(), uri.ID, request.ToPatch())
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, MutationResponse{ID: id})
}

// Delete DELETE /members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	var uri MemberURI
	if !handler.BindURI(c, &uri) {
		return
	}

	cache, ok := h.cache(c)
	if !ok {
		return
	}

	id, err := cache.DeleteMember(c.Request.Context(), uri.ID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, MutationResponse{ID: id})
}

// Refresh POST /members/refresh
func (h *MemberHandler) Refresh(c *gin.Context) {
	cache, ok := h.cache(c)
	if !ok {
		return
	}

	if err := cache.RefreshMembers(c.Request.Context()); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(cache.Snapshot()))
}

// Import POST /members/import (multipart, field "file")
// Rows are written straight to the store, then the cache is refreshed once.
func (h *MemberHandler) Import(c *gin.Context) {
	cache, ok := h.cache(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile(importFormField)
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	result, err := h.importer.ImportRecords(ctx, file, h.gateway.Create)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	log.Info("엑셀 가져오기 완료",
		"file", fileHeader.Filename,
		"total", result.Total,
		"successful", result.Successful,
		"failed", result.Failed,
	)

	response := ImportResponse{Result: result}
	if err := cache.RefreshMembers(ctx); err != nil {
		msg := refreshFailedMessage
		response.RefreshError = &msg
	}

	c.JSON(http.StatusOK, response)
}

// Lookup GET /kiosk/:code
func (h *MemberHandler) Lookup(c *gin.Context) {
	var uri KioskURI
	if !handler.BindURI(c, &uri) {
		return
	}

	cache, ok := h.cache(c)
	if !ok {
		return
	}

	member, err := cache.GetMember(c.Request.Context(), uri.Code)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	if member == nil {
		handler.RespondDomainError(c, fmt.Errorf("kiosk lookup %s: %w", uri.Code, store.ErrNotFound))
		return
	}

	c.JSON(http.StatusOK, newKioskResponse(member))
}
