package member_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/importer"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/member"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	sharedContext "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/context"
	sharedError "github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const operatorID = "1"

// withOperator stands in for the JWT middleware
func withOperator(c *gin.Context) {
	c.Set(sharedContext.OperatorIDKey, operatorID)
	c.Next()
}

func setupMemberRouter(t *testing.T, members ...model.Member) (*gin.Engine, *member.CacheRegistry, *testutil.MockGateway) {
	t.Helper()

	gateway := testutil.NewMockGateway(members...)
	registry := member.NewCacheRegistry(gateway)
	memberHandler := member.NewMemberHandler(registry, gateway, importer.NewEngine(2), 1<<20)

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1", withOperator)
	group.GET("/members", memberHandler.List)
	group.POST("/members", memberHandler.Create)
	group.POST("/members/refresh", memberHandler.Refresh)
	group.POST("/members/import", memberHandler.Import)
	group.GET("/members/:id", memberHandler.Get)
	group.PATCH("/members/:id", memberHandler.Update)
	group.DELETE("/members/:id", memberHandler.Delete)
	group.GET("/kiosk/:code", memberHandler.Lookup)

	return router, registry, gateway
}

func assertErrorCode(t *testing.T, recorder *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	assert.Equal(t, status, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, code, errorResponse.Code)
	assert.NotEmpty(t, errorResponse.Message)
}

func TestMemberHandler_List(t *testing.T) {
	router, _, _ := setupMemberRouter(t, alice, bob, charlie)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members"})

	require.Equal(t, http.StatusOK, recorder.Code)
	var response member.ListResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.ElementsMatch(t, []model.Member{alice, bob, charlie}, response.Members)
	assert.False(t, response.IsLoading)
	assert.Nil(t, response.Error)
}

func TestMemberHandler_List_NameFilter(t *testing.T) {
	router, _, _ := setupMemberRouter(t, alice, bob, charlie)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members?name=ali"})

	require.Equal(t, http.StatusOK, recorder.Code)
	var response member.ListResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, []model.Member{alice}, response.Members)
}

func TestMemberHandler_List_PaymentFilterQueriesStore(t *testing.T) {
	router, _, gateway := setupMemberRouter(t, alice, bob, charlie)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members?validPayment=false"})

	require.Equal(t, http.StatusOK, recorder.Code)
	var response member.ListResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, []model.Member{bob}, response.Members)
	assert.Equal(t, 1, gateway.Calls("ReadByPaymentStatus"))

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members?validPayment=maybe"})
	assertErrorCode(t, recorder, http.StatusBadRequest, "ERROR-002")
}

func TestMemberHandler_List_LoadFailure(t *testing.T) {
	router, _, gateway := setupMemberRouter(t, alice)
	gateway.ReadAllFunc = func(ctx context.Context) ([]model.Member, error) {
		return nil, storeFailure("read all")
	}

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members"})

	require.Equal(t, http.StatusOK, recorder.Code)
	var response member.ListResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Empty(t, response.Members)
	require.NotNil(t, response.Error)
	assert.Equal(t, "Failed to load members. Please refresh the page.", *response.Error)
}

func TestMemberHandler_Get(t *testing.T) {
	router, _, _ := setupMemberRouter(t, alice)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members/B001"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var got model.Member
	testutil.ParseResponse(t, recorder, &got)
	assert.Equal(t, alice, got)

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members/Z999"})
	assertErrorCode(t, recorder, http.StatusNotFound, "MEMBER-001")
}

func TestMemberHandler_Get_StoreUnavailable(t *testing.T) {
	router, _, gateway := setupMemberRouter(t, alice)
	gateway.ReadFunc = func(ctx context.Context, id string) (*model.Member, error) {
		return nil, storeFailure("read " + id)
	}

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members/U003"})
	assertErrorCode(t, recorder, http.StatusServiceUnavailable, "STORE-001")
}

func TestMemberHandler_Create(t *testing.T) {
	router, registry, gateway := setupMemberRouter(t, alice)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Body: map[string]any{
			"id":   "D0042",
			"name": "  Dana ",
			"car":  "White Van",
		},
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	var response member.MutationResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "D0042", response.ID)

	want := model.Member{ID: "D0042", Name: "Dana", Car: "White Van", IsActive: true, ValidPayment: true}
	stored, ok := gateway.Doc("D0042")
	require.True(t, ok)
	assert.Equal(t, want, stored)
	assert.Contains(t, registry.ForOperator(context.Background(), operatorID).Members(), want)
}

func TestMemberHandler_Create_ValidationError(t *testing.T) {
	router, _, gateway := setupMemberRouter(t)

	testCases := []struct {
		name string
		body map[string]any
	}{
		{"missing id", map[string]any{"name": "Dana"}},
		{"lowercase id", map[string]any{"id": "d0042", "name": "Dana"}},
		{"too many digits", map[string]any{"id": "D00042", "name": "Dana"}},
		{"missing name", map[string]any{"id": "D0042"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/members",
				Body:   tc.body,
			})
			assertErrorCode(t, recorder, http.StatusBadRequest, "ERROR-001")
		})
	}
	assert.Zero(t, gateway.Calls("Create"))
}

func TestMemberHandler_Update(t *testing.T) {
	router, registry, gateway := setupMemberRouter(t, alice)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPatch,
		URL:    "/api/v1/members/B001",
		Body:   map[string]any{"isActive": false, "notes": "paused for winter"},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	stored, _ := gateway.Doc("B001")
	assert.False(t, stored.IsActive)
	assert.Equal(t, "paused for winter", stored.Notes)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, []model.Member{stored}, registry.ForOperator(context.Background(), operatorID).Members())

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPatch,
		URL:    "/api/v1/members/Z999",
		Body:   map[string]any{"name": "Zed"},
	})
	assertErrorCode(t, recorder, http.StatusNotFound, "MEMBER-001")
}

func TestMemberHandler_Delete(t *testing.T) {
	router, registry, gateway := setupMemberRouter(t, alice, bob)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: "/api/v1/members/B001"})
	require.Equal(t, http.StatusOK, recorder.Code)

	_, ok := gateway.Doc("B001")
	assert.False(t, ok)
	assert.Equal(t, []model.Member{bob}, registry.ForOperator(context.Background(), operatorID).Members())

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: "/api/v1/members/B001"})
	assertErrorCode(t, recorder, http.StatusNotFound, "MEMBER-001")
}

func TestMemberHandler_Refresh(t *testing.T) {
	router, _, gateway := setupMemberRouter(t, alice)

	// Load the session, then change the store behind its back
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members"})
	require.Equal(t, http.StatusOK, recorder.Code)
	gateway.Put(bob)

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/members/refresh"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var response member.ListResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.ElementsMatch(t, []model.Member{alice, bob}, response.Members)

	gateway.ReadAllFunc = func(ctx context.Context) ([]model.Member, error) {
		return nil, storeFailure("read all")
	}
	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/members/refresh"})
	assertErrorCode(t, recorder, http.StatusServiceUnavailable, "MEMBER-003")
}

func TestMemberHandler_Lookup(t *testing.T) {
	router, _, _ := setupMemberRouter(t, alice, bob, charlie)

	testCases := []struct {
		code   string
		status string
	}{
		{"B001", member.KioskStatusActive},
		{"D002", member.KioskStatusPaymentDue},
		{"U003", member.KioskStatusInactive},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/kiosk/" + tc.code})

			require.Equal(t, http.StatusOK, recorder.Code)
			var response member.KioskResponse
			testutil.ParseResponse(t, recorder, &response)
			assert.Equal(t, tc.code, response.ID)
			assert.Equal(t, tc.status, response.Status)
		})
	}

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/kiosk/b001"})
	assertErrorCode(t, recorder, http.StatusBadRequest, "ERROR-001")

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/kiosk/Z999"})
	assertErrorCode(t, recorder, http.StatusNotFound, "MEMBER-001")
}

func TestMemberHandler_RequiresOperator(t *testing.T) {
	gateway := testutil.NewMockGateway(alice)
	memberHandler := member.NewMemberHandler(member.NewCacheRegistry(gateway), gateway, importer.NewEngine(0), 0)

	router := testutil.SetupTestRouter()
	router.GET("/api/v1/members", memberHandler.List)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/members"})
	assertErrorCode(t, recorder, http.StatusUnauthorized, "AUTH-000")
	assert.Zero(t, gateway.Calls("ReadAll"))
}

func membersWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	const sheet = "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Name", "Tier", "Number", "Car"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Erin", "B", "010", "Silver Hatch"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Frank", "D", "011", "Green Wagon"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"Nobody", "", "", "Gray Van"}))

	yellow, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "A3", "D3", yellow))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestMemberHandler_Import(t *testing.T) {
	router, registry, gateway := setupMemberRouter(t, alice)

	recorder := testutil.ExecuteUpload(t, router, "/api/v1/members/import", "file", "members.xlsx", membersWorkbook(t))

	require.Equal(t, http.StatusOK, recorder.Code)
	var response member.ImportResponse
	testutil.ParseResponse(t, recorder, &response)
	require.NotNil(t, response.Result)
	assert.Equal(t, 3, response.Total)
	assert.Equal(t, 2, response.Successful)
	assert.Equal(t, 1, response.Failed)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, 4, response.Errors[0].Row)
	assert.Nil(t, response.RefreshError)

	frank, ok := gateway.Doc("D011")
	require.True(t, ok)
	assert.True(t, frank.IsActive)
	assert.False(t, frank.ValidPayment)

	// The cache was refreshed after the import
	members := registry.ForOperator(context.Background(), operatorID).Members()
	assert.Len(t, members, 3)
}

func TestMemberHandler_Import_Rejected(t *testing.T) {
	router, _, gateway := setupMemberRouter(t)

	recorder := testutil.ExecuteUpload(t, router, "/api/v1/members/import", "file", "members.xlsx", []byte("not a spreadsheet"))
	assertErrorCode(t, recorder, http.StatusBadRequest, "IMPORT-001")

	recorder = testutil.ExecuteUpload(t, router, "/api/v1/members/import", "upload", "members.xlsx", membersWorkbook(t))
	assertErrorCode(t, recorder, http.StatusBadRequest, "ERROR-002")

	assert.Zero(t, gateway.Calls("Create"))
}
