package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appfinance "github.com/societyhub/backend/internal/application/finance"
	appidentity "github.com/societyhub/backend/internal/application/identity"
	appreport "github.com/societyhub/backend/internal/application/report"
	appsociety "github.com/societyhub/backend/internal/application/society"
	"github.com/societyhub/backend/internal/infrastructure/auth"
	"github.com/societyhub/backend/internal/infrastructure/config"
	"github.com/societyhub/backend/internal/infrastructure/persistence"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
	"github.com/societyhub/backend/internal/interfaces/http/middleware"
	"github.com/societyhub/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testServer wires the full HTTP stack against an in-memory database
type testServer struct {
	engine     *gin.Engine
	db         *gorm.DB
	jwtService *auth.JWTService
	blacklist  *auth.InMemoryTokenBlacklist
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-for-handler-tests!!",
		RefreshSecret:          "test-refresh-secret-for-handler-tests!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "societyhub-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	userRepo := persistence.NewUserRepository(db)
	societyRepo := persistence.NewSocietyRepository(db)
	flatRepo := persistence.NewFlatRepository(db)
	categoryRepo := persistence.NewExpenseCategoryRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	paymentRepo := persistence.NewMaintenancePaymentRepository(db)
	reportRepo := persistence.NewFinanceReportRepository(db)

	authService := appidentity.NewAuthService(userRepo, societyRepo, flatRepo, jwtService, blacklist, zap.NewNop())
	societyService := appsociety.NewSocietyService(societyRepo, flatRepo)
	flatService := appsociety.NewFlatService(societyRepo, flatRepo)
	expenseService := appfinance.NewExpenseService(categoryRepo, expenseRepo)
	paymentService := appfinance.NewPaymentService(paymentRepo, flatRepo, reportRepo)
	reportService := appreport.NewReportService(reportRepo, societyRepo, flatRepo)

	authHandler := NewAuthHandler(authService)
	societyHandler := NewSocietyHandler(societyService)
	flatHandler := NewFlatHandler(flatService)
	expenseHandler := NewExpenseHandler(expenseService)
	paymentHandler := NewPaymentHandler(paymentService)
	reportHandler := NewReportHandler(reportService)
	systemHandler := NewSystemHandler(nil)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	requireAuth := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
	})

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", requireAuth, authHandler.Logout)
	authRoutes.GET("/me", requireAuth, authHandler.Me)
	authRoutes.POST("/change-password", requireAuth, authHandler.ChangePassword)

	societyRoutes := router.NewDomainGroup("society", "/societies")
	societyRoutes.Use(requireAuth)
	societyRoutes.POST("", societyHandler.Create)
	societyRoutes.GET("", societyHandler.List)
	societyRoutes.GET("/:societyId", societyHandler.Get)
	societyRoutes.PUT("/:societyId", societyHandler.Update)
	societyRoutes.DELETE("/:societyId", societyHandler.Delete)
	societyRoutes.POST("/:societyId/flats", flatHandler.Create)
	societyRoutes.GET("/:societyId/flats", flatHandler.List)
	societyRoutes.GET("/:societyId/expense-categories", expenseHandler.ListCategories)
	societyRoutes.POST("/:societyId/expense-categories", expenseHandler.CreateCategory)
	societyRoutes.POST("/:societyId/expenses", expenseHandler.Create)
	societyRoutes.GET("/:societyId/expenses", expenseHandler.List)
	societyRoutes.GET("/:societyId/payments", paymentHandler.List)
	societyRoutes.POST("/:societyId/payments/bulk", paymentHandler.BulkCreate)
	societyRoutes.GET("/:societyId/payments/defaulters", paymentHandler.Defaulters)
	societyRoutes.GET("/:societyId/reports/summary", reportHandler.Summary)
	societyRoutes.GET("/:societyId/reports/monthly", reportHandler.Monthly)
	societyRoutes.GET("/:societyId/reports/year-to-date", reportHandler.YearToDate)
	societyRoutes.GET("/:societyId/reports/collection-trends", reportHandler.Trends)

	flatRoutes := router.NewDomainGroup("flat", "/flats")
	flatRoutes.Use(requireAuth)
	flatRoutes.GET("/:id", flatHandler.Get)
	flatRoutes.PUT("/:id", flatHandler.Update)
	flatRoutes.DELETE("/:id", flatHandler.Delete)

	expenseRoutes := router.NewDomainGroup("expense", "/expenses")
	expenseRoutes.Use(requireAuth)
	expenseRoutes.GET("/:id", expenseHandler.Get)
	expenseRoutes.PUT("/:id", expenseHandler.Update)
	expenseRoutes.DELETE("/:id", expenseHandler.Delete)

	paymentRoutes := router.NewDomainGroup("payment", "/payments")
	paymentRoutes.Use(requireAuth)
	paymentRoutes.POST("", paymentHandler.Create)
	paymentRoutes.GET("/:id", paymentHandler.Get)
	paymentRoutes.PUT("/:id", paymentHandler.Update)
	paymentRoutes.DELETE("/:id", paymentHandler.Delete)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authRoutes).
		Register(societyRoutes).
		Register(flatRoutes).
		Register(expenseRoutes).
		Register(paymentRoutes).
		Register(systemRoutes)
	r.Setup()

	return &testServer{
		engine:     engine,
		db:         db,
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// do performs a request against the test server, JSON-encoding body when set
func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

// apiResponse mirrors the response envelope with raw data for per-test decoding
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	resp := decodeResponse(t, w)
	require.True(t, resp.Success, "expected success response, got %s", w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

// registerAdmin registers a user and promotes it to ADMIN directly in the
// store, since admin accounts cannot self-register through the API.
func (ts *testServer) registerAdmin(t *testing.T, email string) string {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Name:     "Platform Admin",
		Email:    email,
		Password: "admin-password-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	err := ts.db.Model(&persistence.UserModel{}).
		Where("email = ?", email).
		Update("role", "ADMIN").Error
	require.NoError(t, err)

	return ts.login(t, email, "admin-password-1")
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result LoginResponse
	decodeData(t, w, &result)
	return result.AccessToken
}
