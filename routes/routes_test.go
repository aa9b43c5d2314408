package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auracare/database/repository/memory"
	"auracare/handlers"
	"auracare/models"
	"auracare/services/forecast"
	"auracare/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPredictor struct{}

func (stubPredictor) Health(context.Context) error { return nil }

func (stubPredictor) Predict(_ context.Context, _ string, _ []models.MonthlyRevenue, horizon int) ([]forecast.Prediction, error) {
	return make([]forecast.Prediction, horizon), nil
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	jwt    *utils.JWTManager
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	revoker := utils.NewTokenRevoker(rdb)
	hb := handlers.NewHandlerBundle(handlers.Deps{
		Repos:           memory.NewSet(),
		JWT:             jwtManager,
		Revoker:         revoker,
		SalonCache:      utils.NewJSONCache(rdb, utils.SalonOwnerCachePrefix, time.Minute),
		Predictor:       stubPredictor{},
		Health:          utils.NewHealthMonitor(nil, rdb),
		PFRatePercent:   12,
		ProfessionalTax: 200,
	})

	r := gin.New()
	RegisterRoutes(r, hb, Options{AllowedOrigins: []string{"*"}, JWT: jwtManager, Revoker: revoker})
	return &testServer{t: t, router: r, jwt: jwtManager}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func (s *testServer) register(name, email, role string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Name: name, Email: email, Password: "s3cret-pass", Role: role,
	})
	require.Equal(s.t, http.StatusCreated, code, env.Message)
	return decode[models.AuthResponse](s.t, env.Data).Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.register("Cara", "cara@mail.io", "")

	code, env := s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[models.User](t, env.Data)
	assert.Equal(t, models.RoleCustomer, me.Role)

	code, _ = s.do(http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Name: "X", Email: "cara@mail.io", Password: "s3cret-pass"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "cara@mail.io", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "cara@mail.io"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestBookingJourney(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("Olga", "olga@glow.io", models.RoleSalon)
	customer := s.register("Cara", "cara@mail.io", models.RoleCustomer)
	admin, _, err := s.jwt.GenerateToken("admin-1", "root@auracare.io", models.RoleAdmin)
	require.NoError(t, err)

	code, _ := s.do(http.MethodGet, "/api/salon/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodPost, "/api/salon", customer, models.SalonRequest{Name: "Nope"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env := s.do(http.MethodPost, "/api/salon", owner, models.SalonRequest{Name: "Glow", Phone: "555"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	created := decode[models.Salon](t, env.Data)
	assert.Equal(t, models.SalonStatusPending, created.Status)

	code, _ = s.do(http.MethodPatch, "/api/admin/salons/"+created.ID+"/approve", owner, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, env = s.do(http.MethodPatch, "/api/admin/salons/"+created.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(http.MethodPost, "/api/salon/services", owner, models.ServiceRequest{Name: "Cut", Category: "Hair", DurationMinutes: 30, Price: 20})
	require.Equal(t, http.StatusCreated, code, env.Message)
	service := decode[models.Service](t, env.Data)

	code, env = s.do(http.MethodGet, "/api/salon/public", "", nil)
	require.Equal(t, http.StatusOK, code)
	public := decode[models.Page[models.Salon]](t, env.Data)
	assert.Equal(t, int64(1), public.Pagination.Total)

	code, env = s.do(http.MethodPost, "/api/appointments", customer, models.BookAppointmentRequest{
		SalonID: created.ID, ServiceIDs: []string{service.ID}, StartTime: time.Now().Add(72 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	appt := decode[models.Appointment](t, env.Data)
	assert.Equal(t, 20.0, appt.TotalAmount)

	code, env = s.do(http.MethodGet, "/api/salon/appointments?status=pending&limit=5", owner, nil)
	require.Equal(t, http.StatusOK, code)
	listed := decode[models.Page[models.Appointment]](t, env.Data)
	assert.Equal(t, 5, listed.Pagination.Limit)
	assert.Len(t, listed.Items, 1)

	code, env = s.do(http.MethodPost, "/api/appointments/"+appt.ID+"/cancel", customer, models.CancelAppointmentRequest{Reason: "travel"})
	require.Equal(t, http.StatusOK, code, env.Message)
	cancelled := decode[models.Appointment](t, env.Data)
	assert.Zero(t, cancelled.CancellationFee)

	code, env = s.do(http.MethodPatch, "/api/salon/appointments/"+appt.ID+"/status", owner, models.AppointmentStatusRequest{Status: models.AppointmentConfirmed})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	code, env = s.do(http.MethodGet, "/api/admin/finance?from=2020-01-01", admin, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	code, _ = s.do(http.MethodGet, "/api/admin/finance?from=yesterday", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/salon/forecast?horizon=2", owner, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	fc := decode[forecast.Forecast](t, env.Data)
	assert.Len(t, fc.Predictions, 2)
}

func TestGiftCardEndpoints(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("Olga", "olga@glow.io", models.RoleSalon)
	buyer := s.register("Bea", "bea@mail.io", models.RoleCustomer)
	admin, _, err := s.jwt.GenerateToken("admin-1", "root@auracare.io", models.RoleAdmin)
	require.NoError(t, err)

	_, env := s.do(http.MethodPost, "/api/salon", owner, models.SalonRequest{Name: "Glow"})
	salon := decode[models.Salon](t, env.Data)
	code, _ := s.do(http.MethodPatch, "/api/admin/salons/"+salon.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/gift-card", buyer, models.IssueGiftCardRequest{SalonID: salon.ID, Amount: 50})
	require.Equal(t, http.StatusCreated, code, env.Message)
	card := decode[models.GiftCard](t, env.Data)

	code, env = s.do(http.MethodGet, "/api/gift-card/code/"+card.Code, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "purchaserId")

	code, _ = s.do(http.MethodPost, "/api/gift-card/redeem", buyer, models.RedeemGiftCardRequest{Code: card.Code, Amount: 10})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, "/api/gift-card/redeem", owner, models.RedeemGiftCardRequest{Code: card.Code, Amount: 10})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, models.Money(4000), decode[models.GiftCard](t, env.Data).Balance)

	code, env = s.do(http.MethodGet, "/api/gift-card/code/NOPE", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "gift card not found", env.Message)
}

func TestPublicListing_HugePage(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/api/salon/public?page=4611686018427387904&limit=100", "", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	page := decode[models.Page[models.Salon]](t, env.Data)
	assert.Empty(t, page.Items)
	assert.Equal(t, models.MaxPage, page.Pagination.Page)
}
