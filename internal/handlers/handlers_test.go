package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapquest/internal/events"
	mw "snapquest/internal/middleware"
	"snapquest/internal/missions"
	"snapquest/internal/models"
	"snapquest/internal/payment"
	"snapquest/internal/session"
	"snapquest/internal/store"
	"snapquest/internal/vision"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	st, err := store.OpenFileStore(filepath.Join(t.TempDir(), "kv.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := events.NewBus()
	sessions := session.NewManager(st)
	missionSvc := missions.NewService(st, sessions, logger)
	paymentSvc := payment.NewService(sessions, 0)
	visionSvc := vision.NewService(st, sessions, bus)

	authHandler := NewAuthHandler(sessions, testSecret)
	missionHandler := NewMissionHandler(missionSvc)
	paymentHandler := NewPaymentHandler(paymentSvc)
	visionHandler := NewVisionHandler(sessions, visionSvc)
	dashboardHandler := NewDashboardHandler(sessions, missionSvc)
	authMW := mw.NewAuthMiddleware(testSecret)

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", authHandler.Login)
		api.Get("/missions/examples", missionHandler.Examples)
		api.Post("/missions", missionHandler.Generate)
		api.Get("/missions/{id}", missionHandler.Get)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Post("/auth/logout", authHandler.Logout)
			pr.Get("/me", authHandler.GetMe)
			pr.Post("/subscribe", paymentHandler.Subscribe)
			pr.Get("/missions", missionHandler.List)
			pr.Post("/missions/{id}/complete", missionHandler.Complete)
			pr.Get("/dashboard", dashboardHandler.Get)
			pr.Get("/vision", visionHandler.Get)
			pr.Put("/vision", visionHandler.Save)
			pr.Post("/vision/image", visionHandler.GenerateImage)
		})
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler) (string, models.User) {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/api/auth/login", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

func TestLoginIssuesTokenAndIdentity(t *testing.T) {
	h := newTestRouter(t)
	token, user := login(t, h)

	assert.Equal(t, "Demo User", user.Name)
	assert.Zero(t, user.Tokens)

	w := doJSON(t, h, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&me))
	assert.Equal(t, user.ID, me.ID)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	h := newTestRouter(t)
	for _, path := range []string{"/api/me", "/api/missions", "/api/dashboard", "/api/vision"} {
		w := doJSON(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestGuestCanGenerate(t *testing.T) {
	h := newTestRouter(t)
	w := doJSON(t, h, http.MethodPost, "/api/missions", "", map[string]string{"imageUrl": "img"})
	require.Equal(t, http.StatusCreated, w.Code)
	var m models.Mission
	require.NoError(t, json.NewDecoder(w.Body).Decode(&m))
	assert.Contains(t, m.UserID, "guest-")
}

func TestSubscribeGenerateCompleteFlow(t *testing.T) {
	h := newTestRouter(t)
	token, _ := login(t, h)

	// fresh account cannot generate
	w := doJSON(t, h, http.MethodPost, "/api/missions", token, map[string]string{"imageUrl": "img"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	// subscription credits the flat grant
	w = doJSON(t, h, http.MethodPost, "/api/subscribe", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user models.User
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.Equal(t, payment.SubscriptionGrant, user.Tokens)

	// generation debits one token
	w = doJSON(t, h, http.MethodPost, "/api/missions", token, map[string]string{"imageUrl": "img"})
	require.Equal(t, http.StatusCreated, w.Code)
	var mission models.Mission
	require.NoError(t, json.NewDecoder(w.Body).Decode(&mission))
	assert.False(t, mission.Completed)

	// completion bumps the streak
	w = doJSON(t, h, http.MethodPost, "/api/missions/"+mission.ID+"/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
	assert.Equal(t, 1, user.Streak)
	assert.Equal(t, payment.SubscriptionGrant-1, user.Tokens)

	// dashboard reflects all of it
	w = doJSON(t, h, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dash))
	assert.EqualValues(t, 1, dash["current_streak_days"])
	assert.EqualValues(t, 1, dash["completed_missions"])
}

func TestVisionEndpoints(t *testing.T) {
	h := newTestRouter(t)
	token, _ := login(t, h)

	p := map[string]string{
		"passion":    "photography",
		"mission":    "more green cities",
		"profession": "teaching",
		"vocation":   "community workshops",
	}
	w := doJSON(t, h, http.MethodPut, "/api/vision", token, p)
	require.Equal(t, http.StatusOK, w.Code)

	// image generation needs tokens
	w = doJSON(t, h, http.MethodPost, "/api/vision/image", token, p)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/subscribe", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/vision/image", token, p)
	require.Equal(t, http.StatusCreated, w.Code)

	// incomplete parameters are rejected
	p["vocation"] = ""
	w = doJSON(t, h, http.MethodPost, "/api/vision/image", token, p)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/vision", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Parameters []models.VisionParameter `json:"parameters"`
		Image      *models.VisionImage      `json:"image"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp.Parameters, 4)
	require.NotNil(t, resp.Image)
	assert.Contains(t, resp.Image.Summary, "photography")
}

func TestExamplesAreServedPublicly(t *testing.T) {
	h := newTestRouter(t)
	w := doJSON(t, h, http.MethodGet, "/api/missions/examples", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out []models.Mission
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Len(t, out, 3)
}
