package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarceloDChagas/Respira/internal/config"
	"github.com/MarceloDChagas/Respira/internal/profile"
)

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := NewApp(Options{Config: cfg})
	require.NoError(t, err)
	return app
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) profile.Snapshot {
	t.Helper()
	var snap profile.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func TestGetState(t *testing.T) {
	app := newTestApp(t, nil)
	h := app.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decodeSnapshot(t, rec)
	assert.Equal(t, 1250, snap.TotalPoints)
	assert.Equal(t, 2, snap.Level)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestMissionFlowOverHTTP(t *testing.T) {
	app := newTestApp(t, nil)
	h := app.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/missions/accept", map[string]any{"id": "banho_flash"})
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	require.NotNil(t, snap.ActiveMission)
	assert.Equal(t, "banho_flash", snap.ActiveMission.ID)

	// a second acceptance conflicts with the active slot
	rec = doJSON(t, h, http.MethodPost, "/api/missions/accept", map[string]any{"id": "luz_apagada"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// unknown missions are a 404
	rec = doJSON(t, h, http.MethodPost, "/api/missions/accept", map[string]any{"id": "nope"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// steps defaults to 1
	rec = doJSON(t, h, http.MethodPost, "/api/missions/increment", map[string]any{"id": "banho_flash"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/missions/complete", map[string]any{"id": "banho_flash"})
	require.Equal(t, http.StatusOK, rec.Code)
	snap = decodeSnapshot(t, rec)
	assert.Equal(t, 1300, snap.TotalPoints)
	assert.InDelta(t, 1.5, snap.TotalReducedCO2, 1e-9)
	assert.Nil(t, snap.ActiveMission)

	// completing again is a conflict, not an error
	rec = doJSON(t, h, http.MethodPost, "/api/missions/complete", map[string]any{"id": "banho_flash"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestShopOverHTTP(t *testing.T) {
	app := newTestApp(t, nil)
	h := app.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/shop/buy", map[string]any{"item_id": "hat"})
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	assert.Equal(t, 900, snap.TotalPoints)
	assert.Contains(t, snap.OwnedItems, "hat")

	rec = doJSON(t, h, http.MethodPost, "/api/shop/buy", map[string]any{"item_id": "unknown_item"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// bg_sunset costs 600, balance is 900 after the hat: affordable; then
	// solar_hat at 420 against 300 is not
	rec = doJSON(t, h, http.MethodPost, "/api/shop/buy", map[string]any{"item_id": "bg_sunset"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, h, http.MethodPost, "/api/shop/buy", map[string]any{"item_id": "solar_hat"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// slot is derived from the item type when omitted
	rec = doJSON(t, h, http.MethodPost, "/api/shop/equip", map[string]any{"item_id": "hat"})
	require.Equal(t, http.StatusOK, rec.Code)
	snap = decodeSnapshot(t, rec)
	assert.Equal(t, "hat", snap.EquippedItems.Accessory)

	// equipping an unowned item is rejected by the store
	rec = doJSON(t, h, http.MethodPost, "/api/shop/equip", map[string]any{"item_id": "glasses"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEmissionsLog_LocalEstimate(t *testing.T) {
	app := newTestApp(t, nil) // no calc service configured
	h := app.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/emissions/log", map[string]any{
		"category": "transportation",
		"subtype":  "car_gasoline_km",
		"quantity": 100,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		EmissionsKG float64          `json:"emissions_kg"`
		State       profile.Snapshot `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 19.2, resp.EmissionsKG, 1e-9)
	assert.InDelta(t, 19.2, resp.State.TransportEmission, 1e-9)

	rec = doJSON(t, h, http.MethodPost, "/api/emissions/log", map[string]any{
		"category": "transportation",
		"subtype":  "rocket_km",
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmissionsLog_ThroughCalcService(t *testing.T) {
	// a stand-in calculation service that returns a fixed answer
	calcSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/calculate/energy", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"emissions_kg": 2.33, "category": "energy"})
	}))
	defer calcSrv.Close()

	cfg := config.Default()
	cfg.Server.CalcBaseURL = calcSrv.URL
	app := newTestApp(t, cfg)
	h := app.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/emissions/log", map[string]any{
		"category": "energy",
		"subtype":  "electricity_kwh",
		"quantity": 10,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 2.33, decodeState(t, rec).EnergyEmission, 1e-9)
}

func TestEmissionsLog_ServiceDownLeavesStoreUntouched(t *testing.T) {
	cfg := config.Default()
	cfg.Server.CalcBaseURL = "http://127.0.0.1:1" // nothing listens here
	app := newTestApp(t, cfg)
	h := app.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/emissions/log", map[string]any{
		"category": "energy",
		"subtype":  "electricity_kwh",
		"quantity": 10,
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Zero(t, app.Store.Snapshot().EnergyEmission)
}

func TestAddEmission_InvalidAmount(t *testing.T) {
	app := newTestApp(t, nil)
	h := app.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/emissions", map[string]any{
		"category": "food",
		"kg":       -5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	h := app.Handler()

	doJSON(t, h, http.MethodPost, "/api/missions/accept", map[string]any{"id": "banho_flash"})
	doJSON(t, h, http.MethodPost, "/api/missions/increment", map[string]any{"id": "banho_flash"})
	doJSON(t, h, http.MethodPost, "/api/missions/complete", map[string]any{"id": "banho_flash"})

	rec := doJSON(t, h, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		MissionsCompleted int     `json:"missions_completed"`
		PointsEarned      int     `json:"points_earned"`
		CO2ReducedTotal   float64 `json:"co2_reduced_total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.MissionsCompleted)
	assert.Equal(t, 50, stats.PointsEarned)
	assert.InDelta(t, 1.5, stats.CO2ReducedTotal, 1e-9)
}

func TestCatalogEndpoints(t *testing.T) {
	app := newTestApp(t, nil)
	h := app.Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/catalog/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Contains(t, items, "bg_default")

	rec = doJSON(t, h, http.MethodGet, "/api/catalog/missions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/catalog/factors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var factors map[string]map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &factors))
	assert.InDelta(t, 0.192, factors["transportation"]["car_gasoline_km"], 1e-9)
}

func TestWebsocketReceivesSnapshots(t *testing.T) {
	app := newTestApp(t, nil)
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	wsURL := strings.Replace(srv.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// connect replays the current snapshot
	var msg struct {
		Type    string           `json:"type"`
		Payload profile.Snapshot `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "state", msg.Type)
	assert.Equal(t, 1250, msg.Payload.TotalPoints)

	// a mutation pushes a fresh snapshot
	resp, err := http.Post(srv.URL+"/api/missions/accept", "application/json",
		strings.NewReader(`{"id":"banho_flash"}`))
	require.NoError(t, err)
	resp.Body.Close()

	require.NoError(t, conn.ReadJSON(&msg))
	require.NotNil(t, msg.Payload.ActiveMission)
	assert.Equal(t, "banho_flash", msg.Payload.ActiveMission.ID)
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) profile.Snapshot {
	t.Helper()
	var resp struct {
		State profile.Snapshot `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.State
}
