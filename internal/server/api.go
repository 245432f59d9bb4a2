package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MarceloDChagas/Respira/internal/calc"
	"github.com/MarceloDChagas/Respira/internal/carbon"
	"github.com/MarceloDChagas/Respira/internal/catalog"
	"github.com/MarceloDChagas/Respira/internal/economy"
	"github.com/MarceloDChagas/Respira/internal/profile"
	"github.com/MarceloDChagas/Respira/internal/telemetry"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// reasonStatus maps a store rejection to an HTTP status: bad input is a 400,
// unknown ids a 404, everything else a precondition conflict.
func reasonStatus(reason profile.Reason) int {
	switch reason {
	case profile.ReasonInvalidAmount, profile.ReasonInvalidSteps,
		profile.ReasonUnknownCategory, profile.ReasonInvalidSlot,
		profile.ReasonEmptyName:
		return http.StatusBadRequest
	case profile.ReasonUnknownMission:
		return http.StatusNotFound
	default:
		return http.StatusConflict
	}
}

// writeOutcome sends the fresh snapshot on success and the rejection reason
// otherwise.
func writeOutcome(w http.ResponseWriter, app *App, out profile.Outcome) {
	if !out.OK {
		writeError(w, reasonStatus(out.Reason), string(out.Reason))
		return
	}
	writeJSON(w, app.Store.Snapshot())
}

func RegisterAPIRoutes(mux *http.ServeMux, app *App) {
	store := app.Store

	mux.HandleFunc("GET /api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, store.Snapshot())
	})

	mux.HandleFunc("POST /api/profile/name", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		writeOutcome(w, app, store.SetName(body.Name))
	})

	mux.HandleFunc("POST /api/points", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount int `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		writeOutcome(w, app, store.AddPoints(body.Amount))
	})

	// Log an already-computed emission amount.
	mux.HandleFunc("POST /api/emissions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Category string  `json:"category"`
			KG       float64 `json:"kg"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		cat, ok := carbon.ParseCategory(body.Category)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		writeOutcome(w, app, store.AddEmission(cat, body.KG))
	})

	// Log an activity: resolve kg through the calculation service when one
	// is configured, otherwise fall back to the local preview table. A
	// failed service call never mutates the store.
	mux.HandleFunc("POST /api/emissions/log", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Category string  `json:"category"`
			Subtype  string  `json:"subtype"`
			Quantity float64 `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		cat, ok := carbon.ParseCategory(body.Category)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}

		var kg float64
		if app.Calc != nil {
			resp, err := app.calculate(r, cat, body.Subtype, body.Quantity)
			if err != nil {
				writeError(w, http.StatusBadGateway, err.Error())
				return
			}
			kg = resp.EmissionsKG
		} else {
			est, ok := carbon.Estimate(cat, body.Subtype, body.Quantity)
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown subtype")
				return
			}
			kg = est
		}

		out := store.AddEmission(cat, kg)
		if !out.OK {
			writeError(w, reasonStatus(out.Reason), string(out.Reason))
			return
		}
		writeJSON(w, map[string]any{
			"emissions_kg": kg,
			"state":        store.Snapshot(),
		})
	})

	mux.HandleFunc("POST /api/shop/buy", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ItemID string `json:"item_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		item, ok := catalog.Items()[body.ItemID]
		if !ok {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeOutcome(w, app, store.BuyItem(item.ID, item.Price))
	})

	mux.HandleFunc("POST /api/shop/equip", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ItemID string `json:"item_id"`
			Slot   string `json:"slot"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		item, ok := catalog.Items()[body.ItemID]
		if !ok {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}

		slot, ok := economy.ParseSlot(body.Slot)
		if !ok {
			// derive the slot from the item type when the client omits it
			if body.Slot != "" {
				writeError(w, http.StatusBadRequest, "invalid slot")
				return
			}
			slot = economy.Slot(item.Type)
		}
		writeOutcome(w, app, store.EquipItem(item.ID, slot))
	})

	mux.HandleFunc("POST /api/missions/accept", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		writeOutcome(w, app, store.AcceptMission(body.ID))
	})

	mux.HandleFunc("POST /api/missions/increment", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID    string `json:"id"`
			Steps *int   `json:"steps"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		steps := 1
		if body.Steps != nil {
			steps = *body.Steps
		}
		writeOutcome(w, app, store.IncrementMission(body.ID, steps))
	})

	mux.HandleFunc("POST /api/missions/complete", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		writeOutcome(w, app, store.CompleteMission(body.ID))
	})

	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		events, err := app.Events.GetEvents(time.Time{}, nil)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		stats, err := telemetry.CalculateStats(events)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, stats)
	})

	mux.HandleFunc("GET /api/catalog/missions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, catalog.SeedMissions())
	})

	mux.HandleFunc("GET /api/catalog/items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, catalog.Items())
	})

	mux.HandleFunc("GET /api/catalog/factors", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, carbon.Table())
	})

	mux.HandleFunc("GET /ws", app.Hub.HandleWS)
}

// calculate dispatches to the calc endpoint matching the category.
func (a *App) calculate(r *http.Request, cat carbon.Category, subtype string, quantity float64) (calc.CalculationResponse, error) {
	ctx := r.Context()
	switch cat {
	case carbon.CategoryTransport:
		return a.Calc.CalculateTransport(ctx, subtype, quantity)
	case carbon.CategoryEnergy:
		return a.Calc.CalculateEnergy(ctx, subtype, quantity)
	default:
		return a.Calc.CalculateFood(ctx, subtype, quantity)
	}
}
