package adherence

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Metrics es lo que estos handlers necesitan de la sesión.
type Metrics interface {
	Today() (scheduled, taken, pct int)
	Weekly() ([]DayStat, int)
	Streak() int
}

func RegisterRoutes(r chi.Router, m Metrics) {
	r.Route("/adherence", func(ar chi.Router) {
		ar.Get("/today", todayHandler(m))
		ar.Get("/weekly", weeklyHandler(m))
		ar.Get("/streak", streakHandler(m))
	})
}

type todayResponse struct {
	Scheduled     int    `json:"scheduled"`
	Taken         int    `json:"taken"`
	Pct           int    `json:"adherence_pct"`
	Encouragement string `json:"encouragement"`
	Tip           string `json:"tip"`
}

type weeklyResponse struct {
	Days       []DayStat `json:"days"` // más vieja → hoy
	AveragePct int       `json:"average_pct"`
}

type streakResponse struct {
	Days int `json:"days"`
}

func todayHandler(m Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scheduled, taken, pct := m.Today()
		writeJSON(w, http.StatusOK, todayResponse{
			Scheduled:     scheduled,
			Taken:         taken,
			Pct:           pct,
			Encouragement: EncouragementFor(pct),
			Tip:           TipFor(pct),
		})
	}
}

func weeklyHandler(m Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, avg := m.Weekly()
		writeJSON(w, http.StatusOK, weeklyResponse{Days: days, AveragePct: avg})
	}
}

func streakHandler(m Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, streakResponse{Days: m.Streak()})
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (medicines/adherence); ver el comentario gemelo en medicines.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
