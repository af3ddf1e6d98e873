package medicines

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// takenAtLayout: ISO con precisión de minuto, igual que el taken_at histórico.
const takenAtLayout = "2006-01-02T15:04"

// UpdateInput usa punteros para PATCH real: nil = no tocar ese campo.
type UpdateInput struct {
	Name      *string
	Time      *string
	RemindMin *int
}

// Agenda es lo que estos handlers necesitan de la sesión.
type Agenda interface {
	AddMedicine(ctx context.Context, name, timeStr string, remindMin int) (Dose, error)
	UpdateMedicine(ctx context.Context, id int64, in UpdateInput) (Dose, error)
	DeleteMedicine(ctx context.Context, id int64)
	MarkTaken(ctx context.Context, id int64) (Dose, error)
	ListMedicines() ([]Dose, time.Time)
}

func RegisterRoutes(r chi.Router, agenda Agenda) {
	r.Route("/medicines", func(mr chi.Router) {
		mr.Post("/", addHandler(agenda))
		mr.Get("/", listHandler(agenda))

		mr.Patch("/{doseID}", updateHandler(agenda))
		mr.Delete("/{doseID}", deleteHandler(agenda))

		mr.Post("/{doseID}/take", takeHandler(agenda))
	})
}

type addRequest struct {
	Name      string `json:"name"`
	Time      string `json:"time"` // "HH:MM" o variantes con AM/PM
	RemindMin int    `json:"remind_min"`
}

type updateRequest struct {
	Name      *string `json:"name"`
	Time      *string `json:"time"`
	RemindMin *int    `json:"remind_min"`
}

type doseResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	RemindMin int    `json:"remind_min"`
	Status    string `json:"status"`
	TakenAt   string `json:"taken_at,omitempty"`
	Reminding bool   `json:"reminding"`
}

func addHandler(agenda Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := agenda.AddMedicine(r.Context(), req.Name, req.Time, req.RemindMin)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toDoseResponse(d, time.Now()))
	}
}

func listHandler(agenda Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, now := agenda.ListMedicines()

		out := make([]doseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDoseResponse(d, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateHandler(agenda Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := doseID(r)
		if !ok {
			http.Error(w, "invalid dose id", http.StatusBadRequest)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := agenda.UpdateMedicine(r.Context(), id, UpdateInput{
			Name:      req.Name,
			Time:      req.Time,
			RemindMin: req.RemindMin,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "medicine not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toDoseResponse(d, time.Now()))
	}
}

func deleteHandler(agenda Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := doseID(r)
		if !ok {
			http.Error(w, "invalid dose id", http.StatusBadRequest)
			return
		}

		// Borrado idempotente: ausente también es 204.
		agenda.DeleteMedicine(r.Context(), id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func takeHandler(agenda Agenda) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := doseID(r)
		if !ok {
			http.Error(w, "invalid dose id", http.StatusBadRequest)
			return
		}

		d, err := agenda.MarkTaken(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "medicine not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toDoseResponse(d, time.Now()))
	}
}

func doseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "doseID"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func toDoseResponse(d Dose, now time.Time) doseResponse {
	resp := doseResponse{
		ID:        d.ID,
		Name:      d.Name,
		Time:      d.At.String(),
		RemindMin: d.RemindMin,
		Status:    string(d.Status),
		Reminding: Reminding(d, now),
	}
	if d.TakenAt != nil {
		resp.TakenAt = d.TakenAt.Format(takenAtLayout)
	}
	return resp
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (medicines/adherence); si aparece un tercer uso, recién ahí conviene
// extraerlo a un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
