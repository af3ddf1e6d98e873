// Package export renderiza la agenda de hoy y la tabla semanal en CSV y PDF.
// Consumidor read-only de la sesión: jamás muta agenda ni ledger.
package export

import (
	"sort"
	"strconv"
	"time"

	"medtimer/internal/domain/adherence"
	"medtimer/internal/domain/medicines"
)

// Source es lo que los exportadores necesitan de la sesión.
type Source interface {
	ListMedicines() ([]medicines.Dose, time.Time)
	Weekly() ([]adherence.DayStat, int)
	UserName() string
}

const takenAtLayout = "2006-01-02T15:04"

// byTime devuelve la agenda ordenada por hora programada asc
// (el orden natural de lectura de un plan del día).
func byTime(items []medicines.Dose) []medicines.Dose {
	out := make([]medicines.Dose, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].At, out[j].At
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		return a.Minute < b.Minute
	})
	return out
}

func doseRow(d medicines.Dose) []string {
	takenAt := ""
	if d.TakenAt != nil {
		takenAt = d.TakenAt.Format(takenAtLayout)
	}
	return []string{
		strconv.FormatInt(d.ID, 10),
		d.Name,
		d.At.String(),
		strconv.Itoa(d.RemindMin),
		string(d.Status),
		takenAt,
	}
}

func dayRow(st adherence.DayStat) []string {
	return []string{
		st.Date,
		strconv.Itoa(st.Scheduled),
		strconv.Itoa(st.Taken),
		strconv.Itoa(st.Pct),
	}
}
