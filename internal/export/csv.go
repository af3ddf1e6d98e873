package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

var todayHeader = []string{"id", "name", "time", "remind_min", "status", "taken_at"}

// WriteTodayCSV escribe la agenda de hoy, ordenada por hora.
func WriteTodayCSV(w io.Writer, src Source) error {
	items, _ := src.ListMedicines()

	cw := csv.NewWriter(w)
	if err := cw.Write(todayHeader); err != nil {
		return err
	}
	for _, d := range byTime(items) {
		if err := cw.Write(doseRow(d)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var weeklyHeader = []string{"date", "scheduled", "taken", "adherence_pct"}

// WriteWeeklyCSV escribe la tabla semanal (más vieja → hoy) y una fila
// final con el promedio.
func WriteWeeklyCSV(w io.Writer, src Source) error {
	days, avg := src.Weekly()

	cw := csv.NewWriter(w)
	if err := cw.Write(weeklyHeader); err != nil {
		return err
	}
	for _, st := range days {
		if err := cw.Write(dayRow(st)); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"average", "", "", strconv.Itoa(avg)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
