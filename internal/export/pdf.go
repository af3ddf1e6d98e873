package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// WriteTodayPDF escribe la agenda de hoy como PDF de una página,
// ordenada por hora (mismo formato que el CSV, versión imprimible).
func WriteTodayPDF(w io.Writer, src Source) error {
	items, _ := src.ListMedicines()

	pdf := newDoc(src, "MedTimer - Today's Schedule")

	if len(items) == 0 {
		pdf.CellFormat(190, 8, "No medicines added.", "", 1, "L", false, 0, "")
		return pdf.Output(w)
	}

	for _, d := range byTime(items) {
		line := fmt.Sprintf("%s at %s -> %s", d.Name, d.At.String(), d.Status)
		if d.TakenAt != nil {
			line += " (" + d.TakenAt.Format(takenAtLayout) + ")"
		}
		pdf.CellFormat(190, 8, line, "", 1, "L", false, 0, "")
	}
	return pdf.Output(w)
}

// WriteWeeklyPDF escribe la tabla semanal con el promedio al pie.
func WriteWeeklyPDF(w io.Writer, src Source) error {
	days, avg := src.Weekly()

	pdf := newDoc(src, "MedTimer - Weekly Adherence")

	pdf.SetFont("Arial", "B", 11)
	widths := []float64{50, 40, 40, 40}
	for i, h := range weeklyHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, st := range days {
		for i, cell := range dayRow(st) {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.CellFormat(190, 8, fmt.Sprintf("Weekly average: %d%%", avg), "", 1, "L", false, 0, "")
	return pdf.Output(w)
}

func newDoc(src Source, title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 10, title, "", 1, "C", false, 0, "")

	if name := strings.TrimSpace(src.UserName()); name != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(190, 6, "for "+name, "", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 11)
	return pdf
}
