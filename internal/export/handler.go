package export

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, src Source) {
	r.Route("/export", func(er chi.Router) {
		er.Get("/today.csv", csvHandler(src, "medtimer_today.csv", WriteTodayCSV))
		er.Get("/weekly.csv", csvHandler(src, "medtimer_weekly.csv", WriteWeeklyCSV))
		er.Get("/today.pdf", pdfHandler(src, "medtimer_today.pdf", WriteTodayPDF))
		er.Get("/weekly.pdf", pdfHandler(src, "medtimer_weekly.pdf", WriteWeeklyPDF))
	})
}

type writeFunc func(w io.Writer, src Source) error

func csvHandler(src Source, filename string, write writeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := write(w, src); err != nil {
			// headers ya salieron; no hay mucho más que hacer acá
			return
		}
	}
}

func pdfHandler(src Source, filename string, write writeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// El PDF se arma en memoria primero: si falla, todavía podemos
		// responder 500 limpio.
		var buf bytes.Buffer
		if err := write(&buf, src); err != nil {
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		_, _ = w.Write(buf.Bytes())
	}
}
