package adherence

import "time"

// dateLayout es la clave de calendario del ledger ("YYYY-MM-DD", hora local).
const dateLayout = "2006-01-02"

// DayRecord es la foto de un día: cuántas dosis había y cuántas se tomaron.
// Invariante: 0 <= Taken <= Scheduled.
type DayRecord struct {
	Date      string `json:"date"`
	Scheduled int    `json:"scheduled"`
	Taken     int    `json:"taken"`
}

// Ledger mapea fecha → DayRecord. Crece sin límite (no hay poda en scope);
// solo lookup por clave, el orden de inserción no importa.
type Ledger map[string]DayRecord

func NewLedger() Ledger {
	return make(Ledger)
}

// Restore sanea un ledger persistido: clava claves y clampa contadores
// para que el invariante del DayRecord se sostenga aunque el blob venga raro.
func Restore(in map[string]DayRecord) Ledger {
	l := make(Ledger, len(in))
	for date, rec := range in {
		if rec.Scheduled < 0 {
			rec.Scheduled = 0
		}
		if rec.Taken < 0 {
			rec.Taken = 0
		}
		if rec.Taken > rec.Scheduled {
			rec.Taken = rec.Scheduled
		}
		rec.Date = date
		l[date] = rec
	}
	return l
}

// DateKey formatea un instante como clave de calendario local.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// Upsert sobreescribe la foto del día. El snapshot más reciente gana.
func (l Ledger) Upsert(date string, scheduled, taken int) {
	l[date] = DayRecord{Date: date, Scheduled: scheduled, Taken: taken}
}

// Get devuelve la foto del día o el default {0,0}.
// Las fechas ausentes NO se materializan en el ledger, solo en la respuesta.
func (l Ledger) Get(date string) DayRecord {
	if rec, ok := l[date]; ok {
		return rec
	}
	return DayRecord{Date: date}
}
