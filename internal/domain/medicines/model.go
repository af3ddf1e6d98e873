package medicines

import "time"

// Status define los estados posibles de una dosis.
// @Enum upcoming, missed, taken
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusMissed   Status = "missed"
	StatusTaken    Status = "taken"
)

// Dose representa una toma programada para hoy.
// Invariante: Status == taken ⇔ TakenAt != nil.
type Dose struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	At        TimeOfDay `json:"time"`
	RemindMin int       `json:"remind_min"` // minutos de antelación del aviso; no afecta el status

	Status  Status     `json:"status"`
	TakenAt *time.Time `json:"taken_at,omitempty"`
}

// Resolve calcula el status de una dosis contra el reloj.
// Función pura: taken es pegajoso; si no, upcoming hasta que pasa
// la hora programada de hoy y missed después, sin período de gracia.
// RemindMin solo abre la ventana de aviso (ver Reminding), nunca cambia el status.
func Resolve(d Dose, now time.Time) Status {
	if d.Status == StatusTaken {
		return StatusTaken
	}
	if now.Before(d.At.On(now)) {
		return StatusUpcoming
	}
	return StatusMissed
}

// Reminding indica si la dosis está dentro de su ventana de aviso:
// [hora - remind_min, hora) y todavía upcoming.
func Reminding(d Dose, now time.Time) bool {
	if Resolve(d, now) != StatusUpcoming {
		return false
	}
	target := d.At.On(now)
	open := target.Add(-time.Duration(d.RemindMin) * time.Minute)
	return !now.Before(open)
}
