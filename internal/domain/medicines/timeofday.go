package medicines

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay es una hora del día sin fecha ni zona.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// timeLayouts es la lista cerrada de formatos aceptados.
// Todo lo que no matchee aquí es ErrInvalidInput: nunca se
// "adivina" un default silencioso.
var timeLayouts = []string{
	"15:04",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// ParseTimeOfDay es la única frontera de parseo de horas del sistema.
// Acepta formatos humanos comunes ("8:00", "08:00", "8:00 am", "08:00 PM")
// y rechaza el resto.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return TimeOfDay{}, fmt.Errorf("%w: empty time", ErrInvalidInput)
	}

	// AM/PM en mayúsculas para que matcheen los layouts de time.Parse.
	norm := strings.ToUpper(raw)

	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, norm)
		if err != nil {
			continue
		}
		return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
	}
	return TimeOfDay{}, fmt.Errorf("%w: unrecognized time %q", ErrInvalidInput, raw)
}

// On combina la hora con la fecha de ref, en la zona de ref.
func (td TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), td.Hour, td.Minute, 0, 0, ref.Location())
}

func (td TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", td.Hour, td.Minute)
}

// MarshalJSON serializa como "HH:MM" (el formato canónico del blob).
func (td TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + td.String() + `"`), nil
}

func (td *TimeOfDay) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*td = parsed
	return nil
}
