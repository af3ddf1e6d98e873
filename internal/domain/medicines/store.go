package medicines

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Store es la agenda de dosis del día: slice ordenado por inserción
// más el contador de ids. No es thread-safe; la sesión serializa el acceso.
type Store struct {
	entries []Dose
	nextID  int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Restore reconstruye la agenda desde un estado persistido.
// Normaliza entradas inconsistentes (status taken sin taken_at y viceversa)
// y asegura que nextID quede por encima de todo id ya usado: los ids
// nunca se reutilizan dentro de una corrida.
func Restore(entries []Dose, nextID int64) *Store {
	s := &Store{
		entries: make([]Dose, 0, len(entries)),
		nextID:  nextID,
	}
	if s.nextID < 1 {
		s.nextID = 1
	}

	for _, d := range entries {
		if d.TakenAt != nil {
			d.Status = StatusTaken
		} else if d.Status == StatusTaken {
			// taken sin timestamp: blob inconsistente, se recalcula desde cero
			d.Status = StatusUpcoming
		}
		if d.RemindMin < 0 {
			d.RemindMin = 0
		}
		if d.ID >= s.nextID {
			s.nextID = d.ID + 1
		}
		s.entries = append(s.entries, d)
	}
	return s
}

// Add valida, asigna id monotónico y agrega al final.
func (s *Store) Add(name, timeStr string, remindMin int) (Dose, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Dose{}, ErrInvalidInput
	}
	at, err := ParseTimeOfDay(timeStr)
	if err != nil {
		return Dose{}, err
	}
	if remindMin < 0 {
		return Dose{}, ErrInvalidInput
	}

	d := Dose{
		ID:        s.nextID,
		Name:      name,
		At:        at,
		RemindMin: remindMin,
		Status:    StatusUpcoming,
		TakenAt:   nil,
	}
	s.nextID++
	s.entries = append(s.entries, d)
	return d, nil
}

// Edit reemplaza nombre/hora/aviso in place. Status y TakenAt no se tocan:
// el resolver los recalcula aparte.
func (s *Store) Edit(id int64, name, timeStr string, remindMin int) (Dose, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Dose{}, ErrInvalidInput
	}
	at, err := ParseTimeOfDay(timeStr)
	if err != nil {
		return Dose{}, err
	}
	if remindMin < 0 {
		return Dose{}, ErrInvalidInput
	}

	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		s.entries[i].Name = name
		s.entries[i].At = at
		s.entries[i].RemindMin = remindMin
		return s.entries[i], nil
	}
	return Dose{}, ErrNotFound
}

// Delete es idempotente: borrar un id ausente no es error.
func (s *Store) Delete(id int64) {
	out := s.entries[:0]
	for _, d := range s.entries {
		if d.ID != id {
			out = append(out, d)
		}
	}
	s.entries = out
}

func (s *Store) Get(id int64) (Dose, bool) {
	for _, d := range s.entries {
		if d.ID == id {
			return d, true
		}
	}
	return Dose{}, false
}

// MarkTaken deja la dosis en taken con timestamp a precisión de minuto.
// Taken es pegajoso: marcar dos veces conserva el primer taken_at.
func (s *Store) MarkTaken(id int64, now time.Time) (Dose, error) {
	for i := range s.entries {
		if s.entries[i].ID != id {
			continue
		}
		if s.entries[i].Status == StatusTaken {
			return s.entries[i], nil
		}
		ts := now.Truncate(time.Minute)
		s.entries[i].Status = StatusTaken
		s.entries[i].TakenAt = &ts
		return s.entries[i], nil
	}
	return Dose{}, ErrNotFound
}

// ResolveAll recalcula el status de todas las entradas contra el reloj.
// Idempotente; se corre en cada mutación y en cada lectura.
func (s *Store) ResolveAll(now time.Time) {
	for i := range s.entries {
		s.entries[i].Status = Resolve(s.entries[i], now)
	}
}

// List devuelve una copia en orden de inserción.
func (s *Store) List() []Dose {
	out := make([]Dose, len(s.entries))
	copy(out, s.entries)
	return out
}

// Counts devuelve (programadas, tomadas) del estado actual.
func (s *Store) Counts() (scheduled, taken int) {
	scheduled = len(s.entries)
	for _, d := range s.entries {
		if d.Status == StatusTaken {
			taken++
		}
	}
	return scheduled, taken
}

func (s *Store) NextID() int64 { return s.nextID }
