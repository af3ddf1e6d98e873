package medicines

import (
	"errors"
	"testing"
	"time"
)

func clock(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.Local)
}

func TestStore_AddAssignsMonotonicIDs(t *testing.T) {
	s := NewStore()

	a, err := s.Add("Aspirin", "08:00", 15)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := s.Add("Ibuprofen", "12:00", 0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", a.ID, b.ID)
	}
	if a.Status != StatusUpcoming || a.TakenAt != nil {
		t.Fatalf("new dose should start upcoming without taken_at, got %+v", a)
	}

	// Borrar no libera ids: nunca se reutilizan en una corrida.
	s.Delete(b.ID)
	c, _ := s.Add("Vitamin D", "20:00", 5)
	if c.ID != 3 {
		t.Fatalf("id after delete = %d, want 3", c.ID)
	}
}

func TestStore_AddValidation(t *testing.T) {
	s := NewStore()

	if _, err := s.Add("", "08:00", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.Add("   ", "08:00", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.Add("Aspirin", "later", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad time: expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.Add("Aspirin", "08:00", -5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative remind: expected ErrInvalidInput, got %v", err)
	}
	if got := s.List(); len(got) != 0 {
		t.Fatalf("failed adds must not mutate the store, got %d entries", len(got))
	}
}

func TestStore_EditKeepsStatus(t *testing.T) {
	s := NewStore()
	d, _ := s.Add("Aspirin", "08:00", 15)
	if _, err := s.MarkTaken(d.ID, clock(9, 5)); err != nil {
		t.Fatalf("mark taken: %v", err)
	}

	got, err := s.Edit(d.ID, "Aspirin 500", "10:00", 30)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got.Name != "Aspirin 500" || got.At.String() != "10:00" || got.RemindMin != 30 {
		t.Fatalf("edit did not overwrite fields: %+v", got)
	}
	if got.Status != StatusTaken || got.TakenAt == nil {
		t.Fatalf("edit must leave status/taken_at untouched: %+v", got)
	}

	if _, err := s.Edit(999, "X", "08:00", 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("edit missing id: expected ErrNotFound, got %v", err)
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := NewStore()
	d, _ := s.Add("Aspirin", "08:00", 0)

	s.Delete(d.ID)
	s.Delete(d.ID) // segunda vez: no-op, no error
	s.Delete(42)   // ausente: no-op

	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty store, got %d entries", len(got))
	}
}

func TestResolve_StatusFlipsAtScheduledTime(t *testing.T) {
	// Escenario de referencia: Aspirin a las 08:00 con 15 min de aviso.
	s := NewStore()
	d, _ := s.Add("Aspirin", "08:00", 15)

	// 07:00 → upcoming
	s.ResolveAll(clock(7, 0))
	got, _ := s.Get(d.ID)
	if got.Status != StatusUpcoming {
		t.Fatalf("at 07:00 status = %s, want upcoming", got.Status)
	}

	// 09:00 sin marcar → missed (sin período de gracia)
	s.ResolveAll(clock(9, 0))
	got, _ = s.Get(d.ID)
	if got.Status != StatusMissed {
		t.Fatalf("at 09:00 status = %s, want missed", got.Status)
	}

	// Marcar a las 09:05 → taken, taken_at con precisión de minuto
	got, err := s.MarkTaken(d.ID, clock(9, 5).Add(42*time.Second))
	if err != nil {
		t.Fatalf("mark taken: %v", err)
	}
	if got.Status != StatusTaken || got.TakenAt == nil {
		t.Fatalf("after take: %+v", got)
	}
	if !got.TakenAt.Equal(clock(9, 5)) {
		t.Fatalf("taken_at = %v, want %v (minute precision)", got.TakenAt, clock(9, 5))
	}

	// Taken es pegajoso aunque el reloj siga avanzando.
	s.ResolveAll(clock(23, 0))
	got, _ = s.Get(d.ID)
	if got.Status != StatusTaken {
		t.Fatalf("taken must be sticky, got %s", got.Status)
	}
}

func TestResolve_ExactScheduledInstantIsMissed(t *testing.T) {
	d := Dose{Name: "Aspirin", At: TimeOfDay{8, 0}, Status: StatusUpcoming}

	if got := Resolve(d, clock(7, 59)); got != StatusUpcoming {
		t.Fatalf("one minute before: %s, want upcoming", got)
	}
	// now == target: ya no es "antes", flipea a missed en el instante exacto.
	if got := Resolve(d, clock(8, 0)); got != StatusMissed {
		t.Fatalf("at the exact instant: %s, want missed", got)
	}
}

func TestReminding_WindowOnly(t *testing.T) {
	d := Dose{Name: "Aspirin", At: TimeOfDay{8, 0}, RemindMin: 15, Status: StatusUpcoming}

	if Reminding(d, clock(7, 44)) {
		t.Fatal("before the window: should not be reminding")
	}
	if !Reminding(d, clock(7, 45)) {
		t.Fatal("window open: should be reminding")
	}
	if !Reminding(d, clock(7, 59)) {
		t.Fatal("one minute before: should be reminding")
	}
	// Pasada la hora ya está missed; el aviso no revive nada.
	if Reminding(d, clock(8, 0)) {
		t.Fatal("after the scheduled time: should not be reminding")
	}
}

func TestStore_TakenInvariant(t *testing.T) {
	// status == taken ⇔ taken_at != nil, en ambas direcciones,
	// incluso restaurando blobs inconsistentes.
	takenAt := clock(9, 0)
	restored := Restore([]Dose{
		{ID: 1, Name: "A", At: TimeOfDay{8, 0}, Status: StatusTaken},                   // taken sin timestamp
		{ID: 2, Name: "B", At: TimeOfDay{9, 0}, Status: StatusUpcoming, TakenAt: &takenAt}, // timestamp sin taken
	}, 0)

	restored.ResolveAll(clock(12, 0))
	for _, d := range restored.List() {
		if (d.Status == StatusTaken) != (d.TakenAt != nil) {
			t.Fatalf("invariant broken for %+v", d)
		}
	}

	if restored.NextID() != 3 {
		t.Fatalf("restore must clamp nextID above max id, got %d", restored.NextID())
	}
}

func TestStore_MarkTakenIsSticky(t *testing.T) {
	s := NewStore()
	d, _ := s.Add("Aspirin", "08:00", 0)

	first, _ := s.MarkTaken(d.ID, clock(9, 5))
	second, _ := s.MarkTaken(d.ID, clock(10, 30))
	if !second.TakenAt.Equal(*first.TakenAt) {
		t.Fatalf("second take must keep the first taken_at: %v vs %v", second.TakenAt, first.TakenAt)
	}

	if _, err := s.MarkTaken(77, clock(9, 5)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("take missing id: expected ErrNotFound, got %v", err)
	}
}
