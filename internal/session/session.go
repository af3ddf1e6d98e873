package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"medtimer/internal/domain/adherence"
	"medtimer/internal/domain/medicines"
	"medtimer/internal/platform/logger"
	"medtimer/internal/ports/storage"
)

// Session es el estado vivo de la única sesión lógica: agenda + ledger +
// gateway. Nada de globals: se pasa explícita a handlers y exportadores.
//
// Un solo mutex serializa todas las operaciones; cada request corre
// completo contra un estado consistente, como pide el modelo
// single-threaded del dominio.
//
// Política de snapshot: SOLO en mutaciones (add/edit/delete/mark-taken).
// Las lecturas recalculan statuses en memoria pero nunca escriben el
// ledger: un día ya "cerrado" no se reescribe por mirar las métricas.
type Session struct {
	mu sync.Mutex

	store    *medicines.Store
	ledger   adherence.Ledger
	userName string

	gw  storage.Gateway
	log *logger.Logger
	now func() time.Time
}

// New carga el estado persistido (o defaults vacíos) y arma la sesión.
func New(ctx context.Context, gw storage.Gateway, log *logger.Logger) *Session {
	st, err := gw.Load(ctx)
	if err != nil {
		// El contrato del gateway ya degrada a vacío, esto es cinturón extra.
		log.Warn("state load failed, starting empty", map[string]any{"err": err.Error()})
		st = storage.EmptyState()
	}

	return &Session{
		store:    medicines.Restore(st.Entries, st.NextID),
		ledger:   adherence.Restore(st.History),
		userName: st.UserName,
		gw:       gw,
		log:      log,
		now:      time.Now,
	}
}

// AddMedicine agrega una dosis, recalcula statuses, fotografía el día
// y persiste best-effort.
func (s *Session) AddMedicine(ctx context.Context, name, timeStr string, remindMin int) (medicines.Dose, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.store.Add(name, timeStr, remindMin)
	if err != nil {
		return medicines.Dose{}, err
	}

	now := s.now()
	s.store.ResolveAll(now)
	s.snapshot(now)
	s.save(ctx)

	d, _ = s.store.Get(d.ID)
	return d, nil
}

func (s *Session) UpdateMedicine(ctx context.Context, id int64, in medicines.UpdateInput) (medicines.Dose, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.store.Get(id)
	if !ok {
		return medicines.Dose{}, medicines.ErrNotFound
	}

	name := current.Name
	if in.Name != nil {
		name = *in.Name
	}
	timeStr := current.At.String()
	if in.Time != nil {
		timeStr = *in.Time
	}
	remind := current.RemindMin
	if in.RemindMin != nil {
		remind = *in.RemindMin
	}

	d, err := s.store.Edit(id, name, timeStr, remind)
	if err != nil {
		return medicines.Dose{}, err
	}

	now := s.now()
	s.store.ResolveAll(now)
	s.snapshot(now)
	s.save(ctx)

	d, _ = s.store.Get(d.ID)
	return d, nil
}

// DeleteMedicine es idempotente: borrar un id ausente no es error.
func (s *Session) DeleteMedicine(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Delete(id)

	now := s.now()
	s.store.ResolveAll(now)
	s.snapshot(now)
	s.save(ctx)
}

func (s *Session) MarkTaken(ctx context.Context, id int64) (medicines.Dose, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	d, err := s.store.MarkTaken(id, now)
	if err != nil {
		return medicines.Dose{}, err
	}

	s.store.ResolveAll(now)
	s.snapshot(now)
	s.save(ctx)

	return d, nil
}

// ListMedicines devuelve la agenda en orden de inserción con statuses
// frescos. Lectura pura respecto del ledger.
func (s *Session) ListMedicines() ([]medicines.Dose, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.store.ResolveAll(now)
	return s.store.List(), now
}

// Today devuelve (programadas, tomadas, pct) del día en curso, en vivo
// desde la agenda (no desde el ledger).
func (s *Session) Today() (scheduled, taken, pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.ResolveAll(s.now())
	scheduled, taken = s.store.Counts()
	return scheduled, taken, adherence.Pct(taken, scheduled)
}

// Weekly devuelve las 7 filas (vieja → hoy) y el promedio entero.
func (s *Session) Weekly() ([]adherence.DayStat, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return adherence.Weekly(s.ledger, s.now())
}

// Streak devuelve la racha actual de días al 100%, hoy incluido.
func (s *Session) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return adherence.Streak(s.ledger, s.now())
}

func (s *Session) UserName() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.userName
}

// SetUserName guarda el nombre a mostrar: un saludo, no una identidad.
// La autenticación está explícitamente fuera de alcance.
func (s *Session) SetUserName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return medicines.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.userName = name
	s.save(ctx)
	return nil
}

// snapshot sobreescribe la foto de hoy en el ledger. Caller sostiene el lock.
func (s *Session) snapshot(now time.Time) {
	scheduled, taken := s.store.Counts()
	s.ledger.Upsert(adherence.DateKey(now), scheduled, taken)
}

// save persiste best-effort: un fallo se loguea y no se propaga; la
// memoria sigue siendo la fuente de verdad aunque el espejo quede viejo.
// Caller sostiene el lock.
func (s *Session) save(ctx context.Context) {
	st := storage.State{
		Entries:  s.store.List(),
		History:  s.ledger,
		NextID:   s.store.NextID(),
		UserName: s.userName,
	}
	if err := s.gw.Save(ctx, st); err != nil {
		s.log.Error("state save failed", map[string]any{"err": err.Error()})
	}
}
