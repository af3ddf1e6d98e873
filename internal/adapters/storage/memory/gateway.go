package memory

import (
	"context"
	"sync"

	"medtimer/internal/domain/adherence"
	"medtimer/internal/domain/medicines"
	"medtimer/internal/ports/storage"

	"github.com/google/uuid"
)

// Gateway guarda el State en memoria. Sirve para dev y tests:
// mismo contrato que file/postgres, cero I/O.
type Gateway struct {
	mu sync.RWMutex
	st storage.State
	ok bool // hubo al menos un Save
}

func NewGateway() *Gateway {
	return &Gateway{}
}

func (g *Gateway) Load(ctx context.Context) (storage.State, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.ok {
		return storage.EmptyState(), nil
	}
	return copyState(g.st), nil
}

func (g *Gateway) Save(ctx context.Context, st storage.State) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	st.Revision = uuid.NewString()
	g.st = copyState(st)
	g.ok = true
	return nil
}

// copyState clona slices y mapas para que el caller no comparta memoria
// con lo guardado.
func copyState(st storage.State) storage.State {
	out := st
	out.Entries = make([]medicines.Dose, len(st.Entries))
	copy(out.Entries, st.Entries)
	out.History = make(map[string]adherence.DayRecord, len(st.History))
	for k, v := range st.History {
		out.History[k] = v
	}
	return out
}
