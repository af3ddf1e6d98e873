package storage

import (
	"context"

	"medtimer/internal/domain/adherence"
	"medtimer/internal/domain/medicines"
)

// State es el blob completo de la sesión: agenda + historial + contador de ids.
// El gateway lo trata como opaco; la memoria del proceso es la fuente de
// verdad y lo persistido es solo un espejo save/restore.
type State struct {
	Entries []medicines.Dose               `json:"meds"`
	History map[string]adherence.DayRecord `json:"history"`
	NextID  int64                          `json:"id_counter"`

	UserName string `json:"user_name,omitempty"`

	// Revision identifica cada save (uuid); solo trazabilidad, sin semántica.
	Revision string `json:"revision,omitempty"`
}

func EmptyState() State {
	return State{
		Entries: []medicines.Dose{},
		History: map[string]adherence.DayRecord{},
		NextID:  1,
	}
}

// Gateway es el contrato de persistencia del núcleo.
//   - Load devuelve defaults vacíos si no hay estado previo o el blob está
//     corrupto: la corrupción nunca voltea el núcleo.
//   - Save es best-effort: el caller loguea el error y sigue.
type Gateway interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
}
