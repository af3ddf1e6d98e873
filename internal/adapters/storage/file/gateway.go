package file

import (
	"context"
	"encoding/json"
	"os"

	"medtimer/internal/platform/logger"
	"medtimer/internal/ports/storage"

	"github.com/google/uuid"
)

const DefaultPath = "medtimer_data.json"

// Gateway persiste el State como un único blob JSON en disco.
type Gateway struct {
	path string
	log  *logger.Logger
}

func NewGateway(path string, log *logger.Logger) *Gateway {
	if path == "" {
		path = DefaultPath
	}
	return &Gateway{path: path, log: log}
}

// Load lee el blob. Archivo ausente o ilegible ⇒ defaults vacíos, nunca error
// fatal: un blob roto no puede voltear la sesión.
func (g *Gateway) Load(ctx context.Context) (storage.State, error) {
	b, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return storage.EmptyState(), nil
		}
		g.log.Warn("state file unreadable, starting empty", map[string]any{
			"path": g.path, "err": err.Error(),
		})
		return storage.EmptyState(), nil
	}

	var st storage.State
	if err := json.Unmarshal(b, &st); err != nil {
		g.log.Warn("state file corrupt, starting empty", map[string]any{
			"path": g.path, "err": err.Error(),
		})
		return storage.EmptyState(), nil
	}
	return st, nil
}

// Save escribe el blob completo (write temp + rename para no dejar
// un archivo a medias si el proceso muere a mitad de escritura).
func (g *Gateway) Save(ctx context.Context, st storage.State) error {
	st.Revision = uuid.NewString()

	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, g.path)
}
