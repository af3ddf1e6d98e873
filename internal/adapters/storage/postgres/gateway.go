package postgres

import (
	"context"
	"database/sql"
	"time"

	"medtimer/internal/domain/adherence"
	"medtimer/internal/domain/medicines"
	"medtimer/internal/platform/logger"
	"medtimer/internal/ports/storage"

	"github.com/google/uuid"
)

// Gateway persiste el State en Postgres. Es un espejo del blob, no un
// modelo relacional "vivo": cada Save reemplaza la foto completa en una
// transacción, igual que reescribir el archivo JSON.
type Gateway struct {
	db  *sql.DB
	log *logger.Logger
}

func NewGateway(db *sql.DB, log *logger.Logger) *Gateway {
	return &Gateway{db: db, log: log}
}

// EnsureSchema crea las tablas si no existen. No hay tooling de
// migraciones en el repo; con tres tablas alcanza con esto.
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	_, err := g.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session_state (
			id        int PRIMARY KEY DEFAULT 1,
			next_id   bigint NOT NULL,
			user_name text NOT NULL DEFAULT '',
			revision  text NOT NULL,
			saved_at  timestamptz NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS doses (
			id         bigint PRIMARY KEY,
			position   int NOT NULL,
			name       text NOT NULL,
			at_time    text NOT NULL,
			remind_min int NOT NULL,
			status     text NOT NULL,
			taken_at   timestamptz NULL
		);
		CREATE TABLE IF NOT EXISTS day_records (
			date      text PRIMARY KEY,
			scheduled int NOT NULL,
			taken     int NOT NULL
		);
	`)
	return err
}

// Load arma el State desde las tres tablas. Cualquier error (conexión,
// fila corrupta) degrada a defaults vacíos con warning: mismo contrato
// que el gateway de archivo.
func (g *Gateway) Load(ctx context.Context) (storage.State, error) {
	st := storage.EmptyState()

	row := g.db.QueryRowContext(ctx, `
		SELECT next_id, user_name, revision
		FROM session_state
		WHERE id = 1
	`)
	if err := row.Scan(&st.NextID, &st.UserName, &st.Revision); err != nil {
		if err == sql.ErrNoRows {
			return storage.EmptyState(), nil
		}
		g.log.Warn("state load failed, starting empty", map[string]any{"err": err.Error()})
		return storage.EmptyState(), nil
	}

	entries, err := g.loadDoses(ctx)
	if err != nil {
		g.log.Warn("doses load failed, starting empty", map[string]any{"err": err.Error()})
		return storage.EmptyState(), nil
	}
	st.Entries = entries

	history, err := g.loadHistory(ctx)
	if err != nil {
		g.log.Warn("history load failed, starting empty", map[string]any{"err": err.Error()})
		return storage.EmptyState(), nil
	}
	st.History = history

	return st, nil
}

func (g *Gateway) loadDoses(ctx context.Context) ([]medicines.Dose, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, name, at_time, remind_min, status, taken_at
		FROM doses
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Dose, 0)
	for rows.Next() {
		var d medicines.Dose
		var atTime string
		var takenAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.Name, &atTime, &d.RemindMin, &d.Status, &takenAt); err != nil {
			return nil, err
		}
		at, err := medicines.ParseTimeOfDay(atTime)
		if err != nil {
			return nil, err
		}
		d.At = at
		if takenAt.Valid {
			t := takenAt.Time
			d.TakenAt = &t
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (g *Gateway) loadHistory(ctx context.Context) (map[string]adherence.DayRecord, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT date, scheduled, taken
		FROM day_records
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]adherence.DayRecord)
	for rows.Next() {
		var rec adherence.DayRecord
		if err := rows.Scan(&rec.Date, &rec.Scheduled, &rec.Taken); err != nil {
			return nil, err
		}
		out[rec.Date] = rec
	}
	return out, rows.Err()
}

// Save reemplaza la foto completa en una transacción.
func (g *Gateway) Save(ctx context.Context, st storage.State) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session_state (id, next_id, user_name, revision, saved_at)
		VALUES (1, $1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET next_id = EXCLUDED.next_id,
		    user_name = EXCLUDED.user_name,
		    revision = EXCLUDED.revision,
		    saved_at = now()
	`, st.NextID, st.UserName, uuid.NewString())
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM doses`); err != nil {
		return err
	}
	for i, d := range st.Entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO doses (id, position, name, at_time, remind_min, status, taken_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			d.ID,
			i,
			d.Name,
			d.At.String(),
			d.RemindMin,
			string(d.Status),
			toNullTime(d.TakenAt),
		)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM day_records`); err != nil {
		return err
	}
	for _, rec := range st.History {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO day_records (date, scheduled, taken)
			VALUES ($1, $2, $3)
		`, rec.Date, rec.Scheduled, rec.Taken)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// taken_at es nullable, lo pasamos como NullTime para simplificar
func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
