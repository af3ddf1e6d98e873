package adherence

import "time"

// streakWindow limita cuántos días hacia atrás camina el cálculo de racha.
const streakWindow = 30

// DayStat es una fila de la tabla semanal: la foto del día más su porcentaje.
type DayStat struct {
	DayRecord
	Pct int `json:"adherence_pct"`
}

// Pct calcula el porcentaje entero (truncado hacia cero) de adherencia.
// Sin dosis programadas el porcentaje es 0, no 100.
func Pct(taken, scheduled int) int {
	if scheduled <= 0 {
		return 0
	}
	return 100 * taken / scheduled
}

// Weekly arma las últimas 7 filas (más vieja → hoy) y el promedio entero.
// Los días sin registro entran como {0,0,0%}: no bajan el denominador
// de 7 días, solo aportan 0 al promedio.
func Weekly(l Ledger, today time.Time) ([]DayStat, int) {
	rows := make([]DayStat, 0, 7)
	sum := 0
	for i := 6; i >= 0; i-- {
		rec := l.Get(DateKey(today.AddDate(0, 0, -i)))
		pct := Pct(rec.Taken, rec.Scheduled)
		rows = append(rows, DayStat{DayRecord: rec, Pct: pct})
		sum += pct
	}
	return rows, sum / 7
}

// Streak cuenta días consecutivos al 100% caminando hacia atrás desde hoy,
// hoy incluido como día cero: el progreso parcial de hoy corta la racha
// antes de que el día termine. Eso es deliberado, premia completar el día.
// Un día suma solo si su registro existe, tiene dosis programadas y
// taken >= scheduled; la caminata para en el primer día que falla.
func Streak(l Ledger, today time.Time) int {
	streak := 0
	for i := 0; i < streakWindow; i++ {
		rec, ok := l[DateKey(today.AddDate(0, 0, -i))]
		if !ok || rec.Scheduled == 0 || rec.Taken < rec.Scheduled {
			break
		}
		streak++
	}
	return streak
}
