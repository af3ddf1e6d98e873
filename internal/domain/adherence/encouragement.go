package adherence

// Mensajes de ánimo según el porcentaje del día.
// Texto de producto, no métricas: vive acá para que el handler no
// tenga strings sueltos.

func EncouragementFor(pct int) string {
	switch {
	case pct >= 90:
		return "Fantastic consistency! You're building a winning streak."
	case pct >= 80:
		return "Great job! Your routine is strong."
	case pct >= 70:
		return "Good effort - keep nurturing your health."
	default:
		return "Every step counts. Tomorrow is a fresh chance."
	}
}

var tipsGood = []string{
	"Consistency builds confidence. Keep it going!",
	"Your routine is your superpower.",
	"Great job - your future self is grateful.",
}

var tipsNeutral = []string{
	"You're on track. A small step right now helps.",
	"Take a breath and check what's next.",
	"Even one dose taken is progress.",
}

var tipsMissed = []string{
	"It happens. Reset and take the next dose when safe.",
	"No worries - refocus on the next scheduled dose.",
	"Forward is forward. You've got this.",
}

// TipFor elige un tip estable para el porcentaje dado
// (mismo pct ⇒ mismo tip, sin aleatoriedad).
func TipFor(pct int) string {
	if pct < 0 {
		pct = 0
	}
	switch {
	case pct >= 80:
		return tipsGood[pct%len(tipsGood)]
	case pct >= 30:
		return tipsNeutral[pct%len(tipsNeutral)]
	default:
		return tipsMissed[pct%len(tipsMissed)]
	}
}
