package plan

// SuccessDefinition states when the agent considers a project finished.
const SuccessDefinition = "Das Projekt gilt als abgeschlossen, wenn alle geplanten Schritte ausgeführt, dokumentiert und die definierten Erfolgskriterien überprüft sind."

var phases = []Phase{
	{
		Title:       "Phase 1 · Klärung & Rahmen",
		Description: "Der Agent versteht genau, was du willst, und definiert den Rahmen.",
		Steps: []string{
			"Zerlege die Anfrage in Ziel, Zeitrahmen und beteiligte Personen.",
			"Identifiziere Risiken, Abhängigkeiten und notwendige Ressourcen.",
			"Formuliere eine klare, überprüfbare Zieldefinition.",
		},
	},
	{
		Title:       "Phase 2 · Struktur & Plan",
		Description: "Der Agent strukturiert das Projekt in präzise Teilaufgaben.",
		Steps: []string{
			"Erstelle eine To-do-Liste mit sinnvollen Clustern (Analyse, Planung, Umsetzung, Kontrolle).",
			"Ordne Aufgaben in logische Reihenfolge.",
			"Definiere für jeden Block: Ergebnis, Deadline, Verantwortung.",
		},
	},
	{
		Title:       "Phase 3 · Simulation der Ausführung",
		Description: "In dieser Version simuliert der Agent, welche Schritte er ausführen würde.",
		Steps: []string{
			"Gehe die To-do-Liste gedanklich durch und markiere Aufgaben als erledigt.",
			"Identifiziere typische Probleme, Blockaden oder Engpässe.",
			"Notiere, welche Informationen, Zugänge oder Tools ein echter Agent ansteuern würde.",
		},
	},
	{
		Title:       "Phase 4 · Abschluss & Reflexion",
		Description: "Der Agent beendet das Projekt bewusst.",
		Steps: []string{
			"Fasse Ergebnisse, Entscheidungen und Learnings zusammen.",
			"Liste offene Punkte auf, die noch menschliche Entscheidung brauchen.",
			"Setze einen klaren Abschluss: „Projekt abgeschlossen“ (Datum, Check gegen Ziel).",
		},
	},
}

var completionCriteria = []string{
	"Das ursprüngliche Ziel ist beantwortet oder erreicht.",
	"Alle Phasen wurden durchlaufen.",
	"Es existiert eine klare schriftliche Zusammenfassung.",
	"Offene Punkte sind klar markiert.",
	"Der Agent definiert, wer den nächsten Schritt übernimmt.",
}

// Phases returns a copy of the four fixed agent phases.
func Phases() []Phase {
	out := make([]Phase, len(phases))
	for i, p := range phases {
		out[i] = Phase{
			Title:       p.Title,
			Description: p.Description,
			Steps:       append([]string(nil), p.Steps...),
		}
	}
	return out
}

// CompletionCriteria returns a copy of the five fixed completion criteria.
func CompletionCriteria() []string {
	return append([]string(nil), completionCriteria...)
}
