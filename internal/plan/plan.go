// Package plan builds the project plan the simulated agent hands back.
//
// A plan is a fixed four-phase template. Only the goal, its short form and
// the start date depend on the caller; everything else comes from the
// content table in content.go.
package plan

import (
	"strings"
	"time"
	"unicode"
)

// Phase is one stage of the agent's plan.
type Phase struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Steps       []string `json:"steps" yaml:"steps"`
}

// ProjectPlan is the structured result of a single agent run.
// It is created fresh for every run and never mutated afterwards.
type ProjectPlan struct {
	Goal               string   `json:"goal" yaml:"goal"`
	ShortGoal          string   `json:"shortGoal" yaml:"shortGoal"`
	StartDate          string   `json:"startDate" yaml:"startDate"`
	SuccessDefinition  string   `json:"successDefinition" yaml:"successDefinition"`
	Phases             []Phase  `json:"phases" yaml:"phases"`
	CompletionCriteria []string `json:"completionCriteria" yaml:"completionCriteria"`
}

const (
	// MaxShortGoalLen is the maximum length of ShortGoal in characters,
	// ellipsis included.
	MaxShortGoalLen = 120

	// Ellipsis is appended to a truncated ShortGoal.
	Ellipsis = "..."

	// DateLayout renders dates the way de-DE does: day.month.year.
	DateLayout = "02.01.2006"

	// NoGoalFallback replaces Goal when the description is empty.
	NoGoalFallback = "Projektbeschreibung wurde nicht angegeben."

	// NoShortGoalFallback replaces ShortGoal when the description is empty.
	NoShortGoalFallback = "Kein konkretes Ziel angegeben."
)

// Build turns a free-text task description into a plan. It never fails:
// an empty or whitespace-only description yields the fallback texts.
// The result depends only on task and the calendar day of now.
func Build(task string, now time.Time) ProjectPlan {
	trimmed := TrimTask(task)

	goal := trimmed
	short := ShortGoal(trimmed)
	if trimmed == "" {
		goal = NoGoalFallback
		short = NoShortGoalFallback
	}

	return ProjectPlan{
		Goal:               goal,
		ShortGoal:          short,
		StartDate:          FormatDate(now),
		SuccessDefinition:  SuccessDefinition,
		Phases:             Phases(),
		CompletionCriteria: CompletionCriteria(),
	}
}

// BuildNow is Build stamped with the current local date.
func BuildNow(task string) ProjectPlan {
	return Build(task, time.Now())
}

// TrimTask strips leading and trailing white space from a task: Unicode
// white space, line terminators and the byte order mark U+FEFF. The C1
// next-line control U+0085 is kept.
func TrimTask(task string) string {
	return strings.TrimFunc(task, isTaskSpace)
}

func isTaskSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// ShortGoal shortens an already trimmed goal to at most MaxShortGoalLen
// characters. Longer goals keep their first MaxShortGoalLen-len(Ellipsis)
// characters, lose any whitespace left dangling by the cut, and end in
// Ellipsis.
func ShortGoal(trimmed string) string {
	runes := []rune(trimmed)
	if len(runes) <= MaxShortGoalLen {
		return trimmed
	}
	keep := MaxShortGoalLen - len([]rune(Ellipsis))
	return strings.TrimRightFunc(string(runes[:keep]), isTaskSpace) + Ellipsis
}

// FormatDate formats t as a de-DE calendar date, e.g. 15.10.2026.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
