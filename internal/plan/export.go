package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how Render serializes a plan.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ErrUnknownFormat is returned for output formats Render does not support.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates and normalizes an output format name.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatText, FormatMarkdown, FormatJSON, FormatYAML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q (valid: text, markdown, json, yaml)", ErrUnknownFormat, value)
	}
}

// Render serializes p in the given format.
func Render(p ProjectPlan, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(renderText(p)), nil
	case FormatMarkdown:
		return []byte(RenderMarkdown(p)), nil
	case FormatJSON:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal plan: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return nil, fmt.Errorf("failed to encode plan: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode plan: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

// RenderMarkdown lays the plan out with the same sections as the cockpit panels.
func RenderMarkdown(p ProjectPlan) string {
	var b strings.Builder

	b.WriteString("# Projektübersicht\n\n")
	b.WriteString("## Ziel\n\n")
	b.WriteString(p.ShortGoal + "\n\n")
	b.WriteString("### Projektstart\n\n")
	b.WriteString(p.StartDate + "\n\n")
	b.WriteString("### Definition von „fertig“\n\n")
	b.WriteString(p.SuccessDefinition + "\n\n")

	b.WriteString("# Agenten-Phasen\n\n")
	for i, phase := range p.Phases {
		fmt.Fprintf(&b, "%d. **%s**\n\n", i+1, phase.Title)
		fmt.Fprintf(&b, "   %s\n\n", phase.Description)
		for _, step := range phase.Steps {
			fmt.Fprintf(&b, "   - %s\n", step)
		}
		b.WriteString("\n")
	}

	b.WriteString("# Abschlusskriterien des Agenten\n\n")
	for _, crit := range p.CompletionCriteria {
		fmt.Fprintf(&b, "- %s\n", crit)
	}

	return b.String()
}

func renderText(p ProjectPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ziel:         %s\n", p.ShortGoal)
	fmt.Fprintf(&b, "Projektstart: %s\n", p.StartDate)
	fmt.Fprintf(&b, "Fertig wenn:  %s\n\n", p.SuccessDefinition)

	for i, phase := range p.Phases {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", phase.Title)
		fmt.Fprintf(&b, "  %s\n", phase.Description)
		for j, step := range phase.Steps {
			fmt.Fprintf(&b, "  %d. %s\n", j+1, step)
		}
	}

	b.WriteString("\nAbschlusskriterien:\n")
	for _, crit := range p.CompletionCriteria {
		fmt.Fprintf(&b, "  - %s\n", crit)
	}

	return b.String()
}
