package prompt

import (
	"fmt"
	"sort"
	"strings"

	"fable/internal/domain/models"
)

// FormatPersona flattens a persona into prompt text according to its kind.
// Attribute keys are emitted in sorted order so output is deterministic.
func FormatPersona(p models.Persona, charName string) string {
	switch p.Kind {
	case models.PersonaText:
		return strings.Join(p.Attributes["text"], " ")
	case models.PersonaWPP:
		return formatWPP(p, charName)
	case models.PersonaSBF:
		return formatSBF(p, charName)
	case models.PersonaBoostyle:
		return formatBoostyle(p, charName)
	default:
		return ""
	}
}

// formatWPP renders [character("Name") { Key("v1" + "v2") }].
func formatWPP(p models.Persona, charName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[character(%q) {", charName)
	for _, key := range sortedKeys(p.Attributes) {
		values := p.Attributes[key]
		if len(values) == 0 {
			continue
		}
		quoted := make([]string, 0, len(values))
		for _, v := range values {
			quoted = append(quoted, fmt.Sprintf("%q", v))
		}
		fmt.Fprintf(&sb, " %s(%s)", key, strings.Join(quoted, " + "))
	}
	sb.WriteString(" }]")
	return sb.String()
}

// formatSBF renders [ character: "Name"; key: v1, v2 ].
func formatSBF(p models.Persona, charName string) string {
	parts := []string{fmt.Sprintf("character: %q", charName)}
	for _, key := range sortedKeys(p.Attributes) {
		values := p.Attributes[key]
		if len(values) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", key, strings.Join(values, ", ")))
	}
	return "[ " + strings.Join(parts, "; ") + " ]"
}

// formatBoostyle renders Name + v1 + v2.
func formatBoostyle(p models.Persona, charName string) string {
	parts := []string{charName}
	for _, key := range sortedKeys(p.Attributes) {
		parts = append(parts, p.Attributes[key]...)
	}
	return strings.Join(parts, " + ")
}

func sortedKeys(attrs map[string][]string) []string {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
