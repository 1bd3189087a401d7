package prompt

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"fable/internal/domain/models"
)

// HistoryMarker is the reserved sentinel a rendered prompt carries where
// the conversation-history window belongs. U+204A is excluded from normal
// input validation, so it cannot collide with user-authored text. The
// history-windowing stage replaces it; nothing in this package expands it.
const HistoryMarker = "⁊"

// fallbackHandle is used when neither an impersonation override nor the
// chat owner's participant record yields a display name.
const fallbackHandle = "You"

// defaultMemory is a deliberate stand-in bound to the "memory" variable
// when no real entries exist. Callers should read it as "memory subsystem
// reachable but empty", not as an error.
const defaultMemory = "The clerk remembers that the customer is a regular"

// TemplateSyntaxError reports a malformed template: unbalanced or
// mismatched control structures, or text the underlying parser rejects.
// It is fatal to the render call and never silently recovered.
type TemplateSyntaxError struct {
	Msg string
	Err error
}

func (e *TemplateSyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("template syntax: %s: %v", e.Msg, e.Err)
	}
	return "template syntax: " + e.Msg
}

func (e *TemplateSyntaxError) Unwrap() error { return e.Err }

// RenderOpts carries the per-render context. It is built fresh for each
// call and not retained.
type RenderOpts struct {
	Character models.Character
	Chat      models.Chat
	Members   []models.Participant
	// Impersonate overrides the resolved user identity when the user
	// speaks as a character.
	Impersonate *models.Character
	// Book supplies the ordered memory entries, when any exist.
	Book *models.MemoryBook
}

// Renderer renders prompt templates. Rendering is pure: the same template
// and context always produce identical output, and a Renderer is safe for
// concurrent use.
type Renderer struct {
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render evaluates tmpl against the context in opts and returns the
// prompt string. The history marker is left unexpanded for the external
// windowing stage. Missing optional fields render empty; only a malformed
// template fails, with a *TemplateSyntaxError.
func (r *Renderer) Render(tmpl string, opts RenderOpts) (string, error) {
	translated, refsHistory, err := translate(tmpl)
	if err != nil {
		return "", err
	}

	char := opts.Character.Name
	user := resolveUserName(opts)

	scenario := opts.Chat.Scenario
	if scenario == "" {
		scenario = opts.Character.Scenario
	}

	var memories []string
	if opts.Book != nil {
		for _, entry := range opts.Book.Entries {
			if !entry.Enabled {
				continue
			}
			memories = append(memories, entry.Entry)
		}
	}
	memory := defaultMemory
	if len(memories) > 0 {
		memory = strings.Join(memories, "\n")
	}

	ns := map[string]any{
		"br":               "\n",
		"char":             char,
		"user":             user,
		"scenario":         Substitute(scenario, char, user),
		"persona":          FormatPersona(opts.Character.Persona, char),
		"memory":           memory,
		"memories":         memories,
		"example_dialogue": Substitute(opts.Character.SampleChat, char, user),
		"history":          HistoryMarker,
	}

	t, err := template.New("prompt").Parse(translated)
	if err != nil {
		return "", &TemplateSyntaxError{Msg: "malformed template", Err: err}
	}

	var sb strings.Builder
	if err := t.Execute(&sb, ns); err != nil {
		return "", &TemplateSyntaxError{Msg: "template evaluation failed", Err: err}
	}

	// Collapse blank lines introduced by optional sections, then expand
	// authored hard breaks. Order matters: {br} survives the collapse.
	out := strings.ReplaceAll(sb.String(), "\n\n", "\n")
	out = strings.ReplaceAll(out, "{br}", "\n")

	if refsHistory && strings.Count(out, HistoryMarker) != 1 {
		return "", &TemplateSyntaxError{
			Msg: fmt.Sprintf("history must render exactly once, got %d occurrences",
				strings.Count(out, HistoryMarker)),
		}
	}

	r.logger.Debug("prompt rendered",
		"length", len(out),
		"references_history", refsHistory,
		"memory_entries", len(memories),
	)

	return out, nil
}

// resolveUserName picks the effective user display name: the
// impersonation override, else the chat owner's handle among the
// participant records, else a literal fallback.
func resolveUserName(opts RenderOpts) string {
	if opts.Impersonate != nil {
		return opts.Impersonate.Name
	}
	for _, member := range opts.Members {
		if member.UserID == opts.Chat.UserID && member.Handle != "" {
			return member.Handle
		}
	}
	return fallbackHandle
}

// templateVars is the documented variable namespace. References outside
// this set render empty.
var templateVars = map[string]bool{
	"br":               true,
	"char":             true,
	"user":             true,
	"scenario":         true,
	"persona":          true,
	"memory":           true,
	"memories":         true,
	"example_dialogue": true,
	"history":          true,
}

// sequenceVars are the namespace entries {{#each}} may iterate.
var sequenceVars = map[string]bool{
	"memories": true,
}

var (
	tokenPattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// translate compiles the prompt dialect ({{var}}, {{#if var}}, {{#each
// var}}, {{this}}) into text/template source. Unknown variable references
// become empty text; unknown sequences become dead branches. Control
// structures are balance-checked here so mismatched pairs are caught even
// when the compiled form would parse. The second result reports whether
// the template references the history variable.
func translate(tmpl string) (string, bool, error) {
	var out strings.Builder
	var stack []string
	refsHistory := false

	last := 0
	for _, loc := range tokenPattern.FindAllStringIndex(tmpl, -1) {
		out.WriteString(tmpl[last:loc[0]])
		last = loc[1]

		fields := strings.Fields(tmpl[loc[0]+2 : loc[1]-2])
		if len(fields) == 0 {
			continue // {{}} renders empty
		}

		switch fields[0] {
		case "#if":
			if len(fields) != 2 || !identPattern.MatchString(fields[1]) {
				return "", false, &TemplateSyntaxError{Msg: fmt.Sprintf("bad conditional %q", strings.Join(fields, " "))}
			}
			stack = append(stack, "if")
			if templateVars[fields[1]] {
				fmt.Fprintf(&out, "{{if index . %q}}", fields[1])
			} else {
				out.WriteString("{{if 0}}")
			}

		case "#each":
			if len(fields) != 2 || !identPattern.MatchString(fields[1]) {
				return "", false, &TemplateSyntaxError{Msg: fmt.Sprintf("bad loop %q", strings.Join(fields, " "))}
			}
			stack = append(stack, "each")
			if sequenceVars[fields[1]] {
				fmt.Fprintf(&out, "{{range index . %q}}", fields[1])
			} else {
				out.WriteString("{{if 0}}")
			}

		case "/if":
			if len(stack) == 0 || stack[len(stack)-1] != "if" {
				return "", false, &TemplateSyntaxError{Msg: "unexpected {{/if}}"}
			}
			stack = stack[:len(stack)-1]
			out.WriteString("{{end}}")

		case "/each":
			if len(stack) == 0 || stack[len(stack)-1] != "each" {
				return "", false, &TemplateSyntaxError{Msg: "unexpected {{/each}}"}
			}
			stack = stack[:len(stack)-1]
			out.WriteString("{{end}}")

		case "this", ".":
			// Loop element; meaningless outside {{#each}}, renders empty there.
			if len(fields) == 1 && slices.Contains(stack, "each") {
				out.WriteString("{{.}}")
			}

		default:
			if strings.HasPrefix(fields[0], "#") || strings.HasPrefix(fields[0], "/") {
				return "", false, &TemplateSyntaxError{Msg: fmt.Sprintf("unknown control %q", fields[0])}
			}
			if len(fields) != 1 || !identPattern.MatchString(fields[0]) {
				continue // not a documented reference, renders empty
			}
			if !templateVars[fields[0]] {
				continue // unknown variable, renders empty
			}
			if fields[0] == "history" {
				refsHistory = true
			}
			fmt.Fprintf(&out, "{{index . %q}}", fields[0])
		}
	}
	out.WriteString(tmpl[last:])

	if len(stack) > 0 {
		return "", false, &TemplateSyntaxError{Msg: fmt.Sprintf("unclosed {{#%s}}", stack[len(stack)-1])}
	}

	return out.String(), refsHistory, nil
}
