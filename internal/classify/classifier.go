package classify

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"resource-generator/internal/apispec"
	"resource-generator/internal/diagnostic"
	"resource-generator/internal/vocab"
)

var (
	// ErrUnclassified is returned when commands match neither an override nor a verb.
	ErrUnclassified = errors.New("unclassifiable commands")
	// ErrCollision is returned when two commands claim the same role of a model.
	ErrCollision = errors.New("role collision")
)

// Classifier groups commands into resources.
type Classifier struct {
	Vocabulary *vocab.Vocabulary
	Logger     *slog.Logger
}

// New returns a classifier; a nil vocabulary means vocab.Default().
func New(v *vocab.Vocabulary, logger *slog.Logger) *Classifier {
	if v == nil {
		v = vocab.Default()
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{Vocabulary: v, Logger: logger}
}

// Audit returns the decision for every command without failing.
func (c *Classifier) Audit(cmds []apispec.Command) []Decision {
	decisions := make([]Decision, 0, len(cmds))
	for _, cmd := range cmds {
		decisions = append(decisions, Decide(c.vocabulary(), cmd.Name))
	}

	return decisions
}

// Classify places every command in a group. All unclassifiable commands and all
// collisions are reported in a single error; no catalog is returned then.
func (c *Classifier) Classify(cmds []apispec.Command) (*Catalog, error) {
	logger := c.logger()
	catalog := newCatalog()

	var diags diagnostic.Diagnostics

	for _, cmd := range cmds {
		d := Decide(c.vocabulary(), cmd.Name)
		catalog.Decisions = append(catalog.Decisions, d)
		catalog.Commands = append(catalog.Commands, cmd)

		c.checkTypes(&diags, cmd)

		switch d.Source {
		case SourceUnclassified:
			code := diagnostic.CodeUnclassified
			if d.Noun == "" && c.vocabulary().IsVerb(d.Verb) {
				code = diagnostic.CodeEmptyNoun
			}

			diags.AddError(code, d.Reason, cmd.Name, "")

			continue
		case SourceOverride:
			diags.AddInfo(diagnostic.CodeOverride,
				fmt.Sprintf("model=%s role=%s", d.Model, d.Role), cmd.Name, "")
		default:
			diags.AddInfo(diagnostic.CodeHeuristic,
				fmt.Sprintf("verb=%s noun=%s model=%s", d.Verb, d.Noun, d.Model), cmd.Name, "")
		}

		g := catalog.group(d.Model)
		if existing, ok := g.Add(d.Role, cmd); !ok {
			diags.AddError(diagnostic.CodeCollision,
				fmt.Sprintf("%s and %s both claim role %q of model %s", existing.Name, cmd.Name, d.Role, d.Model),
				cmd.Name, "")
		}
	}

	c.checkUnusedOverrides(&diags, cmds)

	diags.Log(logger)

	catalog.Diagnostics = diags

	if err := classifyErr(&diags); err != nil {
		return nil, err
	}

	logger.Info("classified commands",
		slog.Int("commands", len(cmds)),
		slog.Int("models", len(catalog.Groups)),
	)

	return catalog, nil
}

func (c *Classifier) checkTypes(diags *diagnostic.Diagnostics, cmd apispec.Command) {
	var walk func(prefix string, params []apispec.Parameter)

	walk = func(prefix string, params []apispec.Parameter) {
		for _, p := range params {
			path := prefix + "." + p.Name
			if p.DataType == apispec.DataTypeUnknown {
				diags.AddWarning(diagnostic.CodeUnknownType,
					fmt.Sprintf("unknown type %q, generated as string", p.DeclaredType), cmd.Name, path)
			}

			walk(path, p.SubParameters)
		}
	}

	walk("request", cmd.Request)
	walk("response", cmd.Response)
}

func (c *Classifier) checkUnusedOverrides(diags *diagnostic.Diagnostics, cmds []apispec.Command) {
	present := make(map[string]struct{}, len(cmds))
	for _, cmd := range cmds {
		present[cmd.Name] = struct{}{}
	}

	for _, name := range c.vocabulary().OverrideNames() {
		if _, ok := present[name]; !ok {
			diags.AddInfo(diagnostic.CodeUnusedOverride, "override matches no command", name, "")
		}
	}
}

// classifyErr folds the error diagnostics into one error matching
// ErrUnclassified, ErrCollision, or both.
func classifyErr(diags *diagnostic.Diagnostics) error {
	if !diags.HasErrors() {
		return nil
	}

	unclassified := diagnostic.Diagnostics{
		Errors: diags.ByCode(diagnostic.CodeUnclassified, diagnostic.CodeEmptyNoun),
	}
	collisions := diagnostic.Diagnostics{Errors: diags.ByCode(diagnostic.CodeCollision)}

	return errors.Join(unclassified.Err(ErrUnclassified), collisions.Err(ErrCollision))
}

func (c *Classifier) vocabulary() *vocab.Vocabulary {
	if c.Vocabulary == nil {
		c.Vocabulary = vocab.Default()
	}

	return c.Vocabulary
}

func (c *Classifier) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}

	return c.Logger
}

// FormatDecisions renders decisions as an aligned table.
func FormatDecisions(decisions []Decision) string {
	rows := [][]string{{"COMMAND", "VERB", "NOUN", "MODEL", "ROLE", "SOURCE"}}
	for _, d := range decisions {
		model, role := d.Model, d.Role
		if d.Source == SourceUnclassified {
			model, role = "-", d.Reason
		}

		rows = append(rows, []string{d.Command, d.Verb, d.Noun, model, role, string(d.Source)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder

	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}

			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}

		b.WriteByte('\n')
	}

	return b.String()
}
