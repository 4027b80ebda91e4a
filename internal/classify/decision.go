package classify

import (
	"strings"
	"unicode"

	"resource-generator/internal/vocab"
)

// Source tells how a decision was reached.
type Source string

const (
	SourceOverride     Source = "override"
	SourceHeuristic    Source = "heuristic"
	SourceUnclassified Source = "unclassified"
)

// Decision is the audited classification of one command.
type Decision struct {
	Command string
	// Verb and Noun are the split of the command name, even when an override won.
	Verb   string
	Noun   string
	Model  string
	Role   string
	Source Source
	// Reason explains an unclassified decision.
	Reason string
}

// Decide classifies one command name against a vocabulary.
func Decide(v *vocab.Vocabulary, name string) Decision {
	verb, noun := Split(name)
	d := Decision{Command: name, Verb: verb, Noun: noun}

	if o, ok := v.Lookup(name); ok {
		d.Model = o.Model
		d.Role = o.Role
		if d.Role == "" {
			d.Role = name
		}

		d.Source = SourceOverride

		return d
	}

	d.Source = SourceUnclassified

	switch {
	case !v.IsVerb(verb):
		d.Reason = "unrecognized verb " + quote(verb)
	case noun == "":
		d.Reason = "verb " + quote(verb) + " has no noun"
	default:
		d.Model = Singular(verb, noun)
		d.Role = verb
		d.Source = SourceHeuristic
	}

	return d
}

// Split cuts a command name at its first upper-case letter. The prefix is
// lower-cased. A name without an upper-case letter is all verb; a name starting
// with one has an empty verb.
func Split(name string) (verb, noun string) {
	idx := strings.IndexFunc(name, unicode.IsUpper)
	if idx < 0 {
		return strings.ToLower(name), ""
	}

	return strings.ToLower(name[:idx]), name[idx:]
}

// Singular applies the pluralization rules: a trailing "ies" becomes "y" for
// any verb, and a trailing "s" is dropped when the verb is "list".
func Singular(verb, noun string) string {
	if base, ok := strings.CutSuffix(noun, "ies"); ok && base != "" {
		return base + "y"
	}

	if verb == "list" && len(noun) > 1 {
		if base, ok := strings.CutSuffix(noun, "s"); ok {
			return base
		}
	}

	return noun
}

func quote(s string) string {
	return `"` + s + `"`
}
