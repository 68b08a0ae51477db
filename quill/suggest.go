package quill

import (
	"sort"
	"strings"
)

// SuggestionProvider produces autocomplete candidates for one parameter
// position. Providers must not mutate dispatch state; they see a copy of
// the remaining argument tokens.
type SuggestionProvider interface {
	Suggest(argv []string, actor Actor, cmd *Command) []string
}

type emptyProvider struct{}

func (emptyProvider) Suggest([]string, Actor, *Command) []string { return nil }

// Empty is the suggestion provider that always returns nothing. Composing
// with Empty is the identity: the other operand is returned unchanged.
var Empty SuggestionProvider = emptyProvider{}

// ProviderFunc adapts a plain function to a SuggestionProvider.
type ProviderFunc func(argv []string, actor Actor, cmd *Command) []string

func (f ProviderFunc) Suggest(argv []string, actor Actor, cmd *Command) []string {
	return f(argv, actor, cmd)
}

type literalProvider struct {
	values []string
}

func (p *literalProvider) Suggest([]string, Actor, *Command) []string {
	return p.values
}

// Literal returns a provider that always suggests the given values.
func Literal(values ...string) SuggestionProvider {
	if len(values) == 0 {
		return Empty
	}
	fixed := make([]string, len(values))
	copy(fixed, values)
	return &literalProvider{values: fixed}
}

// Compose merges two providers into one returning the deduplicated set
// union of both sides' suggestions. Composing with Empty (or nil) returns
// the other operand unchanged, with no wrapping.
func Compose(a, b SuggestionProvider) SuggestionProvider {
	if a == nil || a == Empty {
		if b == nil {
			return Empty
		}
		return b
	}
	if b == nil || b == Empty {
		return a
	}
	return ProviderFunc(func(argv []string, actor Actor, cmd *Command) []string {
		seen := make(map[string]bool)
		var merged []string
		for _, s := range a.Suggest(argv, actor, cmd) {
			if !seen[s] {
				seen[s] = true
				merged = append(merged, s)
			}
		}
		for _, s := range b.Suggest(argv, actor, cmd) {
			if !seen[s] {
				seen[s] = true
				merged = append(merged, s)
			}
		}
		sort.Strings(merged)
		return merged
	})
}

// AutoComplete returns completion candidates for partial input: child node
// names while the path is incomplete, and composed per-parameter
// suggestions once a command is reached. Output is deduplicated and sorted.
func (h *Handler) AutoComplete(actor Actor, input string) []string {
	tokens := strings.Fields(input)
	partial := ""
	if len(tokens) > 0 && input != "" && !strings.HasSuffix(input, " ") {
		partial = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	h.tree.mu.RLock()
	n, consumed := h.tree.walk(tokens)
	var candidates []string
	var cmd *Command
	switch {
	case n.command != nil:
		cmd = n.command
	case consumed < len(tokens):
		// An unmatched token sits before the partial one; nothing to offer.
		h.tree.mu.RUnlock()
		return nil
	default:
		for _, key := range n.order {
			candidates = append(candidates, n.children[key].name)
		}
	}
	h.tree.mu.RUnlock()

	if cmd != nil {
		candidates = h.commandSuggestions(actor, cmd, tokens[consumed:])
	}
	return filterPrefix(candidates, partial)
}

// commandSuggestions composes the providers of every parameter whose
// positional slot matches the current argument index, then adds the
// prefixed names of switch and flag parameters not yet present.
func (h *Handler) commandSuggestions(actor Actor, cmd *Command, rest []string) []string {
	switchPrefix, flagPrefix := h.SwitchPrefix(), h.FlagPrefix()

	// Tokens matching a declared switch or flag name are not positionals, and
	// neither is the value token following a matched flag. Anything else
	// counts, so a bare "-5" stays a positional.
	prefixed := make(map[string]ParamKind)
	for _, p := range cmd.Parameters {
		switch p.Kind {
		case ParamSwitch:
			prefixed[switchPrefix+p.Name] = ParamSwitch
		case ParamFlag:
			prefixed[flagPrefix+p.Name] = ParamFlag
		}
	}

	argIndex := 0
	for i := 0; i < len(rest); i++ {
		kind, ok := prefixed[rest[i]]
		if !ok {
			argIndex++
			continue
		}
		if kind == ParamFlag && i+1 < len(rest) {
			i++
		}
	}

	provider := Empty
	slot := 0
	for _, p := range cmd.Parameters {
		if p.Kind != ParamValue {
			continue
		}
		if slot == argIndex && p.Suggestions != nil {
			provider = Compose(provider, p.Suggestions)
		}
		slot++
	}

	argv := make([]string, len(rest))
	copy(argv, rest)
	candidates := provider.Suggest(argv, actor, cmd)

	used := make(map[string]bool, len(rest))
	for _, tok := range rest {
		used[tok] = true
	}
	for _, p := range cmd.Parameters {
		switch p.Kind {
		case ParamSwitch:
			if name := switchPrefix + p.Name; !used[name] {
				candidates = append(candidates, name)
			}
		case ParamFlag:
			if name := flagPrefix + p.Name; !used[name] {
				candidates = append(candidates, name)
			}
		}
	}
	return candidates
}

func filterPrefix(candidates []string, partial string) []string {
	seen := make(map[string]bool, len(candidates))
	var out []string
	for _, c := range candidates {
		if partial != "" && !strings.HasPrefix(strings.ToLower(c), strings.ToLower(partial)) {
			continue
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
