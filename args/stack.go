// Package args provides the mutable argument stack consumed during command
// dispatch: an ordered sequence of positional tokens plus switch and flag
// values extracted out of the positional stream.
package args

import (
	"fmt"
	"strings"
)

// MissingFlagValueError is returned when a flag token appears as the last
// token of the input, leaving it with no value to consume.
type MissingFlagValueError struct {
	Flag string
}

func (e *MissingFlagValueError) Error() string {
	return fmt.Sprintf("flag '%s' is missing its value", e.Flag)
}

// Stack is an ordered, consumable sequence of raw input tokens. Consuming
// removes from the front; switch and flag extraction removes tokens wherever
// they appear while preserving the relative order of the remaining ones.
// A Stack is owned by a single in-flight dispatch and is not safe for
// concurrent use.
type Stack struct {
	tokens   []string
	switches map[string]bool
	flags    map[string]string
}

// Tokenize splits raw input on whitespace and returns a stack of the
// resulting tokens. This is a plain whitespace split; callers that need
// richer quoting must tokenize themselves and use New.
func Tokenize(input string) *Stack {
	return New(strings.Fields(input)...)
}

// New returns a stack over the given pre-tokenized input.
func New(tokens ...string) *Stack {
	s := &Stack{
		tokens:   make([]string, len(tokens)),
		switches: make(map[string]bool),
		flags:    make(map[string]string),
	}
	copy(s.tokens, tokens)
	return s
}

// Len returns the number of remaining positional tokens.
func (s *Stack) Len() int { return len(s.tokens) }

// IsEmpty reports whether the positional stream is exhausted.
func (s *Stack) IsEmpty() bool { return len(s.tokens) == 0 }

// Peek returns the front token without consuming it.
func (s *Stack) Peek() (string, bool) {
	if len(s.tokens) == 0 {
		return "", false
	}
	return s.tokens[0], true
}

// Pop consumes and returns the front token.
func (s *Stack) Pop() (string, bool) {
	if len(s.tokens) == 0 {
		return "", false
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, true
}

// PopAll consumes every remaining positional token and returns them joined
// by single spaces. Used by greedy trailing string parameters.
func (s *Stack) PopAll() string {
	joined := strings.Join(s.tokens, " ")
	s.tokens = nil
	return joined
}

// Remaining returns a copy of the positional tokens left on the stack.
func (s *Stack) Remaining() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// ExtractSwitch scans for a token exactly equal to prefix+name, removes it
// from the positional stream and records the switch as set. Returns whether
// the switch was present. Extraction is position-independent.
func (s *Stack) ExtractSwitch(prefix, name string) bool {
	want := prefix + name
	for i, tok := range s.tokens {
		if tok == want {
			s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
			s.switches[name] = true
			return true
		}
	}
	return false
}

// ExtractFlag scans for a token exactly equal to prefix+name and removes it
// together with the following token, which becomes the flag's value. Returns
// the value and whether the flag was present. If the flag token is last, a
// *MissingFlagValueError is returned.
func (s *Stack) ExtractFlag(prefix, name string) (string, bool, error) {
	want := prefix + name
	for i, tok := range s.tokens {
		if tok != want {
			continue
		}
		if i == len(s.tokens)-1 {
			return "", false, &MissingFlagValueError{Flag: name}
		}
		value := s.tokens[i+1]
		s.tokens = append(s.tokens[:i], s.tokens[i+2:]...)
		s.flags[name] = value
		return value, true, nil
	}
	return "", false, nil
}

// Switch reports whether the named switch was extracted.
func (s *Stack) Switch(name string) bool {
	return s.switches[name]
}

// Flag returns the extracted value of the named flag.
func (s *Stack) Flag(name string) (string, bool) {
	v, ok := s.flags[name]
	return v, ok
}
