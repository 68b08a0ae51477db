package quill

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompose_EmptyIsIdentity(t *testing.T) {
	x := Literal("a", "b")

	require.Same(t, x, Compose(Empty, x))
	require.Same(t, x, Compose(x, Empty))
	require.Equal(t, Empty, Compose(Empty, Empty))
	require.Equal(t, Empty, Compose(nil, nil))
}

func TestCompose_NilBehavesLikeEmpty(t *testing.T) {
	x := Literal("a")

	require.Same(t, x, Compose(nil, x))
	require.Same(t, x, Compose(x, nil))
}

func TestCompose_UnionIsDeduplicated(t *testing.T) {
	a := Literal("x", "y")
	b := Literal("y", "z")

	merged := Compose(a, b).Suggest(nil, nil, nil)
	require.ElementsMatch(t, []string{"x", "y", "z"}, merged)
}

func TestLiteral_NoValuesIsEmpty(t *testing.T) {
	require.Equal(t, Empty, Literal())
}

func TestAutoComplete_SuggestsTopLevelNames(t *testing.T) {
	h := New()
	require.NoError(t, h.Register(newCommand("note add")))
	require.NoError(t, h.Register(newCommand("version")))

	got := h.AutoComplete(nil, "")
	require.Equal(t, []string{"note", "version"}, got)
}

func TestAutoComplete_FiltersOnPartialToken(t *testing.T) {
	h := New()
	require.NoError(t, h.Register(newCommand("note add")))
	require.NoError(t, h.Register(newCommand("version")))

	got := h.AutoComplete(nil, "ver")
	require.Equal(t, []string{"version"}, got)
}

func TestAutoComplete_SuggestsCategoryChildren(t *testing.T) {
	h := New()
	require.NoError(t, h.Register(newCommand("note add")))
	require.NoError(t, h.Register(newCommand("note remove")))

	got := h.AutoComplete(nil, "note ")
	require.Equal(t, []string{"add", "remove"}, got)
}

func TestAutoComplete_UsesParameterProvider(t *testing.T) {
	h := New()
	cmd := &Command{
		Path: ParsePath("theme set"),
		Parameters: []*Parameter{
			{Name: "name", Type: TypeString, Suggestions: Literal("dark", "light")},
		},
		Invoker: noopInvoker,
	}
	require.NoError(t, h.Register(cmd))

	got := h.AutoComplete(nil, "theme set ")
	require.Equal(t, []string{"dark", "light"}, got)

	got = h.AutoComplete(nil, "theme set d")
	require.Equal(t, []string{"dark"}, got)
}

func TestAutoComplete_ComposesProvidersAtSamePosition(t *testing.T) {
	h := New()
	cmd := &Command{
		Path: ParsePath("pick"),
		Parameters: []*Parameter{
			{Name: "first", Type: TypeString, Suggestions: Literal("x", "y")},
		},
		Invoker: noopInvoker,
	}
	require.NoError(t, h.Register(cmd))

	other := &Command{
		Path: ParsePath("pair"),
		Parameters: []*Parameter{
			{Name: "a", Type: TypeString, Suggestions: Literal("one")},
			{Name: "b", Type: TypeString, Suggestions: Literal("two")},
		},
		Invoker: noopInvoker,
	}
	require.NoError(t, h.Register(other))

	// Second positional slot suggests the second parameter's provider.
	got := h.AutoComplete(nil, "pair one ")
	require.Equal(t, []string{"two"}, got)
}

func TestAutoComplete_OffersSwitchAndFlagNames(t *testing.T) {
	h := New()
	cmd := &Command{
		Path: ParsePath("greet"),
		Parameters: []*Parameter{
			{Name: "name", Type: TypeString},
			{Name: "loud", Type: TypeBool, Kind: ParamSwitch},
			{Name: "times", Type: TypeInt, Kind: ParamFlag, Optional: true},
		},
		Invoker: noopInvoker,
	}
	require.NoError(t, h.Register(cmd))

	got := h.AutoComplete(nil, "greet alice -")
	require.Equal(t, []string{"-loud", "-times"}, got)
}

func TestAutoComplete_FlagPairDoesNotFillAPositionalSlot(t *testing.T) {
	h := New()
	cmd := &Command{
		Path: ParsePath("greet"),
		Parameters: []*Parameter{
			{Name: "name", Type: TypeString, Suggestions: Literal("world")},
			{Name: "times", Type: TypeInt, Kind: ParamFlag, Optional: true},
		},
		Invoker: noopInvoker,
	}
	require.NoError(t, h.Register(cmd))

	// The flag and its value token are both extracted before binding, so the
	// first positional slot is still open.
	got := h.AutoComplete(nil, "greet -times 2 ")
	require.Equal(t, []string{"world"}, got)
}

func TestAutoComplete_NegativeNumberIsAPositional(t *testing.T) {
	h := New()
	cmd := &Command{
		Path: ParsePath("pay"),
		Parameters: []*Parameter{
			{Name: "amount", Type: TypeInt},
			{Name: "memo", Type: TypeString, Suggestions: Literal("rent")},
		},
		Invoker: noopInvoker,
	}
	require.NoError(t, h.Register(cmd))

	// "-5" starts with the switch prefix but matches no declared switch, so
	// it fills the first slot and the second parameter's provider is offered.
	got := h.AutoComplete(nil, "pay -5 ")
	require.Equal(t, []string{"rent"}, got)
}

func TestAutoComplete_UnknownPath(t *testing.T) {
	h := New()
	require.NoError(t, h.Register(newCommand("note add")))

	require.Nil(t, h.AutoComplete(nil, "bogus sub "))
}
