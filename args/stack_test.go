package args

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize_SplitsOnWhitespace(t *testing.T) {
	s := Tokenize("  note   add hello\tworld ")

	require.Equal(t, []string{"note", "add", "hello", "world"}, s.Remaining())
	require.Equal(t, 4, s.Len())
}

func TestTokenize_EmptyInput(t *testing.T) {
	s := Tokenize("   ")

	require.True(t, s.IsEmpty())
}

func TestStack_PopConsumesFromFront(t *testing.T) {
	s := New("a", "b", "c")

	tok, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, "a", tok)
	require.Equal(t, []string{"b", "c"}, s.Remaining())
}

func TestStack_PopOnEmpty(t *testing.T) {
	s := New()

	_, ok := s.Pop()
	require.False(t, ok)
}

func TestStack_PeekDoesNotConsume(t *testing.T) {
	s := New("a", "b")

	tok, ok := s.Peek()
	require.True(t, ok)
	require.Equal(t, "a", tok)
	require.Equal(t, 2, s.Len())
}

func TestStack_PopAll(t *testing.T) {
	s := New("hello", "brave", "world")

	require.Equal(t, "hello brave world", s.PopAll())
	require.True(t, s.IsEmpty())
}

func TestStack_RemainingIsACopy(t *testing.T) {
	s := New("a", "b")

	rem := s.Remaining()
	rem[0] = "mutated"

	tok, _ := s.Peek()
	require.Equal(t, "a", tok)
}

func TestExtractSwitch_RemovesTokenAnywhere(t *testing.T) {
	s := New("a", "-verbose", "b")

	require.True(t, s.ExtractSwitch("-", "verbose"))
	require.Equal(t, []string{"a", "b"}, s.Remaining())
	require.True(t, s.Switch("verbose"))
}

func TestExtractSwitch_Absent(t *testing.T) {
	s := New("a", "b")

	require.False(t, s.ExtractSwitch("-", "verbose"))
	require.Equal(t, []string{"a", "b"}, s.Remaining())
	require.False(t, s.Switch("verbose"))
}

func TestExtractFlag_RemovesFlagAndValue(t *testing.T) {
	s := New("a", "--times", "3", "b")

	value, ok, err := s.ExtractFlag("--", "times")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", value)
	require.Equal(t, []string{"a", "b"}, s.Remaining())

	stored, ok := s.Flag("times")
	require.True(t, ok)
	require.Equal(t, "3", stored)
}

func TestExtractFlag_MissingValue(t *testing.T) {
	s := New("a", "-name")

	_, _, err := s.ExtractFlag("-", "name")
	require.Error(t, err)

	var missing *MissingFlagValueError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "name", missing.Flag)
}

func TestExtractFlag_Absent(t *testing.T) {
	s := New("a", "b")

	_, ok, err := s.ExtractFlag("-", "name")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestExtract_PreservesPositionalOrder(t *testing.T) {
	s := New("-loud", "alice", "--times", "2", "bob")

	require.True(t, s.ExtractSwitch("-", "loud"))
	_, ok, err := s.ExtractFlag("--", "times")
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, []string{"alice", "bob"}, s.Remaining())
}
