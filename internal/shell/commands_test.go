package shell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quill-tools/quill/internal/store"
	"github.com/quill-tools/quill/internal/testutil"
	"github.com/quill-tools/quill/quill"
)

func newShellHandler(t *testing.T) *quill.Handler {
	t.Helper()
	st := store.NewWithDB(testutil.NewTestDB(t))
	return NewHandler(st, nil, "1.2.3")
}

func dispatch(t *testing.T, h *quill.Handler, actor *BufferActor, line string) (bool, []string) {
	t.Helper()
	_, ok := h.Dispatch(actor, line)
	return ok, actor.Drain()
}

func TestShell_Version(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, replies := dispatch(t, h, actor, "version")
	require.True(t, ok)
	require.Equal(t, []string{"qsh 1.2.3"}, replies)
}

func TestShell_Whoami(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, replies := dispatch(t, h, actor, "whoami")
	require.True(t, ok)
	require.Equal(t, []string{"alice"}, replies)
}

func TestShell_GreetWithFlags(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, replies := dispatch(t, h, actor, "greet Bob --times 3 -loud")
	require.True(t, ok)
	require.Equal(t, []string{
		"HELLO, Bob!!!",
		"HELLO, Bob!!!",
		"HELLO, Bob!!!",
	}, replies)
}

func TestShell_GreetRejectsNegativeTimes(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, replies := dispatch(t, h, actor, "greet Bob --times -2")
	require.False(t, ok)
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "negative")
}

func TestShell_NoteRoundtrip(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, replies := dispatch(t, h, actor, "note add remember the milk --tag errand")
	require.True(t, ok)
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "added note")

	ok, replies = dispatch(t, h, actor, "note list")
	require.True(t, ok)
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "remember the milk")
	require.Contains(t, replies[0], "[errand]")

	ok, replies = dispatch(t, h, actor, "note count")
	require.True(t, ok)
	require.Equal(t, []string{"1 notes"}, replies)
}

func TestShell_NoteListEmpty(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, replies := dispatch(t, h, actor, "note list")
	require.True(t, ok)
	require.Equal(t, []string{"no notes"}, replies)
}

func TestShell_NoteRemoveUnknownID(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, replies := dispatch(t, h, actor, "note remove not-a-uuid")
	require.False(t, ok)
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "not a note id")
}

func TestShell_AdminWipeRequiresPermission(t *testing.T) {
	h := newShellHandler(t)

	ok, replies := dispatch(t, h, NewActor("alice"), "admin wipe")
	require.False(t, ok)
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "permission")

	ok, replies = dispatch(t, h, NewActor("admin"), "admin wipe")
	require.True(t, ok)
	require.Equal(t, []string{"wiped 0 notes"}, replies)
}

func TestShell_UnknownCommandReplies(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, replies := dispatch(t, h, actor, "frobnicate")
	require.False(t, ok)
	require.Len(t, replies, 1)
	require.Contains(t, replies[0], "frobnicate")
}

func TestShell_AutoCompleteSubcommands(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	got := h.AutoComplete(actor, "note ")
	require.Equal(t, []string{"add", "count", "list", "remove"}, got)
}

func TestShell_AutoCompleteNoteIDs(t *testing.T) {
	h := newShellHandler(t)
	actor := NewActor("alice")

	ok, _ := dispatch(t, h, actor, "note add something")
	require.True(t, ok)

	got := h.AutoComplete(actor, "note remove ")
	require.Len(t, got, 1)
	require.True(t, strings.Count(got[0], "-") == 4, "expected a uuid, got %q", got[0])
}

func TestReplaceLastToken(t *testing.T) {
	require.Equal(t, "note ", replaceLastToken("no", "note"))
	require.Equal(t, "note add ", replaceLastToken("note a", "add"))
	require.Equal(t, "note add ", replaceLastToken("note ", "add"))
	require.Equal(t, "note ", replaceLastToken("", "note"))
}
