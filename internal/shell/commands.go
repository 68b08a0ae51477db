// Package shell wires the qsh command set onto a dispatch handler and
// provides the interactive prompt around it.
package shell

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quill-tools/quill/internal/log"
	"github.com/quill-tools/quill/internal/store"
	"github.com/quill-tools/quill/quill"
)

// Type tags used by the qsh command set beyond the built-ins.
const (
	typeActorName = "actorName"
	typeVersion   = "version"
	typeMessage   = "message"

	// depStore is the dependency-container tag for the note store.
	depStore = "store"

	defaultListLimit = 10
)

// NewHandler builds the dispatch handler for qsh: resolvers, validators,
// the note store dependency and the full command set. logger may be nil.
func NewHandler(st *store.Store, logger *log.Logger, version string) *quill.Handler {
	h := quill.New()

	// qsh uses git-style flags: -x switches, --flag value pairs.
	if err := h.SetFlagPrefix("--"); err != nil {
		panic(err)
	}

	h.RegisterDependency(depStore, st)
	h.RegisterContextValue(typeVersion, version)
	h.RegisterSenderResolver(typeActorName, func(rc *quill.ResolveContext) (any, error) {
		return rc.Actor.Name(), nil
	})

	// Counts and limits are never negative in this command set.
	h.RegisterValidator(quill.TypeInt, func(value any, rc *quill.ResolveContext) error {
		if n, ok := value.(int); ok && n < 0 {
			return errors.New("must not be negative")
		}
		return nil
	})

	// Replies string results to the actor. Registered before the commands
	// that declare it, since response handlers are captured at registration.
	h.RegisterResponseHandler(typeMessage, func(result any, actor quill.Actor, _ *quill.Command) {
		if msg, ok := result.(string); ok && msg != "" {
			actor.Reply(msg)
		}
	})

	if logger != nil {
		h.SetExceptionHandler(func(err error, actor quill.Actor, cmd *quill.Command) {
			if cmd != nil {
				logger.Warn("dispatch failed for '%s': %v", cmd.Path, err)
			} else {
				logger.Warn("dispatch failed: %v", err)
			}
			if actor != nil {
				actor.Reply(err.Error())
			}
		})
	}

	registerCommands(h, st)
	return h
}

func registerCommands(h *quill.Handler, st *store.Store) {
	mustRegister(h, &quill.Command{
		Path:         quill.ParsePath("version"),
		Summary:      "Show qsh version",
		ResponseType: typeMessage,
		Parameters: []*quill.Parameter{
			{Name: "v", Type: typeVersion, Kind: quill.ParamContext},
		},
		Invoker: func(inv *quill.Invocation) (any, error) {
			return fmt.Sprintf("qsh %s", inv.Args[0]), nil
		},
	})

	mustRegister(h, &quill.Command{
		Path:         quill.ParsePath("whoami"),
		Summary:      "Show who you are dispatching as",
		ResponseType: typeMessage,
		Parameters: []*quill.Parameter{
			{Name: "self", Type: typeActorName, Kind: quill.ParamSender},
		},
		Invoker: func(inv *quill.Invocation) (any, error) {
			return inv.Args[0].(string), nil
		},
	})

	mustRegister(h, &quill.Command{
		Path:         quill.ParsePath("greet"),
		Summary:      "Greet someone, optionally repeatedly",
		Usage:        "greet <name> [--times <n>] [-loud]",
		ResponseType: typeMessage,
		Parameters: []*quill.Parameter{
			{Name: "name", Type: quill.TypeString, Suggestions: quill.Literal("world")},
			{Name: "loud", Type: quill.TypeBool, Kind: quill.ParamSwitch},
			{Name: "times", Type: quill.TypeInt, Kind: quill.ParamFlag, Optional: true, Default: 1},
		},
		Invoker: func(inv *quill.Invocation) (any, error) {
			name := inv.Args[0].(string)
			loud := inv.Args[1].(bool)
			times := inv.Args[2].(int)

			greeting := fmt.Sprintf("Hello, %s!", name)
			if loud {
				greeting = fmt.Sprintf("HELLO, %s!!!", name)
			}
			for i := 1; i < times; i++ {
				inv.Actor.Reply(greeting)
			}
			return greeting, nil
		},
	})

	mustRegister(h, &quill.Command{
		Path:         quill.ParsePath("note add"),
		Summary:      "Store a note",
		Usage:        "note add <text...> [--tag <tag>] [-pin]",
		ResponseType: typeMessage,
		Parameters: []*quill.Parameter{
			{Name: "pin", Type: quill.TypeBool, Kind: quill.ParamSwitch},
			{Name: "tag", Type: quill.TypeString, Kind: quill.ParamFlag, Optional: true, Default: ""},
			{Name: "text", Type: quill.TypeString, Greedy: true},
		},
		Invoker: func(inv *quill.Invocation) (any, error) {
			notes := mustStore(inv)
			note, err := notes.Add(inv.Args[2].(string), inv.Args[1].(string), inv.Args[0].(bool))
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("added note %s", shortID(note.ID)), nil
		},
	})

	mustRegister(h, &quill.Command{
		Path:    quill.ParsePath("note list"),
		Summary: "List notes, newest first",
		Usage:   "note list [--tag <tag>] [--limit <n>]",
		Parameters: []*quill.Parameter{
			{Name: "tag", Type: quill.TypeString, Kind: quill.ParamFlag, Optional: true, Default: ""},
			{Name: "limit", Type: quill.TypeInt, Kind: quill.ParamFlag, Optional: true, Default: defaultListLimit},
		},
		Invoker: func(inv *quill.Invocation) (any, error) {
			notes, err := mustStore(inv).List(inv.Args[0].(string), inv.Args[1].(int))
			if err != nil {
				return nil, err
			}
			if len(notes) == 0 {
				inv.Actor.Reply("no notes")
				return nil, nil
			}
			for _, n := range notes {
				line := fmt.Sprintf("%s  %s", shortID(n.ID), n.Text)
				if n.Tag != "" {
					line += fmt.Sprintf("  [%s]", n.Tag)
				}
				if n.Pinned {
					line += "  *"
				}
				inv.Actor.Reply(line)
			}
			return nil, nil
		},
	})

	mustRegister(h, &quill.Command{
		Path:         quill.ParsePath("note remove"),
		Summary:      "Remove a note by ID",
		Usage:        "note remove <id>",
		ResponseType: typeMessage,
		Parameters: []*quill.Parameter{
			{
				Name: "id",
				Type: quill.TypeString,
				Suggestions: quill.ProviderFunc(func(_ []string, _ quill.Actor, _ *quill.Command) []string {
					notes, err := st.List("", defaultListLimit)
					if err != nil {
						return nil
					}
					ids := make([]string, 0, len(notes))
					for _, n := range notes {
						ids = append(ids, n.ID.String())
					}
					return ids
				}),
			},
		},
		Invoker: func(inv *quill.Invocation) (any, error) {
			id, err := uuid.Parse(inv.Args[0].(string))
			if err != nil {
				return nil, fmt.Errorf("'%s' is not a note id", inv.Args[0])
			}
			removed, err := mustStore(inv).Remove(id)
			if err != nil {
				return nil, err
			}
			if !removed {
				return nil, fmt.Errorf("no note with id %s", shortID(id))
			}
			return fmt.Sprintf("removed note %s", shortID(id)), nil
		},
	})

	mustRegister(h, &quill.Command{
		Path:         quill.ParsePath("note count"),
		Summary:      "Count stored notes",
		ResponseType: typeMessage,
		Invoker: func(inv *quill.Invocation) (any, error) {
			n, err := mustStore(inv).Count()
			if err != nil {
				return nil, err
			}
			return fmt.Sprintf("%d notes", n), nil
		},
	})

	mustRegister(h, &quill.Command{
		Path:         quill.ParsePath("admin wipe"),
		Summary:      "Remove every note",
		ResponseType: typeMessage,
		Permission: quill.PermissionFunc(func(actor quill.Actor) bool {
			return actor.Name() == "admin"
		}),
		Invoker: func(inv *quill.Invocation) (any, error) {
			notes := mustStore(inv)
			all, err := notes.List("", 1<<30)
			if err != nil {
				return nil, err
			}
			for _, n := range all {
				if _, err := notes.Remove(n.ID); err != nil {
					return nil, err
				}
			}
			return fmt.Sprintf("wiped %d notes", len(all)), nil
		},
	})
}

func mustRegister(h *quill.Handler, cmd *quill.Command) {
	if err := h.Register(cmd); err != nil {
		panic(fmt.Sprintf("register %s: %v", cmd.Path, err))
	}
}

func mustStore(inv *quill.Invocation) *store.Store {
	dep, ok := inv.Dependencies.Resolve(depStore)
	if !ok {
		panic("note store dependency not registered")
	}
	return dep.(*store.Store)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
