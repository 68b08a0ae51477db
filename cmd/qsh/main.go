// qsh is a small note-taking shell built on the quill dispatch engine. Run
// with arguments for a one-shot dispatch, or without for an interactive
// prompt with tab completion.
package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/quill-tools/quill/internal/log"
	"github.com/quill-tools/quill/internal/shell"
	"github.com/quill-tools/quill/internal/store"
	"github.com/quill-tools/quill/internal/style"
)

var version = "dev"

func main() {
	opts, commandArgs := parseArgs(os.Args[1:])

	enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !opts.noColor
	style.Init(enableColor)

	logger, err := log.New(opts.logPath, log.ParseLevel(opts.logLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "qsh: open log: %v\n", err)
	}
	defer logger.Close()

	st, err := store.Open(opts.dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qsh: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	handler := shell.NewHandler(st, logger, version)
	actor := shell.NewActor(currentUserName())

	if len(commandArgs) > 0 {
		_, ok := handler.DispatchTokens(actor, commandArgs)
		for _, line := range actor.Drain() {
			if ok {
				fmt.Println(line)
			} else {
				fmt.Fprintln(os.Stderr, style.Error(line))
			}
		}
		if !ok {
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "qsh: no command given and stdin is not a terminal")
		os.Exit(1)
	}

	program := tea.NewProgram(shell.NewModel(handler, actor))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "qsh: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	dbPath   string
	logPath  string
	logLevel string
	noColor  bool
}

// parseArgs splits qsh's own options from the command tokens handed to the
// dispatcher. Everything after the first non-option token belongs to the
// command, so note texts may contain dashes.
func parseArgs(argv []string) (options, []string) {
	opts := options{
		dbPath:   defaultPath("notes.db"),
		logPath:  defaultPath("qsh.log"),
		logLevel: os.Getenv("QSH_LOG_LEVEL"),
	}

	i := 0
	for i < len(argv) {
		arg := argv[i]
		if !strings.HasPrefix(arg, "--") {
			break
		}
		switch arg {
		case "--no-color":
			opts.noColor = true
			i++
		case "--db":
			if i+1 < len(argv) {
				opts.dbPath = argv[i+1]
				i += 2
				continue
			}
			fmt.Fprintln(os.Stderr, "qsh: --db requires a path")
			os.Exit(2)
		case "--log":
			if i+1 < len(argv) {
				opts.logPath = argv[i+1]
				i += 2
				continue
			}
			fmt.Fprintln(os.Stderr, "qsh: --log requires a path")
			os.Exit(2)
		default:
			// Not a qsh option; hand it to the dispatcher as-is.
			return opts, argv[i:]
		}
	}
	return opts, argv[i:]
}

func defaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".qsh", name)
}

func currentUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}
