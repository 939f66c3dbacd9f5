// Package app wires the terminal, configuration, and editor core into
// the single-threaded event loop.
package app

import (
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/castlight/quill/internal/config"
	"github.com/castlight/quill/internal/editor"
	"github.com/castlight/quill/internal/gitinfo"
	"github.com/castlight/quill/internal/logger"
	"github.com/castlight/quill/internal/terminal"
	"github.com/castlight/quill/internal/theme"
)

// App is the top-level runtime for quill.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

// resizePending is the only state a resize signal touches; the main
// loop consumes it between events.
var resizePending int32

func (a *App) Run() error {
	debug := os.Getenv("QUILL_DEBUG") != ""
	if err := logger.Init(debug); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return err
	}
	themes := theme.NewRegistry(cfg.Editor.Theme)

	term := terminal.Open()
	if err := term.EnableRaw(); err != nil {
		return err
	}
	defer term.Restore()

	enterScreen(term)
	defer leaveScreen(term)

	rows, cols, err := term.Size()
	if err != nil {
		return err
	}

	sigwinch := make(chan os.Signal, 1)
	signal.Notify(sigwinch, syscall.SIGWINCH)
	go func() {
		for range sigwinch {
			atomic.StoreInt32(&resizePending, 1)
		}
	}()

	decoder := terminal.NewDecoder(term)
	ed := editor.New(cfg, langs, themes)
	ed.AttachTerminal(decoder, term)
	ed.SetScreenSize(rows, cols)

	if len(a.args) > 0 {
		if err := ed.Open(a.args[0]); err != nil {
			return err
		}
		ed.SetGitBranch(gitinfo.Branch(a.args[0]))
	} else if cwd, err := os.Getwd(); err == nil {
		ed.SetGitBranch(gitinfo.Branch(cwd))
	}

	ed.SetStatus("quill | Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")

	for {
		if atomic.SwapInt32(&resizePending, 0) != 0 {
			if rows, cols, err := term.Size(); err == nil {
				ed.SetScreenSize(rows, cols)
			}
		}
		ed.Refresh()

		key, err := decoder.ReadKey()
		if err != nil {
			if errors.Is(err, terminal.ErrTimeout) {
				continue
			}
			return err
		}
		if ed.ProcessKey(key) {
			logger.Info("clean exit")
			return nil
		}
	}
}

func enterScreen(term *terminal.Terminal) {
	_, _ = term.Write([]byte(terminal.MouseEnable))
	_, _ = term.Write([]byte(terminal.ClearScreen + terminal.CursorHome))
}

func leaveScreen(term *terminal.Terminal) {
	_, _ = term.Write([]byte(terminal.KittyCursorsClear + terminal.MouseDisable +
		terminal.ResetAttributes + terminal.ClearScreen + terminal.CursorHome + terminal.ShowCursor))
}
