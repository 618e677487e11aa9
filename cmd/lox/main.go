package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	lox "github.com/daios-ai/lox"
)

const (
	appName     = "lox"
	historyFile = ".lox_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("Lox %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", lox.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(lox.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Lox %s (built %s)

Usage:
  %s run <file.lox>    Run a script.
  %s repl              Start the REPL.
  %s version           Print the compiled version

`, lox.Version, lox.BuildDate, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

// File mode stops at the first statement-level runtime error or any syntax
// error: 65 for scan/parse failures, 70 for runtime failures (sysexits).
func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.lox>\n", appName)
		return 2
	}
	file := args[0]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	toks, lerr := lox.ScanSource(string(src))
	if lerr != nil {
		fmt.Fprintln(os.Stderr, lox.WrapErrorWithName(lerr, file, string(src)))
		return 65
	}

	stmts, perrs := lox.NewParser(toks).Parse()
	if len(perrs) > 0 {
		// all of them, not just the first
		for _, pe := range perrs {
			fmt.Fprintln(os.Stderr, lox.WrapErrorWithName(pe, file, string(src)))
		}
		return 65
	}

	ip := lox.NewInterpreter()
	if _, err := ip.Interpret(stmts); err != nil {
		fmt.Fprintln(os.Stderr, lox.WrapErrorWithName(err, file, string(src)))
		return 70
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// The REPL keeps one interpreter for the whole session: globals defined on
// earlier lines stay visible, and an error on one line never discards them.
func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := lox.NewInterpreter()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		v, err := ip.RunSource("<repl>", code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		if v.Tag != lox.VTNil {
			fmt.Println(blue(lox.FormatValue(v)))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe accumulates lines until the buffer parses, or fails with
// something other than an incomplete-input error.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := lox.ParseSourceInteractive(src)
		if perr == nil {
			return src, true
		}
		if lox.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
