package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/example/minjs/builtins"
	"github.com/example/minjs/interpreter"
	"github.com/example/minjs/parser"
)

const (
	appName     = "minjs"
	historyFile = ".minjs_history"
	prompt      = "js> "
)

func main() {
	expr := flag.String("e", "", "evaluate a single expression and print its value")
	storage := flag.String("storage", "", "SQLite file backing localStorage (default in-memory)")
	flag.Usage = usage
	flag.Parse()

	var opts []interpreter.Option
	opts = append(opts, interpreter.WithConsole(stdioSink()))
	if *storage != "" {
		opts = append(opts, interpreter.WithStoragePath(*storage))
	}
	ip := interpreter.New(opts...)
	defer ip.Close()

	switch {
	case *expr != "":
		os.Exit(cmdEval(ip, *expr))
	case flag.NArg() > 0:
		os.Exit(cmdRun(ip, flag.Arg(0)))
	default:
		os.Exit(cmdRepl(ip))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %s [flags]              Start the REPL.
  %s [flags] <file.js>    Run a script file.
  %s [flags] -e <expr>    Evaluate one expression.

Flags:
`, appName, appName, appName)
	flag.PrintDefaults()
}

// stdioSink routes console.log and console.info to stdout, console.warn and
// console.error to stderr.
func stdioSink() builtins.ConsoleSink {
	return builtins.WriterSink(func(level, line string) {
		if level == "warn" || level == "error" {
			fmt.Fprintln(os.Stderr, line)
			return
		}
		fmt.Println(line)
	})
}

func cmdEval(ip *interpreter.Interp, src string) int {
	v, err := ip.EvalString(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	if err := ip.Drive(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	fmt.Println(builtins.Inspect(v, 0))
	return 0
}

func cmdRun(ip *interpreter.Interp, file string) int {
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	if err := ip.RunScript(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func cmdRepl(ip *interpreter.Interp) int {
	fmt.Printf("%s REPL. Ctrl+D or :quit exits.\n", appName)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			fmt.Println()
			return 0
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" {
			return 0
		}
		ln.AppendHistory(line)

		out, evalErr := replLine(ip, line)
		if evalErr != nil {
			fmt.Fprintln(os.Stderr, evalErr.Error())
			continue
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}

// replLine first tries the input as a single expression so `1 + 2` echoes its
// value. Statement forms fail that parse and run as a script against the same
// persistent world instead.
func replLine(ip *interpreter.Interp, src string) (string, error) {
	v, err := ip.EvalString(src)
	if err == nil {
		if derr := ip.Drive(); derr != nil {
			return "", derr
		}
		return builtins.Inspect(v, 0), nil
	}
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		return "", err
	}
	if rerr := ip.RunScript(src); rerr != nil {
		return "", rerr
	}
	return "", nil
}
