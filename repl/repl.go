// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/eval/print loop for calendar scripts.
//
// It supports readline-style command editing, completion of the
// predeclared names and their attributes, and interrupts through
// Control-C.
//
// If an input line can be parsed as an expression, the REPL evaluates it
// and prints its result. Otherwise the REPL reads lines until a blank
// line and executes them as statements, for side effects.
package repl // import "go.calclock.dev/repl"

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/chzyer/readline"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var interrupted = make(chan os.Signal, 1)

// Options configures a REPL. The zero value is usable.
type Options struct {
	Prompt      string // default ">>> "
	HistoryFile string // no history is saved if empty
}

// REPL executes a read, eval, print loop on the terminal.
//
// Before evaluating each item, it sets the thread local variable named
// "context" to a context.Context that is cancelled by a SIGINT
// (Control-C).
func REPL(thread *starlark.Thread, globals starlark.StringDict, opts Options) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	if opts.Prompt == "" {
		opts.Prompt = ">>> "
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          opts.Prompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    Completer(globals),
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		PrintError(os.Stderr, err)
		return
	}
	defer rl.Close()

	for {
		rl.SetPrompt(opts.Prompt)
		read := func() ([]byte, error) {
			line, err := rl.Readline()
			rl.SetPrompt("... ")
			if err != nil {
				return nil, err
			}
			return []byte(line + "\n"), nil
		}
		if err := rep(read, thread, globals, rl.Stdout(), rl.Stderr()); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, evaluates, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt or io.EOF) only if
// read failed. Evaluation errors are printed to stderr.
func rep(read func() ([]byte, error), thread *starlark.Thread, globals starlark.StringDict, stdout, stderr io.Writer) error {
	// Each item gets its own context, which is cancelled by a SIGINT.
	//
	// Note: during Readline calls, Control-C causes Readline to return
	// ErrInterrupt but does not generate a SIGINT.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupted:
			cancel()
		case <-ctx.Done():
		}
	}()

	thread.SetLocal("context", ctx)

	var readErr error
	readline := func() ([]byte, error) {
		line, err := read()
		if err != nil {
			readErr = err
		}
		return line, err
	}

	f, err := syntax.ParseCompoundStmt("<stdin>", readline)
	if err != nil {
		if readErr != nil {
			return readErr
		}
		PrintError(stderr, err)
		return nil
	}

	// Treat load bindings as global in the REPL.
	defer func(prev bool) { resolve.LoadBindsGlobally = prev }(resolve.LoadBindsGlobally)
	resolve.LoadBindsGlobally = true

	if expr := soleExpr(f); expr != nil {
		v, err := starlark.EvalExpr(thread, expr, globals)
		if err != nil {
			PrintError(stderr, err)
			return nil
		}
		if v != starlark.None {
			fmt.Fprintln(stdout, v)
		}
	} else if err := starlark.ExecREPLChunk(f, thread, globals); err != nil {
		PrintError(stderr, err)
	}
	return nil
}

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// PrintError prints err to w, or its backtrace if it is a Starlark
// evaluation error.
func PrintError(w io.Writer, err error) {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		fmt.Fprintln(w, evalErr.Backtrace())
	} else {
		fmt.Fprintln(w, err)
	}
}

// Names returns the completion candidates for globals: each name, and
// "name.attr" for each attribute of a value with attributes, such as
// "calendar.date".
func Names(globals starlark.StringDict) []string {
	var names []string
	for name, v := range globals {
		names = append(names, name)
		if v, ok := v.(starlark.HasAttrs); ok {
			for _, attr := range v.AttrNames() {
				names = append(names, name+"."+attr)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Completer returns a readline completer for Names(globals).
func Completer(globals starlark.StringDict) readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, name := range Names(globals) {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// MakeLoad returns a simple sequential implementation of module loading
// suitable for use in the REPL. predeclared is made available to every
// loaded file, and setup, if non-nil, configures the thread that loads
// it. Each function returned by MakeLoad accesses a distinct private
// cache.
func MakeLoad(predeclared starlark.StringDict, setup func(*starlark.Thread)) func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	type entry struct {
		globals starlark.StringDict
		err     error
	}

	var cache = make(map[string]*entry)

	return func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
		e, ok := cache[module]
		if e == nil {
			if ok {
				// request for package whose loading is in progress
				return nil, fmt.Errorf("cycle in load graph")
			}

			// Add a placeholder to indicate "load in progress".
			cache[module] = nil

			child := &starlark.Thread{Name: "exec " + module, Load: thread.Load}
			if setup != nil {
				setup(child)
			}
			globals, err := starlark.ExecFile(child, module, nil, predeclared)
			e = &entry{globals, err}

			cache[module] = e
		}
		return e.globals, e.err
	}
}
