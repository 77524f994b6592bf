// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The calclock command evaluates calendar scripts.
//
// With no arguments and a terminal on standard input, it starts a
// read-eval-print loop (REPL). With -c or a file argument it executes
// that program; otherwise it executes the program read from standard
// input. The predeclared module "calendar" provides dates, times, zones,
// periods, durations and formatting.
package main // import "go.calclock.dev/cmd/calclock"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"go.starlark.net/starlark"
	"golang.org/x/term"

	"go.calclock.dev/internal/config"
	libcalendar "go.calclock.dev/lib/calendar"
	"go.calclock.dev/repl"
	"go.calclock.dev/tzdb"
)

// flags
var (
	cpuprofile = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	memprofile = flag.String("memprofile", "", "gather Go memory profile in this file")
	profile    = flag.String("profile", "", "gather Starlark time profile in this file")
	showenv    = flag.Bool("showenv", false, "on success, print final global environment")
	execprog   = flag.String("c", "", "execute program `prog`")
	zone       = flag.String("zone", "", "zone id of the current time (overrides CALCLOCK_ZONE)")
	locale     = flag.String("locale", "", "locale of styled formats (overrides CALCLOCK_LOCALE)")
	history    = flag.String("history", defaultHistory(), "REPL history `file`; empty disables history")
)

func defaultHistory() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calclock", "history")
}

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("calclock: ")
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: calclock [flags] [file]\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\n%s", config.Usage())
	}
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		check(err)
		err = pprof.StartCPUProfile(f)
		check(err)
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			check(err)
		}()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		check(err)
		defer func() {
			runtime.GC()
			err := pprof.Lookup("heap").WriteTo(f, 0)
			check(err)
			err = f.Close()
			check(err)
		}()
	}
	if *profile != "" {
		f, err := os.Create(*profile)
		check(err)
		err = starlark.StartProfile(f)
		check(err)
		defer func() {
			err := starlark.StopProfile()
			check(err)
		}()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Print(err)
		return 1
	}
	if *zone != "" {
		cfg.Zone = *zone
	}
	if *locale != "" {
		cfg.Locale = *locale
	}
	setup, err := threadSetup(cfg)
	if err != nil {
		log.Print(err)
		return 1
	}

	predeclared := starlark.StringDict{libcalendar.ModuleName: libcalendar.Module}
	thread := &starlark.Thread{Load: repl.MakeLoad(predeclared, setup)}
	setup(thread)
	var globals starlark.StringDict

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      interface{}
		)
		if *execprog != "" {
			// Execute provided program.
			filename = "cmdline"
			src = *execprog
		} else {
			// Execute specified file.
			filename = flag.Arg(0)
		}
		thread.Name = "exec " + filename
		globals, err = starlark.ExecFile(thread, filename, src, predeclared)
		if err != nil {
			repl.PrintError(os.Stderr, err)
			return 1
		}
	case flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())):
		fmt.Println("calclock: type calendar.<Tab> for the module's functions")
		thread.Name = "REPL"
		globals = predeclared
		if *history != "" {
			if err := os.MkdirAll(filepath.Dir(*history), 0o755); err != nil {
				log.Print(err)
				*history = ""
			}
		}
		repl.REPL(thread, globals, repl.Options{HistoryFile: *history})
	case flag.NArg() == 0:
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Print(err)
			return 1
		}
		thread.Name = "exec <stdin>"
		globals, err = starlark.ExecFile(thread, "<stdin>", src, predeclared)
		if err != nil {
			repl.PrintError(os.Stderr, err)
			return 1
		}
	default:
		log.Print("want at most one script file name")
		return 1
	}

	// Print the global environment.
	if *showenv {
		for _, name := range globals.Keys() {
			if !strings.HasPrefix(name, "_") {
				fmt.Fprintf(os.Stderr, "%s = %s\n", name, globals[name])
			}
		}
	}

	return 0
}

// threadSetup returns a function applying the configured clock, zones,
// locale and zone catalog to a thread.
func threadSetup(cfg config.Config) (func(*starlark.Thread), error) {
	zones := tzdb.New()
	c, err := cfg.Clock(zones)
	if err != nil {
		return nil, err
	}
	tag, err := cfg.LocaleTag()
	if err != nil {
		return nil, err
	}
	catalog := cfg.Catalog()
	return func(thread *starlark.Thread) {
		libcalendar.SetClock(thread, c)
		libcalendar.SetZones(thread, zones)
		libcalendar.SetLocale(thread, tag)
		libcalendar.SetCatalog(thread, catalog)
	}, nil
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
