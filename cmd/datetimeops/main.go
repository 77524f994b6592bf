// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The datetimeops command prints a walkthrough of constructing,
// comparing, adjusting, converting and formatting dates and times.
// It takes no arguments; see config.Usage for its environment.
package main // import "go.calclock.dev/cmd/datetimeops"

import (
	"bufio"
	"log"
	"os"

	"go.calclock.dev/internal/config"
	"go.calclock.dev/internal/demo"
	"go.calclock.dev/tzdb"
)

func main() {
	log.SetPrefix("datetimeops: ")
	log.SetFlags(0)
	if len(os.Args) > 1 {
		log.Fatalf("unexpected arguments %q\n%s", os.Args[1:], config.Usage())
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zones := tzdb.New()
	clk, err := cfg.Clock(zones)
	if err != nil {
		log.Fatal(err)
	}
	tag, err := cfg.LocaleTag()
	if err != nil {
		log.Fatal(err)
	}

	w := bufio.NewWriter(os.Stdout)
	err = demo.Run(w, demo.Env{
		Clock:       clk,
		Zones:       zones,
		Catalog:     cfg.Catalog(),
		ZonePattern: cfg.Zones,
		Locale:      tag,
	})
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		log.Fatal(err)
	}
}
