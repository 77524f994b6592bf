// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the environment settings shared by the commands.
package config // import "go.calclock.dev/internal/config"

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/language"

	"go.calclock.dev/calendar"
	"go.calclock.dev/clock"
	"go.calclock.dev/tzdb"
)

// Config holds the CALCLOCK_* environment settings.
type Config struct {
	Zone     string `env:"CALCLOCK_ZONE" env-description:"zone id used for the current time; default is the system zone"`
	Locale   string `env:"CALCLOCK_LOCALE" env-default:"en-US" env-description:"BCP 47 tag of the locale for styled formats"`
	ZoneInfo string `env:"CALCLOCK_ZONEINFO" env-default:"/usr/share/zoneinfo" env-description:"root of the zoneinfo tree listed by zones()"`
	Zones    string `env:"CALCLOCK_ZONES" env-default:"**" env-description:"glob selecting the zone ids listed by zones()"`
	Now      string `env:"CALCLOCK_NOW" env-description:"fixed current time, as 2022-02-01T10:15:30 or with an offset and [zone]"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Usage describes the environment variables.
func Usage() string {
	header := "Environment variables:"
	s, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return header
	}
	return s
}

// LocaleTag parses the configured locale.
func (c Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("CALCLOCK_LOCALE: %w", err)
	}
	return tag, nil
}

// Clock returns the clock the commands read: the system clock, or a
// fixed one if CALCLOCK_NOW is set, in CALCLOCK_ZONE if that is set.
func (c Config) Clock(zones calendar.ZoneDB) (calendar.Clock, error) {
	if c.Now == "" {
		return clock.WithZone(clock.System{}, c.Zone), nil
	}
	local, err := calendar.ParseDateTime(c.Now)
	if err != nil {
		if !hasOffset(c.Now) {
			return nil, fmt.Errorf("CALCLOCK_NOW: %w", err)
		}
		z, err := calendar.ParseZoned(c.Now, zones)
		if err != nil {
			return nil, fmt.Errorf("CALCLOCK_NOW: %w", err)
		}
		id := c.Zone
		if id == "" {
			id = z.ZoneID()
		}
		return clock.Fixed{Instant: z.Instant(), Zone: id}, nil
	}
	id := c.Zone
	if id == "" {
		id = clock.System{}.ZoneID()
	}
	fixed, err := clock.At(local, id, zones)
	if err != nil {
		return nil, fmt.Errorf("CALCLOCK_NOW: %w", err)
	}
	return fixed, nil
}

// hasOffset reports whether text carries an offset or zone after its
// time of day, as in "10:15:30+01:00" or "10:15:30Z[UTC]".
func hasOffset(text string) bool {
	i := strings.IndexAny(text, "Tt")
	if i < 0 {
		return strings.ContainsRune(text, '[')
	}
	return strings.ContainsAny(text[i:], "+-Zz[")
}

// Catalog returns the zone catalog rooted at CALCLOCK_ZONEINFO.
func (c Config) Catalog() *tzdb.Catalog { return tzdb.SystemCatalog(c.ZoneInfo) }
