// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"go.calclock.dev/calendar"
)

// Period is a Starlark representation of a period of years, months and
// days. Periods support == and != but are not ordered.
type Period calendar.Period

var (
	_ starlark.HasAttrs   = Period{}
	_ starlark.HasBinary  = Period{}
	_ starlark.HasUnary   = Period{}
	_ starlark.Comparable = Period{}
	_ starlark.Unpacker   = (*Period)(nil)
)

func (p Period) String() string       { return calendar.Period(p).String() }
func (p Period) Type() string         { return "calendar.period" }
func (p Period) Freeze()              {}
func (p Period) Truth() starlark.Bool { return starlark.Bool(!calendar.Period(p).IsZero()) }

func (p Period) Hash() (uint32, error) {
	return uint32(p.Years)*961 + uint32(p.Months)*31 + uint32(p.Days), nil
}

// Unpack accepts a period or its ISO-8601 text.
func (p *Period) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case Period:
		*p = v
		return nil
	case starlark.String:
		x, err := calendar.ParsePeriod(string(v))
		if err != nil {
			return err
		}
		*p = Period(x)
		return nil
	}
	return fmt.Errorf("got %s, want calendar.period", v.Type())
}

func (p Period) Attr(name string) (starlark.Value, error) {
	switch name {
	case "years":
		return starlark.MakeInt(p.Years), nil
	case "months":
		return starlark.MakeInt(p.Months), nil
	case "days":
		return starlark.MakeInt(p.Days), nil
	case "total_months":
		return starlark.MakeInt64(calendar.Period(p).TotalMonths()), nil
	case "is_negative":
		return starlark.Bool(calendar.Period(p).IsNegative()), nil
	}
	return builtinAttr(p, name, periodMethods)
}

func (p Period) AttrNames() []string {
	return builtinAttrNames(periodMethods, "years", "months", "days", "total_months", "is_negative")
}

func (p Period) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	y := yV.(Period)
	switch op {
	case syntax.EQL:
		return p == y, nil
	case syntax.NEQ:
		return p != y, nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", p.Type(), op, y.Type())
}

func (p Period) Unary(op syntax.Token) (starlark.Value, error) {
	switch op {
	case syntax.MINUS:
		return Period(calendar.Period(p).Negated()), nil
	case syntax.PLUS:
		return p, nil
	}
	return nil, nil
}

func (p Period) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := calendar.Period(p)
	switch y := y.(type) {
	case Period:
		switch op {
		case syntax.PLUS:
			return Period(x.Plus(calendar.Period(y))), nil
		case syntax.MINUS:
			if side == starlark.Right {
				return Period(calendar.Period(y).Minus(x)), nil
			}
			return Period(x.Minus(calendar.Period(y))), nil
		}
	case starlark.Int:
		if op == syntax.STAR {
			n, err := starlark.AsInt32(y)
			if err != nil {
				return nil, err
			}
			return Period(x.MultipliedBy(n)), nil
		}
	}
	return nil, nil
}

var periodMethods = map[string]builtinMethod{
	"normalized": periodNormalized,
}

func periodNormalized(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return Period(calendar.Period(recV.(Period)).Normalized()), nil
}

// Duration is a Starlark representation of an exact amount of time.
type Duration calendar.Duration

var (
	_ starlark.HasAttrs   = Duration{}
	_ starlark.HasBinary  = Duration{}
	_ starlark.HasUnary   = Duration{}
	_ starlark.Comparable = Duration{}
	_ starlark.Unpacker   = (*Duration)(nil)
)

func (d Duration) String() string       { return calendar.Duration(d).String() }
func (d Duration) Type() string         { return "calendar.duration" }
func (d Duration) Freeze()              {}
func (d Duration) Truth() starlark.Bool { return starlark.Bool(!calendar.Duration(d).IsZero()) }

func (d Duration) Hash() (uint32, error) {
	x := calendar.Duration(d)
	return hash64(x.Seconds()) ^ uint32(x.Nano()), nil
}

// Unpack accepts a duration, an ISO-8601 or Go duration string, or an
// integer number of nanoseconds.
func (d *Duration) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case Duration:
		*d = v
		return nil
	case starlark.String:
		x, err := calendar.ParseDuration(string(v))
		if err != nil {
			return err
		}
		*d = Duration(x)
		return nil
	case starlark.Int:
		n, ok := v.Int64()
		if !ok {
			return fmt.Errorf("duration of %s nanoseconds overflows", v)
		}
		*d = Duration(calendar.Nanoseconds(n))
		return nil
	}
	return fmt.Errorf("got %s, want calendar.duration", v.Type())
}

func (d Duration) Attr(name string) (starlark.Value, error) {
	x := calendar.Duration(d)
	switch name {
	case "seconds":
		return starlark.MakeInt64(x.Seconds()), nil
	case "nanos":
		return starlark.MakeInt(x.Nano()), nil
	case "days":
		return starlark.MakeInt64(x.ToDays()), nil
	case "hours":
		return starlark.MakeInt64(x.ToHours()), nil
	case "minutes":
		return starlark.MakeInt64(x.ToMinutes()), nil
	case "is_negative":
		return starlark.Bool(x.IsNegative()), nil
	}
	return builtinAttr(d, name, durationMethods)
}

func (d Duration) AttrNames() []string {
	return builtinAttrNames(durationMethods, "seconds", "nanos", "days", "hours", "minutes", "is_negative")
}

func (d Duration) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	return threeway(op, calendar.Duration(d).Compare(calendar.Duration(yV.(Duration)))), nil
}

func (d Duration) Unary(op syntax.Token) (starlark.Value, error) {
	switch op {
	case syntax.MINUS:
		return Duration(calendar.Duration(d).Neg()), nil
	case syntax.PLUS:
		return d, nil
	}
	return nil, nil
}

func (d Duration) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := calendar.Duration(d)
	switch y := y.(type) {
	case Duration:
		switch op {
		case syntax.PLUS:
			return Duration(x.Add(calendar.Duration(y))), nil
		case syntax.MINUS:
			if side == starlark.Right {
				return Duration(calendar.Duration(y).Sub(x)), nil
			}
			return Duration(x.Sub(calendar.Duration(y))), nil
		}
	case starlark.Int:
		if op == syntax.STAR {
			n, ok := y.Int64()
			if !ok {
				return nil, fmt.Errorf("duration multiplier %s overflows", y)
			}
			return Duration(x.Mul(n)), nil
		}
	}
	return nil, nil
}

var durationMethods = map[string]builtinMethod{
	"total_nanoseconds": durationTotalNanoseconds,
	"abs":               durationAbs,
}

func durationTotalNanoseconds(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	n, ok := calendar.Duration(recV.(Duration)).TotalNanoseconds()
	if !ok {
		return nil, fmt.Errorf("%s: %s overflows int64 nanoseconds", fnname, recV)
	}
	return starlark.MakeInt64(n), nil
}

func durationAbs(_ *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return Duration(calendar.Duration(recV.(Duration)).Abs()), nil
}
