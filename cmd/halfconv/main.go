// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command halfconv converts values to and from IEEE 754 binary16.
//
// Usage:
//
//	halfconv narrow 1 65520 2e-9          # decimal -> binary16, with raised conditions
//	halfconv -width 32 narrow 0.1         # round through float32 first
//	halfconv -nan quiet narrow NaN
//	halfconv widen 0x3C00 7BFF 0x0001     # binary16 -> float32/float64 encodings
//	halfconv info                         # CPU conversion support
//
// Conditions cover the whole decimal -> binary16 path: a literal outside the
// float range reports overflow, and a nonzero literal that parses to zero
// reports underflow. Raised conditions are logged as warnings on stderr. With -strict, overflow,
// underflow or invalid makes the command exit with status 2.
// HALFCONV_LOG_LEVEL sets the log level (debug, info, warn, error).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ajroetker/go-half/half"
)

// errStrict reports that a value raised a condition -strict rejects.
var errStrict = errors.New("conversion raised a rejected condition")

// strictConditions are the conditions -strict treats as failures.
const strictConditions = half.Overflow | half.Underflow | half.Invalid

type options struct {
	width  int
	policy half.NaNPolicy
	strict bool
}

func main() {
	logger := newLogger(os.Stderr, os.Getenv("HALFCONV_LOG_LEVEL"))

	err := run(os.Args[1:], os.Stdout, logger)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errStrict):
		logger.Error().Err(err).Msg("halfconv failed")
		os.Exit(2)
	default:
		logger.Error().Err(err).Msg("halfconv failed")
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()
}

func run(args []string, stdout io.Writer, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("halfconv", flag.ContinueOnError)
	width := fs.Int("width", 64, "Parse narrow inputs as float32 (32) or float64 (64)")
	nan := fs.String("nan", half.NaNPreserve.String(), "NaN policy: preserve, quiet or canonical")
	strict := fs.Bool("strict", false, "Fail on overflow, underflow or invalid")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: halfconv [flags] narrow|widen|info [values...]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *width != 32 && *width != 64 {
		return fmt.Errorf("invalid -width %d: want 32 or 64", *width)
	}
	policy, err := half.ParseNaNPolicy(*nan)
	if err != nil {
		return fmt.Errorf("invalid -nan: %w", err)
	}
	opts := options{width: *width, policy: policy, strict: *strict}

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}
	cmd, values := fs.Arg(0), fs.Args()[1:]
	logger.Debug().Str("command", cmd).Int("width", opts.width).Stringer("nan", opts.policy).Msg("starting")

	switch cmd {
	case "narrow":
		return narrow(values, opts, stdout, logger)
	case "widen":
		return widen(values, stdout)
	case "info":
		return info(stdout)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func narrow(values []string, opts options, stdout io.Writer, logger zerolog.Logger) error {
	conv := half.Converter{NaN: opts.policy}
	var status half.Status
	for _, s := range values {
		f, err := strconv.ParseFloat(s, opts.width)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("parsing %q: %w", s, err)
		}

		var h half.Float16
		var cond half.Condition
		if opts.width == 32 {
			h, cond = conv.Narrow32(float32(f))
		} else {
			h, cond = conv.Narrow64(f)
		}
		cond |= parseConditions(s, f, err)
		status.Raise(cond)

		if cond != half.NoCondition {
			logger.Warn().Str("input", s).Str("result", h.String()).Stringer("conditions", cond).Msg("conversion raised conditions")
		}
		fmt.Fprintf(stdout, "%s\t0x%04X\t%v\t%v\n", s, h, h, cond)
	}

	if rejected := status.Test(strictConditions); opts.strict && rejected != half.NoCondition {
		return fmt.Errorf("%w: %v", errStrict, rejected)
	}
	return nil
}

// parseConditions reports what decimal parsing already lost: a literal
// beyond the float range became an infinity, and a nonzero literal below it
// became zero.
func parseConditions(s string, f float64, err error) half.Condition {
	switch {
	case errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0):
		return half.Overflow | half.Inexact
	case f == 0 && nonzeroLiteral(s):
		return half.Underflow | half.Inexact
	}
	return half.NoCondition
}

// nonzeroLiteral reports whether the significand of a ParseFloat literal has
// a nonzero digit.
func nonzeroLiteral(s string) bool {
	s = strings.ToLower(strings.TrimLeft(s, "+-"))
	digits, expMark := "123456789", "e"
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		s, digits, expMark = rest, "123456789abcdef", "p"
	}
	if i := strings.Index(s, expMark); i >= 0 {
		s = s[:i]
	}
	return strings.ContainsAny(s, digits)
}

func widen(values []string, stdout io.Writer) error {
	for _, s := range values {
		b, err := parseBits(s)
		if err != nil {
			return err
		}
		h := half.FromBits(b)
		fmt.Fprintf(stdout, "0x%04X\t%v\t0x%08X\t0x%016X\n", h, h, h.Widen(half.Binary32), h.Widen(half.Binary64))
	}
	return nil
}

func parseBits(s string) (uint16, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("parsing binary16 pattern %q: %w", s, err)
	}
	return uint16(b), nil
}

func info(stdout io.Writer) error {
	fmt.Fprintf(stdout, "dispatch: %s\n", half.CurrentName())
	fmt.Fprintf(stdout, "hardware conversion: %t\n", half.HasHardwareConversion())
	for _, f := range []half.Format{half.Binary16, half.Binary32, half.Binary64} {
		fmt.Fprintf(stdout, "%s: exponent %d bits, mantissa %d bits, bias %d\n",
			f, f.ExponentWidth, f.MantissaWidth, f.ExponentBias)
	}
	return nil
}
