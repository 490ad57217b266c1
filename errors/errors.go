// Package errors provides error handling for padgen.
//
// This package re-exports github.com/cockroachdb/errors so every package
// gets stack traces, wrapping and user-facing hints from one import:
//
//	if err := os.WriteFile(path, data, 0644); err != nil {
//	    return errors.Wrapf(err, "write %s", path)
//	}
//
//	return errors.WithHint(err, "lower generation.package_count")
//
// Two sentinels classify failures the CLI reports differently. Use Mark to
// tag an error and Is to test for the tag:
//
//	return errors.Mark(errors.Newf("bad prefix %q", p), errors.ErrInvalidConfig)
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Mark          = crdb.Mark
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	CombineErrors = crdb.CombineErrors
)

var (
	// ErrInvalidConfig marks caller-supplied settings that cannot produce a
	// well-formed module (negative counts, illegal package names, ...).
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrNamesExhausted marks a regeneration loop that hit its attempt cap
	// without producing a legal, unclaimed identifier.
	ErrNamesExhausted = crdb.New("identifier attempts exhausted")
)

// InvalidConfigf builds an error marked as ErrInvalidConfig.
func InvalidConfigf(format string, args ...interface{}) error {
	return crdb.Mark(crdb.Newf(format, args...), ErrInvalidConfig)
}
