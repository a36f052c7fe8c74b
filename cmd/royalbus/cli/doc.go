// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the royalbus CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/royalbus/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Errors returned from command handlers are classified with
// [CommandError] categories, which the main function maps to distinct
// exit codes for scripting. [ExitError] signals a non-zero exit with no
// message for commands whose output already says everything.
package cli
