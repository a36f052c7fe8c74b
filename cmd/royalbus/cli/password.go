// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ReadPassword reads a password for a command. If passwordFile is
// empty or "-", prompts interactively on the terminal with echo
// disabled. Otherwise, reads the first line of the file path, which
// suits scripted use and secret-manager tempfiles.
func ReadPassword(passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		raw, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", Internal("read password file: %w", err)
		}
		password := strings.TrimRight(string(raw), "\r\n")
		if password == "" {
			return "", Validation("password file %s is empty", passwordFile)
		}
		return password, nil
	}
	return PromptPassword("Password: ")
}

// PromptPassword prompts on the terminal with echo disabled. Fails
// when stdin is not a terminal so scripts get a clear error instead of
// a hang.
func PromptPassword(label string) (string, error) {
	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return "", Validation("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, label)
	raw, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", Internal("read password: %w", err)
	}
	if len(raw) == 0 {
		return "", Validation("empty password")
	}
	return string(raw), nil
}
