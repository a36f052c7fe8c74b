// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the royalbus
// client.
//
// Configuration is loaded from a single file specified by either the
// ROYALBUS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). The client ships working production defaults, so a
// config file is only needed to point at a different service or tune
// timeouts. An unset ROYALBUS_CONFIG is not an error.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with API, Payment, Session
//   - [Default] -- returns a Config pointed at the live service
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other royalbus packages.
package config
