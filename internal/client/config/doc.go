// Package config loads runtime configuration for the AutoKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the AutoKeeper HTTP API
//	-f string   path of the local session database
//	-w int      request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "session_db": ".autokeeper/session.db",
//	  "request_timeout": "10s"
//	}
package config
