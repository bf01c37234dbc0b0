// Package config handles configuration loading, parsing, and validation
// from a config file and EXPENSES_-prefixed environment variables. It gives
// type-safe access to the server, database and auth settings.
package config
