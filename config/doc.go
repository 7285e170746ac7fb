// Package config loads and validates the demo harness configuration from
// config.yaml and environment variables. The breaker library itself takes
// its configuration through options; this package only feeds the sample
// caller in cmd/flakycaller.
package config
