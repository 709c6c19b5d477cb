// Package config provides configuration management for rewire.
//
// It loads, validates, and writes the YAML configuration file, and turns it
// into [rewire.Option]s.
package config
