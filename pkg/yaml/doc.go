// Package yaml wraps [github.com/goccy/go-yaml] for reading rule trees and
// configuration files, and reports errors with their source position.
package yaml
