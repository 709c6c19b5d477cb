// Package rules models a bundler's module-rule tree.
//
// A [Rule] is a tagged variant: a leaf rule, a chain rule (steps under `use`
// or a `loader` list), or a group rule (alternatives under `oneOf`). The
// children of any rule are reached through [Rule.Children], which returns
// the slot holding them so callers can splice in place.
package rules
