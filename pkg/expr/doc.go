// Package expr provides CEL (Common Expression Language) functionality
// for evaluating predicates against rule tree nodes.
//
// Expressions have access to variables:
//   - `rule` (map<string, dyn>): All fields of the rule, as written
//   - `test` (string): The rule's `test` pattern in canonical form
//   - `loader` (string): The rule's single loader identifier, or ""
//   - `kind` (string): One of "leaf", "chain" or "group"
//
// And to functions for path-like loader identifiers:
//   - hasSegment(path, name): true if name is a whole path segment of path
//   - pathBase, pathDir, pathExt: as in [path/filepath]
package expr
