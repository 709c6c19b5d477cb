// Package match provides predicates that identify rules by their
// structural signature: the text of their `test` pattern, the loader they
// name, or a CEL expression evaluated against the rule.
package match
