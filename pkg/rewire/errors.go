package rewire

import "github.com/macropower/rewire/pkg/rules"

var (
	ErrAnchorNotFound = rules.ErrAnchorNotFound
	ErrMalformedNode  = rules.ErrMalformedNode
)

type (
	AnchorNotFoundError = rules.AnchorNotFoundError
	MalformedNodeError  = rules.MalformedNodeError
)
