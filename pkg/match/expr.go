package match

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/macropower/rewire/pkg/expr"
	"github.com/macropower/rewire/pkg/rules"
)

var celEnv = sync.OnceValues(func() (*expr.Environment, error) {
	return expr.NewEnvironment()
})

type exprMatcher struct {
	program    cel.Program
	expression string
}

// Expr compiles a CEL expression into a [Matcher]. See [expr] for the
// variables and functions available.
//
// Expressions that fail to evaluate for a rule (for example because they
// read a field the rule does not have) do not match it.
func Expr(expression string) (Matcher, error) {
	env, err := celEnv()
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	program, err := env.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("matcher %q: %w", expression, err)
	}

	return exprMatcher{program: program, expression: expression}, nil
}

// MustExpr is like [Expr] but panics on error.
func MustExpr(expression string) Matcher {
	m, err := Expr(expression)
	if err != nil {
		panic(err)
	}

	return m
}

func (m exprMatcher) Match(r *rules.Rule) bool {
	ok, err := expr.EvalBool(m.program, r)
	if err != nil {
		slog.Debug("expression did not match",
			slog.String("expression", m.expression),
			slog.Any("err", err),
		)

		return false
	}

	return ok
}

func (m exprMatcher) String() string {
	return m.expression
}
