package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/macropower/rewire/pkg/rules"
)

// Protect CEL environment creation and compilation from concurrent access.
var celMutex sync.Mutex

var ErrNotBool = errors.New("expression did not return a boolean")

// Environment provides a thread-safe wrapper around a [*cel.Env].
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates a new [Environment].
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	env, err := createEnvironment(opts...)
	if err != nil {
		return nil, err
	}

	return &Environment{env: env}, nil
}

// MustNewEnvironment creates a new [Environment] and panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

func createEnvironment(opts ...cel.EnvOption) (*cel.Env, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	opts = append(opts, cel.Lib(&lib{}))

	celEnv, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return celEnv, nil
}

// Compile compiles a CEL expression and returns a program.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	if !ast.OutputType().IsAssignableType(cel.BoolType) {
		return nil, fmt.Errorf("compile expression: %w: got %s", ErrNotBool, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return program, nil
}

// Activation returns the variables for evaluating a program against r.
func Activation(r *rules.Rule) map[string]any {
	return map[string]any{
		"rule":   ConvertToCELValue(r.Map()),
		"test":   r.Test.String(),
		"loader": r.Loader,
		"kind":   r.Kind().String(),
	}
}

// EvalBool evaluates program against r. Evaluation errors and non-boolean
// results are reported as errors.
func EvalBool(program cel.Program, r *rules.Rule) (bool, error) {
	out, _, err := program.Eval(Activation(r))
	if err != nil {
		return false, fmt.Errorf("evaluate expression: %w", err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, ErrNotBool
	}

	return b, nil
}
