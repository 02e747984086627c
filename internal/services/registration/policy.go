package registration

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

// Policy is a compiled CEL admission rule over username, fullname, age and
// address. The zero Policy admits everything.
type Policy struct {
	prog    cel.Program
	expr    string
	enabled bool
}

// CompilePolicy parses and type-checks expr. The expression must yield a bool.
func CompilePolicy(expr string) (Policy, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Policy{}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("username", cel.StringType),
		cel.Variable("fullname", cel.StringType),
		cel.Variable("age", cel.IntType),
		cel.Variable("address", cel.StringType),
	)
	if err != nil {
		return Policy{}, err
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return Policy{}, fmt.Errorf("registration: policy %q: %w", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return Policy{}, fmt.Errorf("registration: policy %q yields %s, want bool", expr, ast.OutputType())
	}
	prog, err := env.Program(ast)
	if err != nil {
		return Policy{}, err
	}
	return Policy{prog: prog, expr: expr, enabled: true}, nil
}

// Enabled reports whether the policy carries an expression.
func (p Policy) Enabled() bool { return p.enabled }

// String returns the source expression.
func (p Policy) String() string { return p.expr }

// Admit evaluates the policy for req. Evaluation errors count as a refusal.
func (p Policy) Admit(req Request) (bool, error) {
	if !p.enabled {
		return true, nil
	}
	out, _, err := p.prog.Eval(map[string]any{
		"username": req.Username,
		"fullname": req.Fullname,
		"age":      int64(req.Age),
		"address":  req.Address,
	})
	if err != nil {
		return false, err
	}
	b, ok := out.Value().(bool)
	return ok && b, nil
}
