package intent

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrInvalidQuery is returned when a query expression does not compile to a
// boolean program.
var ErrInvalidQuery = errors.New("invalid intent query")

// Query is a compiled boolean filter over intents, written in expr-lang.
// An expression sees three variables:
//
//	action         the intent type, e.g. "SET_ANNOTATION"
//	annotation_id  the annotation the intent names, or ""
//	payload        the JSON form of the payload as a map
//
// Example:
//
//	action == "SET_ANNOTATION" && payload.x > 100
type Query struct {
	source  string
	program *vm.Program
}

// CompileQuery compiles source into a Query.
func CompileQuery(source string) (*Query, error) {
	program, err := expr.Compile(source,
		expr.Env(queryEnv{}.vars()),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	return &Query{source: source, program: program}, nil
}

// String returns the query source.
func (q *Query) String() string {
	return q.source
}

// Match evaluates the query against in.
func (q *Query) Match(in Intent) (bool, error) {
	env, err := newQueryEnv(in)
	if err != nil {
		return false, err
	}

	out, err := expr.Run(q.program, env.vars())
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", q.source, err)
	}

	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: result is %T, not bool", ErrInvalidQuery, out)
	}
	return matched, nil
}

// Select returns the intents of ins that match the query, in order.
func (q *Query) Select(ins []Intent) ([]Intent, error) {
	var out []Intent
	for _, in := range ins {
		ok, err := q.Match(in)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, in)
		}
	}
	return out, nil
}

type queryEnv struct {
	typ          string
	annotationID string
	payload      map[string]any
}

func newQueryEnv(in Intent) (queryEnv, error) {
	env := queryEnv{
		typ:          string(in.Type),
		annotationID: string(in.AnnotationID()),
		payload:      map[string]any{},
	}

	if in.Payload == nil {
		return env, nil
	}

	data, err := json.Marshal(in.Payload)
	if err != nil {
		return env, fmt.Errorf("marshaling %s payload: %w", in.Type, err)
	}
	if err := json.Unmarshal(data, &env.payload); err != nil {
		return env, fmt.Errorf("unmarshaling %s payload: %w", in.Type, err)
	}
	return env, nil
}

func (e queryEnv) vars() map[string]any {
	payload := e.payload
	if payload == nil {
		payload = map[string]any{}
	}
	return map[string]any{
		"action":        e.typ,
		"annotation_id": e.annotationID,
		"payload":       payload,
	}
}
