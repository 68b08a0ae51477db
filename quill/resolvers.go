package quill

import (
	"fmt"
	"strconv"
	"time"

	"github.com/quill-tools/quill/args"
)

// Built-in type tags covered by the default value resolvers.
const (
	TypeString   = "string"
	TypeInt      = "int"
	TypeInt64    = "int64"
	TypeFloat64  = "float64"
	TypeBool     = "bool"
	TypeDuration = "duration"
	TypeDate     = "date"
)

const dateLayout = "2006-01-02"

// registerBuiltins installs the default single-token value resolvers for
// primitive types.
func registerBuiltins(r *Registry) {
	r.RegisterValue(TypeString, func(stack *args.Stack, _ *ResolveContext) (any, error) {
		tok, _ := stack.Pop()
		return tok, nil
	})
	r.RegisterValue(TypeInt, func(stack *args.Stack, _ *ResolveContext) (any, error) {
		tok, _ := stack.Pop()
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid integer", tok)
		}
		return n, nil
	})
	r.RegisterValue(TypeInt64, func(stack *args.Stack, _ *ResolveContext) (any, error) {
		tok, _ := stack.Pop()
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid integer", tok)
		}
		return n, nil
	})
	r.RegisterValue(TypeFloat64, func(stack *args.Stack, _ *ResolveContext) (any, error) {
		tok, _ := stack.Pop()
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid number", tok)
		}
		return f, nil
	})
	r.RegisterValue(TypeBool, func(stack *args.Stack, _ *ResolveContext) (any, error) {
		tok, _ := stack.Pop()
		b, err := strconv.ParseBool(tok)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid boolean", tok)
		}
		return b, nil
	})
	r.RegisterValue(TypeDuration, func(stack *args.Stack, _ *ResolveContext) (any, error) {
		tok, _ := stack.Pop()
		d, err := time.ParseDuration(tok)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid duration", tok)
		}
		return d, nil
	})
	r.RegisterValue(TypeDate, func(stack *args.Stack, _ *ResolveContext) (any, error) {
		tok, _ := stack.Pop()
		t, err := time.Parse(dateLayout, tok)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid date (expected YYYY-MM-DD)", tok)
		}
		return t, nil
	})
}
