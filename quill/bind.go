package quill

import (
	"errors"

	"github.com/quill-tools/quill/args"
)

// bind walks the command's declared parameters in order and produces the
// bound argument list. Switches and flags are extracted from the stack
// before any positional binding so that value resolvers only ever see the
// residual positional stream.
func (h *Handler) bind(actor Actor, cmd *Command, stack *args.Stack) ([]any, error) {
	switchPrefix, flagPrefix := h.SwitchPrefix(), h.FlagPrefix()

	for _, p := range cmd.Parameters {
		switch p.Kind {
		case ParamSwitch:
			stack.ExtractSwitch(switchPrefix, p.Name)
		case ParamFlag:
			if _, _, err := stack.ExtractFlag(flagPrefix, p.Name); err != nil {
				var missing *args.MissingFlagValueError
				if errors.As(err, &missing) {
					return nil, MissingFlagValue(p)
				}
				return nil, err
			}
		}
	}

	bound := make([]any, 0, len(cmd.Parameters))
	for _, p := range cmd.Parameters {
		rc := &ResolveContext{
			Actor:        actor,
			Command:      cmd,
			Parameter:    p,
			Dependencies: h.deps,
		}
		value, err := h.bindOne(p, rc, stack)
		if err != nil {
			return nil, err
		}
		for _, validate := range h.registry.validatorsFor(p.Type) {
			if verr := validate(value, rc); verr != nil {
				return nil, ValidationFailed(p, verr)
			}
		}
		bound = append(bound, value)
	}

	if !stack.IsEmpty() && h.failsOnExtra() {
		return nil, TooManyArguments(cmd, stack.Remaining())
	}
	return bound, nil
}

func (h *Handler) bindOne(p *Parameter, rc *ResolveContext, stack *args.Stack) (any, error) {
	switch p.Kind {
	case ParamSwitch:
		return stack.Switch(p.Name), nil

	case ParamFlag:
		raw, ok := stack.Flag(p.Name)
		if !ok {
			if p.Optional {
				return p.Default, nil
			}
			return nil, NotEnoughArguments(p)
		}
		return h.resolveRaw(raw, p, rc)

	case ParamSender:
		resolver, ok := h.registry.senderFor(p.Type)
		if !ok {
			return nil, UnresolvableSender(p)
		}
		value, err := resolver(rc)
		if err != nil {
			return nil, wrapResolveError(p, err)
		}
		return value, nil

	case ParamContext:
		resolver, ok := h.registry.contextFor(p.Type)
		if !ok {
			return nil, UnresolvableParameter(p, nil)
		}
		value, err := resolver(rc)
		if err != nil {
			return nil, wrapResolveError(p, err)
		}
		return value, nil

	default: // ParamValue
		if stack.IsEmpty() {
			if p.Optional {
				return p.Default, nil
			}
			return nil, NotEnoughArguments(p)
		}
		if p.Greedy {
			return stack.PopAll(), nil
		}
		resolver, ok := h.registry.valueFor(p.Type)
		if !ok {
			return nil, UnresolvableParameter(p, nil)
		}
		value, err := resolver(stack, rc)
		if err != nil {
			return nil, wrapResolveError(p, err)
		}
		return value, nil
	}
}

// resolveRaw types an extracted flag value through the value-resolver chain
// on a one-token stack.
func (h *Handler) resolveRaw(raw string, p *Parameter, rc *ResolveContext) (any, error) {
	resolver, ok := h.registry.valueFor(p.Type)
	if !ok {
		return nil, UnresolvableParameter(p, nil)
	}
	value, err := resolver(args.New(raw), rc)
	if err != nil {
		return nil, wrapResolveError(p, err)
	}
	return value, nil
}

// wrapResolveError keeps taxonomy errors intact and wraps anything else a
// resolver produced as an unresolvable-parameter failure with the cause
// attached.
func wrapResolveError(p *Parameter, err error) error {
	var derr *Error
	if errors.As(err, &derr) {
		return err
	}
	return UnresolvableParameter(p, err)
}
