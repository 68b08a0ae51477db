package quill

// Condition is evaluated before parameter binding. A non-nil error rejects
// the dispatch with ConditionFailed; binding and invocation are skipped.
type Condition func(actor Actor, cmd *Command, argv []string) error

// Permission gates a command against an actor.
type Permission interface {
	CanExecute(actor Actor) bool
}

// PermissionFunc adapts a plain function to a Permission.
type PermissionFunc func(actor Actor) bool

func (f PermissionFunc) CanExecute(actor Actor) bool {
	return f(actor)
}

// PermissionReader derives a command's permission at registration time.
// Readers are consulted in registration order; the first non-nil result is
// stored on the command. Returning nil means the reader does not apply.
type PermissionReader func(cmd *Command) Permission

// authorize runs handler-wide conditions, command conditions and the
// permission check, in that order, short-circuiting on the first failure.
func (h *Handler) authorize(actor Actor, cmd *Command, argv []string) error {
	h.mu.RLock()
	conditions := h.conditions
	h.mu.RUnlock()

	for _, cond := range conditions {
		if err := cond(actor, cmd, argv); err != nil {
			return ConditionFailed(cmd, err)
		}
	}
	for _, cond := range cmd.Conditions {
		if err := cond(actor, cmd, argv); err != nil {
			return ConditionFailed(cmd, err)
		}
	}
	if cmd.Permission != nil && !cmd.Permission.CanExecute(actor) {
		return NoPermission(cmd)
	}
	return nil
}
