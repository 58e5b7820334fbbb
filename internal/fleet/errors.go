package fleet

import (
	"errors"
	"fmt"
)

// NotFoundError reports that the provider knows no instance with the given id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("instance %s not found", e.ID)
}

// InvalidStateError reports a lifecycle transition that is illegal for the
// instance's current status. Current and Required are empty when the provider
// rejected the transition before we observed the status ourselves.
type InvalidStateError struct {
	Op       string
	ID       string
	Current  Status
	Required Status
}

func (e *InvalidStateError) Error() string {
	if e.Current == "" {
		return fmt.Sprintf("cannot %s instance %s: transition rejected by provider", e.Op, e.ID)
	}
	return fmt.Sprintf("cannot %s instance %s: status is %s, requires %s", e.Op, e.ID, e.Current, e.Required)
}

// ProviderError wraps any underlying provider call failure: auth, network,
// quota, throttling, malformed provider-side parameters. Timeouts and
// cancellations on the outbound call surface here too.
type ProviderError struct {
	Op  string
	ID  string
	Err error
}

func (e *ProviderError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("provider %s failed for instance %s: %v", e.Op, e.ID, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInvalidState reports whether err is an InvalidStateError anywhere in its
// chain.
func IsInvalidState(err error) bool {
	var is *InvalidStateError
	return errors.As(err, &is)
}
