package fleet

import "fmt"

// Status is the closed set of instance lifecycle states recognized by stratus.
// The values map 1:1 onto the provider's state names; there are no synthetic
// states.
type Status string

const (
	StatusPending      Status = "pending"
	StatusRunning      Status = "running"
	StatusStopping     Status = "stopping"
	StatusStopped      Status = "stopped"
	StatusShuttingDown Status = "shutting-down"
	StatusTerminated   Status = "terminated"
)

// ParseStatus maps a provider-reported state name onto the known enumeration.
// An unrecognized value is a mapping error, never a new domain value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusRunning, StatusStopping, StatusStopped,
		StatusShuttingDown, StatusTerminated:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown instance status %q", s)
}

// Terminal reports whether no further lifecycle transition is possible.
func (s Status) Terminal() bool {
	return s == StatusTerminated
}

func (s Status) String() string {
	return string(s)
}
