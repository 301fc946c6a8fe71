package models

import "fmt"

// Action selects which of the three operations a run performs.
type Action int

const (
	ActionList Action = iota
	ActionStart
	ActionStop
)

// String returns the lowercase action name for error messages.
func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Verbosity controls how much of each instance record is printed.
// It never changes which remote call is made.
type Verbosity int

const (
	VerbosityDefault Verbosity = iota
	VerbosityQuiet
	VerbosityVerbose
)

// Request is the validated intent of a single run: exactly one action,
// resolved from the raw flag values before any AWS client is built.
type Request struct {
	Action     Action
	InstanceID string
	Verbosity  Verbosity
	DryRun     bool
}

// NewRequest converts the raw flag values into a Request. It fails when
// zero or more than one of the primary flags is set, when start/stop is
// given an empty instance ID, or when quiet and verbose are combined.
func NewRequest(list bool, startID, stopID string, quiet, verbose, test bool) (Request, error) {
	req := Request{DryRun: test}

	primaries := 0
	if list {
		primaries++
		req.Action = ActionList
	}
	if startID != "" {
		primaries++
		req.Action = ActionStart
		req.InstanceID = startID
	}
	if stopID != "" {
		primaries++
		req.Action = ActionStop
		req.InstanceID = stopID
	}

	switch primaries {
	case 0:
		return Request{}, fmt.Errorf("one of --list, --start or --stop is required")
	case 1:
		// ok
	default:
		return Request{}, fmt.Errorf("--list, --start and --stop are mutually exclusive")
	}

	if quiet && verbose {
		return Request{}, fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	if quiet {
		req.Verbosity = VerbosityQuiet
	}
	if verbose {
		req.Verbosity = VerbosityVerbose
	}

	return req, nil
}
