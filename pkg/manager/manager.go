// Package manager dispatches a validated invocation request to exactly
// one EC2 operation and renders the result.
package manager

import (
	"context"
	"fmt"
	"io"

	"github.com/younsl/ec2-manager/internal/models"
	"github.com/younsl/ec2-manager/pkg/formatter"
)

// InstanceLister enumerates the instances in the account.
type InstanceLister interface {
	ListInstances(ctx context.Context) ([]models.InstanceInfo, error)
}

// InstanceControl issues instance lifecycle requests. The live
// implementation mutates; the dry-run one only probes permissions.
type InstanceControl interface {
	StartInstance(ctx context.Context, instanceID string) error
	StopInstance(ctx context.Context, instanceID string) error
}

// Manager executes one operation per run against injected clients.
type Manager struct {
	lister  InstanceLister
	control InstanceControl
	out     io.Writer
}

// New creates a Manager writing its output to out.
func New(lister InstanceLister, control InstanceControl, out io.Writer) *Manager {
	return &Manager{
		lister:  lister,
		control: control,
		out:     out,
	}
}

// Run performs the requested operation. At most one remote call is made.
func (m *Manager) Run(ctx context.Context, req models.Request) error {
	switch req.Action {
	case models.ActionList:
		return m.list(ctx, req)
	case models.ActionStart:
		return m.start(ctx, req)
	case models.ActionStop:
		return m.stop(ctx, req)
	default:
		return fmt.Errorf("unsupported action %q", req.Action)
	}
}

func (m *Manager) list(ctx context.Context, req models.Request) error {
	instances, err := m.lister.ListInstances(ctx)
	if err != nil {
		return err
	}

	if req.Verbosity != models.VerbosityQuiet {
		fmt.Fprintf(m.out, "Instances found in your AWS account:\n\n")
	}
	formatter.PrintInstances(m.out, instances, req.Verbosity)
	return nil
}

func (m *Manager) start(ctx context.Context, req models.Request) error {
	if err := m.control.StartInstance(ctx, req.InstanceID); err != nil {
		if req.DryRun {
			return fmt.Errorf("test failed: %w", err)
		}
		return err
	}

	if req.Verbosity == models.VerbosityQuiet {
		return nil
	}
	if req.DryRun {
		fmt.Fprintf(m.out, "Test successful, able to start %s.\n", req.InstanceID)
	} else {
		fmt.Fprintf(m.out, "Command successful, %s is starting...\n", req.InstanceID)
	}
	return nil
}

func (m *Manager) stop(ctx context.Context, req models.Request) error {
	if err := m.control.StopInstance(ctx, req.InstanceID); err != nil {
		if req.DryRun {
			return fmt.Errorf("test failed: %w", err)
		}
		return err
	}

	if req.Verbosity == models.VerbosityQuiet {
		return nil
	}
	if req.DryRun {
		fmt.Fprintf(m.out, "Test successful, able to stop %s.\n", req.InstanceID)
	} else {
		fmt.Fprintf(m.out, "Command successful, %s is stopping...\n", req.InstanceID)
	}
	return nil
}
