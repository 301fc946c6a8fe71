package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
)

// dryRunOperation is the error code EC2 returns when a DryRun request
// would have succeeded.
const dryRunOperation = "DryRunOperation"

// DryRunClient issues start/stop requests with DryRun set, so that IAM
// permissions are checked without mutating any instance. It satisfies
// the same lifecycle interface as EC2Client.
type DryRunClient struct {
	api EC2API
}

// NewDryRunClient creates a DryRunClient on top of an existing API client.
func NewDryRunClient(api EC2API) *DryRunClient {
	return &DryRunClient{api: api}
}

// StartInstance probes permission to start the instance.
func (c *DryRunClient) StartInstance(ctx context.Context, instanceID string) error {
	_, err := c.api.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
		DryRun:      aws.Bool(true),
	})
	if err := dryRunResult(err); err != nil {
		return fmt.Errorf("unable to start instance %s: %w", instanceID, err)
	}
	return nil
}

// StopInstance probes permission to stop the instance.
func (c *DryRunClient) StopInstance(ctx context.Context, instanceID string) error {
	_, err := c.api.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
		DryRun:      aws.Bool(true),
	})
	if err := dryRunResult(err); err != nil {
		return fmt.Errorf("unable to stop instance %s: %w", instanceID, err)
	}
	return nil
}

// dryRunResult interprets the outcome of a DryRun call. A DryRunOperation
// API error means the caller is authorized; anything else (unauthorized,
// instance not found) is a real failure.
func dryRunResult(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == dryRunOperation {
		return nil
	}
	return err
}
