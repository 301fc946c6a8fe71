package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/younsl/ec2-manager/internal/models"
	"github.com/younsl/ec2-manager/pkg/utils"
)

// EC2API is the subset of the EC2 service client this tool calls.
// Tests substitute a mock for it.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

// EC2Client struct for EC2 client
type EC2Client struct {
	api    EC2API
	region string
}

// NewEC2Client creates a new EC2Client authenticated via the SDK default
// credential chain.
func NewEC2Client(ctx context.Context, region string) (*EC2Client, error) {
	cfg, err := LoadConfig(ctx, region)
	if err != nil {
		return nil, err
	}

	return &EC2Client{
		api:    ec2.NewFromConfig(cfg),
		region: cfg.Region,
	}, nil
}

// NewEC2ClientFromAPI wraps an existing API implementation.
func NewEC2ClientFromAPI(api EC2API, region string) *EC2Client {
	return &EC2Client{api: api, region: region}
}

// API exposes the underlying service client, e.g. to build a DryRunClient
// that shares the authenticated session.
func (c *EC2Client) API() EC2API {
	return c.api
}

// ListInstances returns all instances in the account, in the order the
// API returns them.
func (c *EC2Client) ListInstances(ctx context.Context) ([]models.InstanceInfo, error) {
	result, err := c.api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("error querying EC2 instances: %w", err)
	}

	instances := []models.InstanceInfo{}
	for _, reservation := range result.Reservations {
		for _, instance := range reservation.Instances {
			instances = append(instances, c.instanceInfo(instance))
		}
	}

	return instances, nil
}

// StartInstance requests a start of the given instance. The state
// transition is asynchronous on the AWS side and is not awaited.
func (c *EC2Client) StartInstance(ctx context.Context, instanceID string) error {
	_, err := c.api.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return fmt.Errorf("error starting instance %s: %w", instanceID, err)
	}
	return nil
}

// StopInstance requests a stop of the given instance, not awaited.
func (c *EC2Client) StopInstance(ctx context.Context, instanceID string) error {
	_, err := c.api.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return fmt.Errorf("error stopping instance %s: %w", instanceID, err)
	}
	return nil
}

// instanceInfo maps an API instance record to the local model. Optional
// fields (public IP, DNS names) stay empty when AWS omits them.
func (c *EC2Client) instanceInfo(instance types.Instance) models.InstanceInfo {
	info := models.InstanceInfo{
		InstanceID:   utils.SafeDeref(instance.InstanceId),
		Name:         utils.GetName(instance.Tags),
		InstanceType: string(instance.InstanceType),
		Region:       c.region,
		ImageID:      utils.SafeDeref(instance.ImageId),
		PrivateIP:    utils.SafeDeref(instance.PrivateIpAddress),
		PublicIP:     utils.SafeDeref(instance.PublicIpAddress),
		PrivateDNS:   utils.SafeDeref(instance.PrivateDnsName),
		PublicDNS:    utils.SafeDeref(instance.PublicDnsName),
		SubnetID:     utils.SafeDeref(instance.SubnetId),
		VpcID:        utils.SafeDeref(instance.VpcId),
		Tags:         utils.GetTagsMap(instance.Tags),
		LaunchTime:   instance.LaunchTime,
	}

	if instance.State != nil {
		info.State = string(instance.State.Name)
	}
	if instance.Placement != nil {
		info.AvailabilityZone = utils.SafeDeref(instance.Placement.AvailabilityZone)
	}

	// Stop time is only reported through the transition reason text
	if reason := utils.SafeDeref(instance.StateTransitionReason); reason != "" {
		if stoppedTime := utils.ParseStateTransitionTime(reason); stoppedTime != nil {
			info.StoppedTime = stoppedTime
			info.ElapsedDays = utils.CalculateElapsedDays(*stoppedTime)
		}
	}

	return info
}
