package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockedEC2 struct {
	mock.Mock
}

func (m *mockedEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	args := m.Called(params)
	if out := args.Get(0); out != nil {
		return out.(*ec2.DescribeInstancesOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockedEC2) StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error) {
	args := m.Called(params)
	if out := args.Get(0); out != nil {
		return out.(*ec2.StartInstancesOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockedEC2) StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error) {
	args := m.Called(params)
	if out := args.Get(0); out != nil {
		return out.(*ec2.StopInstancesOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestEC2Client_ListInstances(t *testing.T) {
	assertion := assert.New(t)
	ec2Mock := new(mockedEC2)

	launchTime := time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC)
	output := &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{
			{
				Instances: []types.Instance{
					{
						InstanceId:       awssdk.String("i-1234"),
						InstanceType:     types.InstanceTypeG4dnXlarge,
						ImageId:          awssdk.String("ami-0abc"),
						LaunchTime:       &launchTime,
						PrivateIpAddress: awssdk.String("1.2.3.4"),
						PrivateDnsName:   awssdk.String("ip-1-2-3-4.ec2.internal"),
						SubnetId:         awssdk.String("subnet-1"),
						VpcId:            awssdk.String("vpc-1"),
						State:            &types.InstanceState{Name: types.InstanceStateNameStopped},
						Placement:        &types.Placement{AvailabilityZone: awssdk.String("us-east-1a")},
						StateTransitionReason: awssdk.String(
							"User initiated (2024-12-01 10:00:00 GMT)"),
						Tags: []types.Tag{
							{Key: awssdk.String("Name"), Value: awssdk.String("training-box")},
						},
					},
				},
			},
			{
				Instances: []types.Instance{
					{
						InstanceId:       awssdk.String("i-5678"),
						InstanceType:     types.InstanceTypeT3Micro,
						PrivateIpAddress: awssdk.String("10.0.0.5"),
						PublicIpAddress:  awssdk.String("54.1.2.3"),
						State:            &types.InstanceState{Name: types.InstanceStateNameRunning},
					},
				},
			},
		},
	}
	ec2Mock.On("DescribeInstances", mock.Anything).Return(output, nil)

	client := NewEC2ClientFromAPI(ec2Mock, "us-east-1")
	instances, err := client.ListInstances(context.Background())

	assertion.Nil(err)
	assertion.Len(instances, 2)

	// Order follows the API response
	first := instances[0]
	assertion.Equal("i-1234", first.InstanceID)
	assertion.Equal("training-box", first.Name)
	assertion.Equal("g4dn.xlarge", first.InstanceType)
	assertion.Equal("stopped", first.State)
	assertion.Equal("us-east-1", first.Region)
	assertion.Equal("us-east-1a", first.AvailabilityZone)
	assertion.Equal("ami-0abc", first.ImageID)
	assertion.Equal("1.2.3.4", first.PrivateIP)
	assertion.Equal("", first.PublicIP)
	assertion.Equal("subnet-1", first.SubnetID)
	assertion.Equal("vpc-1", first.VpcID)
	assertion.NotNil(first.StoppedTime)
	assertion.Equal(map[string]string{"Name": "training-box"}, first.Tags)

	second := instances[1]
	assertion.Equal("i-5678", second.InstanceID)
	assertion.Equal("54.1.2.3", second.PublicIP)
	assertion.Equal("running", second.State)
	assertion.Nil(second.StoppedTime)

	ec2Mock.AssertExpectations(t)
	ec2Mock.AssertNumberOfCalls(t, "DescribeInstances", 1)
}

func TestEC2Client_ListInstancesEmpty(t *testing.T) {
	assertion := assert.New(t)
	ec2Mock := new(mockedEC2)

	ec2Mock.On("DescribeInstances", mock.Anything).Return(&ec2.DescribeInstancesOutput{}, nil)

	client := NewEC2ClientFromAPI(ec2Mock, "us-east-1")
	instances, err := client.ListInstances(context.Background())

	assertion.Nil(err)
	assertion.Empty(instances)
}

func TestEC2Client_ListInstancesError(t *testing.T) {
	assertion := assert.New(t)
	ec2Mock := new(mockedEC2)

	ec2Mock.On("DescribeInstances", mock.Anything).Return(nil, errors.New("api failure"))

	client := NewEC2ClientFromAPI(ec2Mock, "us-east-1")
	instances, err := client.ListInstances(context.Background())

	assertion.Error(err)
	assertion.ErrorContains(err, "api failure")
	assertion.Nil(instances)
}

func TestEC2Client_StartInstance(t *testing.T) {
	assertion := assert.New(t)
	ec2Mock := new(mockedEC2)

	ec2Mock.On("StartInstances", mock.MatchedBy(func(input *ec2.StartInstancesInput) bool {
		return len(input.InstanceIds) == 1 && input.InstanceIds[0] == "i-1234" && input.DryRun == nil
	})).Return(&ec2.StartInstancesOutput{}, nil)

	client := NewEC2ClientFromAPI(ec2Mock, "us-east-1")
	err := client.StartInstance(context.Background(), "i-1234")

	assertion.Nil(err)
	ec2Mock.AssertExpectations(t)
	ec2Mock.AssertNumberOfCalls(t, "StartInstances", 1)
	ec2Mock.AssertNumberOfCalls(t, "DescribeInstances", 0)
	ec2Mock.AssertNumberOfCalls(t, "StopInstances", 0)
}

func TestEC2Client_StopInstance(t *testing.T) {
	assertion := assert.New(t)
	ec2Mock := new(mockedEC2)

	ec2Mock.On("StopInstances", mock.MatchedBy(func(input *ec2.StopInstancesInput) bool {
		return len(input.InstanceIds) == 1 && input.InstanceIds[0] == "i-1234" && input.DryRun == nil
	})).Return(&ec2.StopInstancesOutput{}, nil)

	client := NewEC2ClientFromAPI(ec2Mock, "us-east-1")
	err := client.StopInstance(context.Background(), "i-1234")

	assertion.Nil(err)
	ec2Mock.AssertExpectations(t)
	ec2Mock.AssertNumberOfCalls(t, "StopInstances", 1)
	ec2Mock.AssertNumberOfCalls(t, "StartInstances", 0)
}

func TestEC2Client_StartInstanceNotFound(t *testing.T) {
	assertion := assert.New(t)
	ec2Mock := new(mockedEC2)

	ec2Mock.On("StartInstances", mock.Anything).Return(nil,
		errors.New("InvalidInstanceID.NotFound: The instance ID 'i-missing' does not exist"))

	client := NewEC2ClientFromAPI(ec2Mock, "us-east-1")
	err := client.StartInstance(context.Background(), "i-missing")

	assertion.Error(err)
	assertion.ErrorContains(err, "i-missing")
}
