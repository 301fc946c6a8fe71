package models

import "time"

// InstanceInfo represents EC2 instance information
type InstanceInfo struct {
	InstanceID       string
	Name             string
	InstanceType     string
	State            string
	Region           string
	AvailabilityZone string
	ImageID          string
	LaunchTime       *time.Time
	PrivateIP        string
	PublicIP         string
	PrivateDNS       string
	PublicDNS        string
	SubnetID         string
	VpcID            string
	Tags             map[string]string

	// Extracted from StateTransitionReason when the instance is stopped
	StoppedTime *time.Time
	ElapsedDays int
}
