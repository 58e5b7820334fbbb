// Package fleet holds the instance domain model and the lifecycle logic over
// it. All durable state lives with the cloud provider; every read here is a
// live provider call.
package fleet

import (
	"context"
	"time"
)

// Instance is a virtual machine as most recently reported by the provider.
// Configuration attributes are write-once at launch; only Status changes over
// the instance's life.
type Instance struct {
	ID              string    `json:"instance_id"`
	Name            string    `json:"name"`
	InstanceType    string    `json:"instance_type"`
	ImageID         string    `json:"ami_id"`
	KeyPairName     string    `json:"key_pair_name"`
	SecurityGroupID string    `json:"security_group_id"`
	Environment     string    `json:"environment"`
	Status          Status    `json:"status"`
	PublicIP        string    `json:"public_ip,omitempty"`
	PrivateIP       string    `json:"private_ip,omitempty"`
	LaunchTime      time.Time `json:"launch_time"`
}

// LaunchSpec describes a new instance. The constraint set (valid instance
// type, existing AMI, key pair, security group) is provider-enforced, not
// validated here.
type LaunchSpec struct {
	Name            string
	InstanceType    string
	ImageID         string
	KeyPairName     string
	SecurityGroupID string
	Environment     string
}

// ListFilter is a logical AND of optional exact-match predicates. The zero
// value matches every instance.
type ListFilter struct {
	Environment  string
	InstanceType string
}

// Matches reports whether inst satisfies every supplied predicate.
func (f ListFilter) Matches(inst Instance) bool {
	if f.Environment != "" && inst.Environment != f.Environment {
		return false
	}
	if f.InstanceType != "" && inst.InstanceType != f.InstanceType {
		return false
	}
	return true
}

// Provider is the surface fleet needs from a cloud provider. The AWS
// implementation lives in internal/provider/aws.
type Provider interface {
	Launch(ctx context.Context, spec LaunchSpec) (Instance, error)
	Describe(ctx context.Context, id string) (Instance, error)
	List(ctx context.Context) ([]Instance, error)
	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	Terminate(ctx context.Context, id string) error
}
