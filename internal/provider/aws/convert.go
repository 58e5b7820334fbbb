package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/stratusops/stratus/internal/fleet"
)

// Tag keys stratus writes at launch and reads back on every describe.
const (
	tagName        = "Name"
	tagEnvironment = "Environment"
)

// convertInstance maps a raw EC2 instance record onto the domain model. An
// unrecognized state name fails the conversion.
func convertInstance(raw ec2types.Instance) (fleet.Instance, error) {
	status, err := fleet.ParseStatus(stateName(raw))
	if err != nil {
		return fleet.Instance{}, err
	}

	inst := fleet.Instance{
		ID:           aws.ToString(raw.InstanceId),
		InstanceType: string(raw.InstanceType),
		ImageID:      aws.ToString(raw.ImageId),
		KeyPairName:  aws.ToString(raw.KeyName),
		Status:       status,
		PublicIP:     aws.ToString(raw.PublicIpAddress),
		PrivateIP:    aws.ToString(raw.PrivateIpAddress),
	}
	if raw.LaunchTime != nil {
		inst.LaunchTime = *raw.LaunchTime
	}
	if len(raw.SecurityGroups) > 0 {
		inst.SecurityGroupID = aws.ToString(raw.SecurityGroups[0].GroupId)
	}
	for _, tag := range raw.Tags {
		switch aws.ToString(tag.Key) {
		case tagName:
			inst.Name = aws.ToString(tag.Value)
		case tagEnvironment:
			inst.Environment = aws.ToString(tag.Value)
		}
	}

	return inst, nil
}

func stateName(raw ec2types.Instance) string {
	if raw.State == nil {
		return ""
	}
	return string(raw.State.Name)
}
