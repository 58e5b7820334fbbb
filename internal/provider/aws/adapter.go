package aws

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	"github.com/stratusops/stratus/internal/fleet"
	"github.com/stratusops/stratus/internal/telemetry"
)

// Adapter implements fleet.Provider using the EC2 API. It holds no state
// beyond its clients; every operation is a single remote call.
type Adapter struct {
	client  EC2API
	region  string
	metrics *telemetry.Metrics
	logger  zerolog.Logger
}

// NewAdapter creates an adapter over the given EC2 client.
func NewAdapter(client EC2API, region string, metrics *telemetry.Metrics, logger zerolog.Logger) *Adapter {
	return &Adapter{client: client, region: region, metrics: metrics, logger: logger}
}

// Region returns the region this adapter operates in.
func (a *Adapter) Region() string {
	return a.region
}

// Launch submits a RunInstances request for a single instance, tagged with
// the spec's name and environment, and returns the record the provider
// assigned, normally in pending state.
func (a *Adapter) Launch(ctx context.Context, spec fleet.LaunchSpec) (fleet.Instance, error) {
	input := &ec2.RunInstancesInput{
		ImageId:          aws.String(spec.ImageID),
		InstanceType:     ec2types.InstanceType(spec.InstanceType),
		KeyName:          aws.String(spec.KeyPairName),
		SecurityGroupIds: []string{spec.SecurityGroupID},
		MinCount:         aws.Int32(1),
		MaxCount:         aws.Int32(1),
		TagSpecifications: []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeInstance,
			Tags: []ec2types.Tag{
				{Key: aws.String(tagName), Value: aws.String(spec.Name)},
				{Key: aws.String(tagEnvironment), Value: aws.String(spec.Environment)},
			},
		}},
	}

	start := time.Now()
	out, err := a.client.RunInstances(ctx, input)
	a.observe(ctx, "launch", err, start)
	if err != nil {
		return fleet.Instance{}, a.classify("launch", "", err)
	}
	if len(out.Instances) == 0 {
		return fleet.Instance{}, &fleet.ProviderError{Op: "launch", Err: errors.New("run instances returned no instances")}
	}

	return a.convert("launch", out.Instances[0])
}

// Describe returns the instance with the given id, or NotFoundError.
func (a *Adapter) Describe(ctx context.Context, id string) (fleet.Instance, error) {
	start := time.Now()
	out, err := a.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{id},
	})
	a.observe(ctx, "describe", err, start)
	if err != nil {
		return fleet.Instance{}, a.classify("describe", id, err)
	}

	for _, reservation := range out.Reservations {
		for _, raw := range reservation.Instances {
			return a.convert("describe", raw)
		}
	}
	return fleet.Instance{}, &fleet.NotFoundError{ID: id}
}

// List returns every instance in the region, walking DescribeInstances pages.
func (a *Adapter) List(ctx context.Context) ([]fleet.Instance, error) {
	var instances []fleet.Instance
	var nextToken *string

	for {
		start := time.Now()
		out, err := a.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{NextToken: nextToken})
		a.observe(ctx, "list", err, start)
		if err != nil {
			return nil, a.classify("list", "", err)
		}

		for _, reservation := range out.Reservations {
			for _, raw := range reservation.Instances {
				inst, err := a.convert("list", raw)
				if err != nil {
					return nil, err
				}
				instances = append(instances, inst)
			}
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return instances, nil
}

// Start issues the StartInstances call for the given id.
func (a *Adapter) Start(ctx context.Context, id string) error {
	start := time.Now()
	_, err := a.client.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}})
	a.observe(ctx, "start", err, start)
	if err != nil {
		return a.classify("start", id, err)
	}
	return nil
}

// Stop issues the StopInstances call for the given id.
func (a *Adapter) Stop(ctx context.Context, id string) error {
	start := time.Now()
	_, err := a.client.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}})
	a.observe(ctx, "stop", err, start)
	if err != nil {
		return a.classify("stop", id, err)
	}
	return nil
}

// Terminate issues the TerminateInstances call for the given id.
func (a *Adapter) Terminate(ctx context.Context, id string) error {
	start := time.Now()
	_, err := a.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: []string{id}})
	a.observe(ctx, "terminate", err, start)
	if err != nil {
		return a.classify("terminate", id, err)
	}
	return nil
}

// classify maps an SDK error onto the domain taxonomy. Everything the switch
// does not recognize stays a ProviderError annotated with operation and id.
func (a *Adapter) classify(op, id string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidInstanceID.NotFound", "InvalidInstanceID.Malformed":
			return &fleet.NotFoundError{ID: id}
		case "IncorrectInstanceState":
			return &fleet.InvalidStateError{Op: op, ID: id}
		}
	}
	return &fleet.ProviderError{Op: op, ID: id, Err: err}
}

// convert wraps a conversion failure as a ProviderError for the operation.
func (a *Adapter) convert(op string, raw ec2types.Instance) (fleet.Instance, error) {
	inst, err := convertInstance(raw)
	if err != nil {
		return fleet.Instance{}, &fleet.ProviderError{Op: op, ID: aws.ToString(raw.InstanceId), Err: err}
	}
	return inst, nil
}

func (a *Adapter) observe(ctx context.Context, op string, err error, start time.Time) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordProviderCall(ctx, op, status, time.Since(start).Seconds())
	a.logger.Debug().
		Str("operation", op).
		Str("region", a.region).
		Dur("duration", time.Since(start)).
		Err(err).
		Msg("provider call")
}

var _ fleet.Provider = (*Adapter)(nil)
