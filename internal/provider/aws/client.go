// Package aws implements fleet.Provider on top of the AWS SDK v2 EC2 client.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// NewClient builds an EC2 client for the given region. Credentials come from
// the SDK's default chain (environment, shared config, instance role) unless
// a static key pair is supplied.
func NewClient(ctx context.Context, region, accessKeyID, secretAccessKey string) (*ec2.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return ec2.NewFromConfig(cfg), nil
}
