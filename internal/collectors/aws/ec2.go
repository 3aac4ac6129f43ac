package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/yairfalse/kulut/pkg/types"
)

// collectEC2 gathers instances, security groups, and subnets.
func (c *Collector) collectEC2(ctx context.Context, out map[string][]types.Resource) error {
	instances, err := c.collectInstances(ctx)
	if err != nil {
		return fmt.Errorf("failed to describe instances: %w", err)
	}
	out[typeEC2Instances] = instances

	groups, err := c.collectSecurityGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to describe security groups: %w", err)
	}
	out[typeSecurityGroups] = groups

	subnets, err := c.collectSubnets(ctx)
	if err != nil {
		return fmt.Errorf("failed to describe subnets: %w", err)
	}
	out[typeSubnets] = subnets

	return nil
}

func (c *Collector) collectInstances(ctx context.Context) ([]types.Resource, error) {
	resources := []types.Resource{}
	var nextToken *string

	for {
		result, err := c.clients.EC2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{NextToken: nextToken})
		if err != nil {
			return nil, err
		}

		for _, reservation := range result.Reservations {
			for _, instance := range reservation.Instances {
				if instance.State != nil && instance.State.Name == "terminated" {
					continue
				}
				resources = append(resources, normalizeInstance(instance))
			}
		}

		nextToken = result.NextToken
		if nextToken == nil {
			break
		}
	}

	return resources, nil
}

func (c *Collector) collectSecurityGroups(ctx context.Context) ([]types.Resource, error) {
	resources := []types.Resource{}
	var nextToken *string

	for {
		result, err := c.clients.EC2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{NextToken: nextToken})
		if err != nil {
			return nil, err
		}

		for _, sg := range result.SecurityGroups {
			resources = append(resources, normalizeSecurityGroup(sg))
		}

		nextToken = result.NextToken
		if nextToken == nil {
			break
		}
	}

	return resources, nil
}

func (c *Collector) collectSubnets(ctx context.Context) ([]types.Resource, error) {
	resources := []types.Resource{}
	var nextToken *string

	for {
		result, err := c.clients.EC2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{NextToken: nextToken})
		if err != nil {
			return nil, err
		}

		for _, subnet := range result.Subnets {
			resources = append(resources, normalizeSubnet(subnet))
		}

		nextToken = result.NextToken
		if nextToken == nil {
			break
		}
	}

	return resources, nil
}
