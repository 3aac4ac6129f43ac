package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/yairfalse/kulut/pkg/types"
)

func (c *Collector) collectS3(ctx context.Context, out map[string][]types.Resource) error {
	result, err := c.clients.S3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}

	resources := []types.Resource{}
	for _, bucket := range result.Buckets {
		resources = append(resources, normalizeBucket(bucket))
	}
	out[typeS3Buckets] = resources
	return nil
}

func (c *Collector) collectRDS(ctx context.Context, out map[string][]types.Resource) error {
	resources := []types.Resource{}
	var marker *string

	for {
		result, err := c.clients.RDS.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{Marker: marker})
		if err != nil {
			return fmt.Errorf("failed to describe DB instances: %w", err)
		}

		for _, db := range result.DBInstances {
			resources = append(resources, normalizeDBInstance(db))
		}

		marker = result.Marker
		if marker == nil {
			break
		}
	}

	out[typeRDSInstances] = resources
	return nil
}

func (c *Collector) collectLambda(ctx context.Context, out map[string][]types.Resource) error {
	resources := []types.Resource{}
	var marker *string

	for {
		result, err := c.clients.Lambda.ListFunctions(ctx, &lambda.ListFunctionsInput{Marker: marker})
		if err != nil {
			return fmt.Errorf("failed to list functions: %w", err)
		}

		for _, fn := range result.Functions {
			resources = append(resources, normalizeFunction(fn))
		}

		marker = result.NextMarker
		if marker == nil {
			break
		}
	}

	out[typeLambdaFunctions] = resources
	return nil
}

func (c *Collector) collectDynamoDB(ctx context.Context, out map[string][]types.Resource) error {
	resources := []types.Resource{}
	var startTable *string

	for {
		result, err := c.clients.DynamoDB.ListTables(ctx, &dynamodb.ListTablesInput{ExclusiveStartTableName: startTable})
		if err != nil {
			return fmt.Errorf("failed to list tables: %w", err)
		}

		for _, name := range result.TableNames {
			resources = append(resources, types.Resource{
				ID:   name,
				Name: name,
				Fields: map[string]any{
					"Region": c.region,
				},
			})
		}

		startTable = result.LastEvaluatedTableName
		if startTable == nil {
			break
		}
	}

	out[typeDynamoDBTables] = resources
	return nil
}

func (c *Collector) collectIAM(ctx context.Context, out map[string][]types.Resource) error {
	resources := []types.Resource{}
	var marker *string

	for {
		result, err := c.clients.IAM.ListRoles(ctx, &iam.ListRolesInput{Marker: marker})
		if err != nil {
			return fmt.Errorf("failed to list roles: %w", err)
		}

		for _, role := range result.Roles {
			resources = append(resources, normalizeRole(role))
		}

		if !result.IsTruncated {
			break
		}
		marker = result.Marker
	}

	out[typeIAMRoles] = resources
	return nil
}
