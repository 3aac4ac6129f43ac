package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// EC2API is the slice of the EC2 client this collector uses.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
}

// S3API is the slice of the S3 client this collector uses.
type S3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// RDSAPI is the slice of the RDS client this collector uses.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// LambdaAPI is the slice of the Lambda client this collector uses.
type LambdaAPI interface {
	ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error)
}

// DynamoDBAPI is the slice of the DynamoDB client this collector uses.
type DynamoDBAPI interface {
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

// IAMAPI is the slice of the IAM client this collector uses.
type IAMAPI interface {
	ListRoles(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error)
}

// STSAPI is used for credential checks only.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Clients bundles the AWS service clients the collector needs.
type Clients struct {
	EC2      EC2API
	S3       S3API
	RDS      RDSAPI
	Lambda   LambdaAPI
	DynamoDB DynamoDBAPI
	IAM      IAMAPI
	STS      STSAPI
}

// ClientConfig holds client construction settings.
type ClientConfig struct {
	Region     string
	Profile    string
	MaxRetries int
	Timeout    time.Duration
}

// NewClients creates the AWS service clients from shared credentials.
func NewClients(ctx context.Context, clientConfig ClientConfig) (*Clients, error) {
	if clientConfig.MaxRetries == 0 {
		clientConfig.MaxRetries = 3
	}
	if clientConfig.Timeout == 0 {
		clientConfig.Timeout = 30 * time.Second
	}

	var opts []func(*config.LoadOptions) error
	if clientConfig.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(clientConfig.Profile))
	}
	if clientConfig.Region != "" {
		opts = append(opts, config.WithRegion(clientConfig.Region))
	}
	opts = append(opts, config.WithRetryer(func() aws.Retryer {
		return retry.AddWithMaxAttempts(retry.NewStandard(), clientConfig.MaxRetries)
	}))

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Clients{
		EC2:      ec2.NewFromConfig(cfg),
		S3:       s3.NewFromConfig(cfg),
		RDS:      rds.NewFromConfig(cfg),
		Lambda:   lambda.NewFromConfig(cfg),
		DynamoDB: dynamodb.NewFromConfig(cfg),
		IAM:      iam.NewFromConfig(cfg),
		STS:      sts.NewFromConfig(cfg),
	}, nil
}
