package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamTypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/yairfalse/kulut/internal/logger"
)

type mockEC2 struct {
	instancePages []*ec2.DescribeInstancesOutput
	pageIndex     int
	err           error
}

func (m *mockEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.pageIndex >= len(m.instancePages) {
		return &ec2.DescribeInstancesOutput{}, nil
	}
	page := m.instancePages[m.pageIndex]
	m.pageIndex++
	return page, nil
}

func (m *mockEC2) DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &ec2.DescribeSecurityGroupsOutput{
		SecurityGroups: []ec2Types.SecurityGroup{
			{GroupId: aws.String("sg-1"), GroupName: aws.String("default")},
		},
	}, nil
}

func (m *mockEC2) DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &ec2.DescribeSubnetsOutput{
		Subnets: []ec2Types.Subnet{
			{SubnetId: aws.String("subnet-1"), VpcId: aws.String("vpc-1")},
		},
	}, nil
}

type mockS3 struct{ err error }

func (m *mockS3) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &s3.ListBucketsOutput{
		Buckets: []s3Types.Bucket{{Name: aws.String("bkt-1")}},
	}, nil
}

type mockRDS struct{ err error }

func (m *mockRDS) DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &rds.DescribeDBInstancesOutput{}, nil
}

type mockLambda struct{ err error }

func (m *mockLambda) ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &lambda.ListFunctionsOutput{
		Functions: []lambdaTypes.FunctionConfiguration{
			{FunctionName: aws.String("fn-1")},
		},
	}, nil
}

type mockDynamoDB struct{ err error }

func (m *mockDynamoDB) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &dynamodb.ListTablesOutput{TableNames: []string{"tbl-1", "tbl-2"}}, nil
}

type mockIAM struct{ err error }

func (m *mockIAM) ListRoles(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &iam.ListRolesOutput{
		Roles: []iamTypes.Role{{RoleName: aws.String("admin"), Arn: aws.String("arn:aws:iam::1:role/admin")}},
	}, nil
}

type mockSTS struct{ err error }

func (m *mockSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}, nil
}

func healthyClients() *Clients {
	return &Clients{
		EC2: &mockEC2{
			instancePages: []*ec2.DescribeInstancesOutput{{
				Reservations: []ec2Types.Reservation{{
					Instances: []ec2Types.Instance{
						{InstanceId: aws.String("i-1")},
						{
							InstanceId: aws.String("i-gone"),
							State:      &ec2Types.InstanceState{Name: ec2Types.InstanceStateNameTerminated},
						},
					},
				}},
			}},
		},
		S3:       &mockS3{},
		RDS:      &mockRDS{},
		Lambda:   &mockLambda{},
		DynamoDB: &mockDynamoDB{},
		IAM:      &mockIAM{},
		STS:      &mockSTS{},
	}
}

func TestCollect_AllServices(t *testing.T) {
	collector := NewCollector(healthyClients(), "us-east-1", logger.NewNop())

	resources, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if n := len(resources["EC2_Instances"]); n != 1 {
		t.Errorf("expected 1 instance (terminated excluded), got %d", n)
	}
	if n := len(resources["EC2_SecurityGroups"]); n != 1 {
		t.Errorf("expected 1 security group, got %d", n)
	}
	if n := len(resources["S3_Buckets"]); n != 1 {
		t.Errorf("expected 1 bucket, got %d", n)
	}
	if n := len(resources["DynamoDB_Tables"]); n != 2 {
		t.Errorf("expected 2 tables, got %d", n)
	}
	if n := len(resources["IAM_Roles"]); n != 1 {
		t.Errorf("expected 1 role, got %d", n)
	}
	if got := resources["DynamoDB_Tables"][0].StringField("Region"); got != "us-east-1" {
		t.Errorf("table region = %q, want us-east-1", got)
	}
}

func TestCollect_PartialFailureKeepsGoing(t *testing.T) {
	clients := healthyClients()
	clients.S3 = &mockS3{err: errors.New("AccessDenied")}

	collector := NewCollector(clients, "us-east-1", logger.NewNop())
	resources, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("a single failing service must not fail the run: %v", err)
	}

	if _, ok := resources["S3_Buckets"]; ok {
		t.Errorf("failed service must not leave a bucket entry")
	}
	if len(resources["EC2_Instances"]) != 1 {
		t.Errorf("other services must still be collected")
	}
}

func TestCollect_AllServicesFailing(t *testing.T) {
	boom := errors.New("no credentials")
	clients := &Clients{
		EC2:      &mockEC2{err: boom},
		S3:       &mockS3{err: boom},
		RDS:      &mockRDS{err: boom},
		Lambda:   &mockLambda{err: boom},
		DynamoDB: &mockDynamoDB{err: boom},
		IAM:      &mockIAM{err: boom},
		STS:      &mockSTS{err: boom},
	}

	collector := NewCollector(clients, "us-east-1", logger.NewNop())
	if _, err := collector.Collect(context.Background()); err == nil {
		t.Fatalf("expected an error when every service fails")
	}
}

func TestCollectInstances_Pagination(t *testing.T) {
	clients := healthyClients()
	clients.EC2 = &mockEC2{
		instancePages: []*ec2.DescribeInstancesOutput{
			{
				Reservations: []ec2Types.Reservation{{
					Instances: []ec2Types.Instance{{InstanceId: aws.String("i-1")}},
				}},
				NextToken: aws.String("page-2"),
			},
			{
				Reservations: []ec2Types.Reservation{{
					Instances: []ec2Types.Instance{{InstanceId: aws.String("i-2")}},
				}},
			},
		},
	}

	collector := NewCollector(clients, "us-east-1", logger.NewNop())
	resources, err := collector.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if n := len(resources["EC2_Instances"]); n != 2 {
		t.Errorf("expected instances from both pages, got %d", n)
	}
}

func TestStatus(t *testing.T) {
	collector := NewCollector(healthyClients(), "us-east-1", logger.NewNop())
	if got := collector.Status(); got != "ready" {
		t.Errorf("Status() = %q, want ready", got)
	}

	broken := healthyClients()
	broken.STS = &mockSTS{err: errors.New("ExpiredToken")}
	collector = NewCollector(broken, "us-east-1", logger.NewNop())
	if got := collector.Status(); got == "ready" {
		t.Errorf("Status() must report the credential failure")
	}
}
