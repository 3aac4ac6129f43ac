package aws

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"

	"github.com/yairfalse/kulut/pkg/types"
)

func TestNormalizeInstance(t *testing.T) {
	launched := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	instance := ec2Types.Instance{
		InstanceId:       aws.String("i-123"),
		InstanceType:     ec2Types.InstanceTypeT3Micro,
		VpcId:            aws.String("vpc-1"),
		SubnetId:         aws.String("subnet-1"),
		PrivateIpAddress: aws.String("10.0.0.5"),
		ImageId:          aws.String("ami-1"),
		LaunchTime:       &launched,
		State:            &ec2Types.InstanceState{Name: ec2Types.InstanceStateNameRunning},
		Placement:        &ec2Types.Placement{AvailabilityZone: aws.String("us-east-1a")},
		SecurityGroups: []ec2Types.GroupIdentifier{
			{GroupId: aws.String("sg-1")},
			{GroupId: aws.String("sg-2")},
		},
		Tags: []ec2Types.Tag{
			{Key: aws.String("Name"), Value: aws.String("web-1")},
			{Key: aws.String("Env"), Value: aws.String("Prod")},
		},
	}

	res := normalizeInstance(instance)

	assert.Equal(t, "i-123", res.ID)
	assert.Equal(t, "web-1", res.Name)
	assert.Equal(t, "t3.micro", res.Fields["Type"])
	assert.Equal(t, "vpc-1", res.Fields["VpcId"])
	assert.Equal(t, "running", res.Fields["State"])
	assert.Equal(t, "us-east-1a", res.Fields["AZ"])
	assert.Equal(t, "2025-03-01T12:00:00Z", res.Fields["LaunchTime"])
	assert.Equal(t, []any{"sg-1", "sg-2"}, res.Fields["SecurityGroups"])
	assert.Equal(t, "Prod", res.GetTag("Env"))
}

func TestNormalizeInstance_Minimal(t *testing.T) {
	res := normalizeInstance(ec2Types.Instance{InstanceId: aws.String("i-bare")})

	assert.Equal(t, "i-bare", res.ID)
	assert.Empty(t, res.Name)
	assert.NotContains(t, res.Fields, "State")
	assert.NotContains(t, res.Fields, "AZ")
	assert.NotContains(t, res.Fields, "LaunchTime")
}

func TestNormalizeSecurityGroup(t *testing.T) {
	sg := ec2Types.SecurityGroup{
		GroupId:     aws.String("sg-1"),
		GroupName:   aws.String("web-sg"),
		Description: aws.String("web tier"),
		VpcId:       aws.String("vpc-1"),
		IpPermissions: []ec2Types.IpPermission{
			{}, {},
		},
		IpPermissionsEgress: []ec2Types.IpPermission{
			{},
		},
	}

	res := normalizeSecurityGroup(sg)

	assert.Equal(t, "sg-1", res.ID)
	assert.Equal(t, "web-sg", res.Name)
	assert.Equal(t, "web-sg", res.Fields["GroupName"])
	assert.Equal(t, 2, res.Fields["IngressRuleCount"])
	assert.Equal(t, 1, res.Fields["EgressRuleCount"])
}

func TestNormalizeBucket(t *testing.T) {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	res := normalizeBucket(s3Types.Bucket{
		Name:         aws.String("my-bucket"),
		CreationDate: &created,
	})

	assert.Equal(t, "my-bucket", res.ID)
	assert.Equal(t, "my-bucket", res.Name)
	assert.Equal(t, "2024-06-01T00:00:00Z", res.Fields["CreationDate"])
}

func TestNormalizeDBInstance(t *testing.T) {
	db := rdsTypes.DBInstance{
		DBInstanceIdentifier: aws.String("prod-db"),
		Engine:               aws.String("postgres"),
		EngineVersion:        aws.String("16.1"),
		DBInstanceClass:      aws.String("db.t3.medium"),
		DBInstanceStatus:     aws.String("available"),
		AvailabilityZone:     aws.String("us-east-1a"),
		MultiAZ:              aws.Bool(true),
		DBSubnetGroup:        &rdsTypes.DBSubnetGroup{VpcId: aws.String("vpc-1")},
		TagList: []rdsTypes.Tag{
			{Key: aws.String("Env"), Value: aws.String("Prod")},
		},
	}

	res := normalizeDBInstance(db)

	assert.Equal(t, "prod-db", res.ID)
	assert.Equal(t, "postgres", res.Fields["Engine"])
	assert.Equal(t, true, res.Fields["MultiAZ"])
	assert.Equal(t, "vpc-1", res.Fields["VpcId"])
	assert.Equal(t, "Prod", res.GetTag("Env"))
}

func TestNormalizeFunction(t *testing.T) {
	res := normalizeFunction(lambdaTypes.FunctionConfiguration{
		FunctionName: aws.String("resize-images"),
		Runtime:      lambdaTypes.RuntimeGo1x,
		MemorySize:   aws.Int32(256),
		Timeout:      aws.Int32(30),
	})

	assert.Equal(t, "resize-images", res.ID)
	assert.Equal(t, "go1.x", res.Fields["Runtime"])
	assert.Equal(t, int32(256), res.Fields["MemorySize"])
}

func TestNameFromTags(t *testing.T) {
	tags := []ec2Types.Tag{
		{Key: aws.String("Env"), Value: aws.String("Prod")},
		{Key: aws.String("Name"), Value: aws.String("web")},
	}
	assert.Equal(t, "web", nameFromTags(tags))
	assert.Equal(t, "", nameFromTags(nil))
}

func TestConvertTags(t *testing.T) {
	assert.Nil(t, convertTags(nil))

	got := convertTags([]ec2Types.Tag{{Key: aws.String("Env"), Value: aws.String("Prod")}})
	assert.Equal(t, []types.Tag{{Key: "Env", Value: "Prod"}}, got)
}
