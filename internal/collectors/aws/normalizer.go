package aws

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	iamTypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/yairfalse/kulut/pkg/types"
)

// Resource-type bucket names. These are the keys snapshots are stored
// under and the keys the cost-factor table matches against.
const (
	typeEC2Instances    = "EC2_Instances"
	typeSecurityGroups  = "EC2_SecurityGroups"
	typeSubnets         = "EC2_Subnets"
	typeS3Buckets       = "S3_Buckets"
	typeRDSInstances    = "RDS_Instances"
	typeLambdaFunctions = "Lambda_Functions"
	typeDynamoDBTables  = "DynamoDB_Tables"
	typeIAMRoles        = "IAM_Roles"
)

func normalizeInstance(instance ec2Types.Instance) types.Resource {
	fields := map[string]any{
		"Type":           string(instance.InstanceType),
		"VpcId":          aws.ToString(instance.VpcId),
		"SubnetId":       aws.ToString(instance.SubnetId),
		"PrivateIP":      aws.ToString(instance.PrivateIpAddress),
		"PublicIP":       aws.ToString(instance.PublicIpAddress),
		"ImageId":        aws.ToString(instance.ImageId),
		"SecurityGroups": securityGroupIDs(instance.SecurityGroups),
	}
	if instance.State != nil {
		fields["State"] = string(instance.State.Name)
	}
	if instance.Placement != nil {
		fields["AZ"] = aws.ToString(instance.Placement.AvailabilityZone)
	}
	if instance.LaunchTime != nil {
		fields["LaunchTime"] = instance.LaunchTime.Format(time.RFC3339)
	}

	return types.Resource{
		ID:     aws.ToString(instance.InstanceId),
		Name:   nameFromTags(instance.Tags),
		Fields: fields,
		Tags:   convertTags(instance.Tags),
	}
}

func normalizeSecurityGroup(sg ec2Types.SecurityGroup) types.Resource {
	return types.Resource{
		ID:   aws.ToString(sg.GroupId),
		Name: aws.ToString(sg.GroupName),
		Fields: map[string]any{
			"GroupName":        aws.ToString(sg.GroupName),
			"Description":      aws.ToString(sg.Description),
			"VpcId":            aws.ToString(sg.VpcId),
			"IngressRuleCount": len(sg.IpPermissions),
			"EgressRuleCount":  len(sg.IpPermissionsEgress),
		},
		Tags: convertTags(sg.Tags),
	}
}

func normalizeSubnet(subnet ec2Types.Subnet) types.Resource {
	return types.Resource{
		ID:   aws.ToString(subnet.SubnetId),
		Name: nameFromTags(subnet.Tags),
		Fields: map[string]any{
			"VpcId":     aws.ToString(subnet.VpcId),
			"AZ":        aws.ToString(subnet.AvailabilityZone),
			"CidrBlock": aws.ToString(subnet.CidrBlock),
		},
		Tags: convertTags(subnet.Tags),
	}
}

func normalizeBucket(bucket s3Types.Bucket) types.Resource {
	fields := map[string]any{}
	if bucket.CreationDate != nil {
		fields["CreationDate"] = bucket.CreationDate.Format(time.RFC3339)
	}
	return types.Resource{
		ID:     aws.ToString(bucket.Name),
		Name:   aws.ToString(bucket.Name),
		Fields: fields,
	}
}

func normalizeDBInstance(db rdsTypes.DBInstance) types.Resource {
	fields := map[string]any{
		"Engine":        aws.ToString(db.Engine),
		"EngineVersion": aws.ToString(db.EngineVersion),
		"Class":         aws.ToString(db.DBInstanceClass),
		"Status":        aws.ToString(db.DBInstanceStatus),
		"AZ":            aws.ToString(db.AvailabilityZone),
		"MultiAZ":       aws.ToBool(db.MultiAZ),
	}
	if db.DBSubnetGroup != nil {
		fields["VpcId"] = aws.ToString(db.DBSubnetGroup.VpcId)
	}

	return types.Resource{
		ID:     aws.ToString(db.DBInstanceIdentifier),
		Name:   aws.ToString(db.DBInstanceIdentifier),
		Fields: fields,
		Tags:   convertRDSTags(db.TagList),
	}
}

func normalizeFunction(fn lambdaTypes.FunctionConfiguration) types.Resource {
	return types.Resource{
		ID:   aws.ToString(fn.FunctionName),
		Name: aws.ToString(fn.FunctionName),
		Fields: map[string]any{
			"Runtime":      string(fn.Runtime),
			"MemorySize":   aws.ToInt32(fn.MemorySize),
			"Timeout":      aws.ToInt32(fn.Timeout),
			"LastModified": aws.ToString(fn.LastModified),
			"Arn":          aws.ToString(fn.FunctionArn),
		},
	}
}

func normalizeRole(role iamTypes.Role) types.Resource {
	fields := map[string]any{
		"Arn":  aws.ToString(role.Arn),
		"Path": aws.ToString(role.Path),
	}
	if role.CreateDate != nil {
		fields["CreateDate"] = role.CreateDate.Format(time.RFC3339)
	}
	return types.Resource{
		ID:     aws.ToString(role.RoleName),
		Name:   aws.ToString(role.RoleName),
		Fields: fields,
	}
}

func convertTags(tags []ec2Types.Tag) []types.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]types.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, types.Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return out
}

func convertRDSTags(tags []rdsTypes.Tag) []types.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]types.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, types.Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return out
}

func nameFromTags(tags []ec2Types.Tag) string {
	for _, t := range tags {
		if aws.ToString(t.Key) == "Name" {
			return aws.ToString(t.Value)
		}
	}
	return ""
}

func securityGroupIDs(groups []ec2Types.GroupIdentifier) []any {
	ids := make([]any, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, aws.ToString(g.GroupId))
	}
	return ids
}
