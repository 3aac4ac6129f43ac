package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/yairfalse/kulut/internal/logger"
	"github.com/yairfalse/kulut/pkg/types"
)

// Collector inventories an AWS account into resource-type buckets. Each
// service is collected independently: a failing API does not take the
// other services down with it, it only costs us that bucket.
type Collector struct {
	clients *Clients
	region  string
	log     logger.Logger
}

// NewCollector creates an AWS collector over pre-built clients.
func NewCollector(clients *Clients, region string, log logger.Logger) *Collector {
	if log == nil {
		log = logger.NewNop()
	}
	return &Collector{clients: clients, region: region, log: log}
}

// Name implements collectors.Collector.
func (c *Collector) Name() string {
	return "aws"
}

// Status reports whether credentials resolve to a caller identity.
func (c *Collector) Status() string {
	_, err := c.clients.STS.GetCallerIdentity(context.Background(), &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Sprintf("unavailable: %v", err)
	}
	return "ready"
}

// Collect gathers every supported service. Partial results are normal:
// failures are logged per service and the rest of the inventory is still
// returned. An error is returned only when nothing could be collected.
func (c *Collector) Collect(ctx context.Context) (map[string][]types.Resource, error) {
	resources := map[string][]types.Resource{}
	var failed []string

	services := []struct {
		name string
		run  func(context.Context, map[string][]types.Resource) error
	}{
		{"ec2", c.collectEC2},
		{"s3", c.collectS3},
		{"rds", c.collectRDS},
		{"lambda", c.collectLambda},
		{"dynamodb", c.collectDynamoDB},
		{"iam", c.collectIAM},
	}

	for _, svc := range services {
		if err := svc.run(ctx, resources); err != nil {
			failed = append(failed, svc.name)
			c.log.WithFields(map[string]interface{}{
				"service": svc.name,
				"code":    apiErrorCode(err),
			}).Error("service collection failed", err)
		}
	}

	if len(failed) == len(services) {
		return nil, errors.New("all AWS service collections failed")
	}
	return resources, nil
}

// apiErrorCode extracts the AWS API error code when one is present.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
