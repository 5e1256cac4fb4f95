package aws

import (
	"context"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	taggingtypes "github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"

	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
)

// loadBalancerResourceType is the tagging API filter for ELBv2 load
// balancers.
const loadBalancerResourceType = "elasticloadbalancing:loadbalancer"

// listLoadBalancersByTag finds cluster load balancers through the
// resource-groups tagging API; ELBv2 describe calls cannot filter by tag
// server-side. The load balancer ARN doubles as the resource id since every
// later ELBv2 call wants the ARN.
func (p *Provider) listLoadBalancersByTag(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var paginationToken *string
	for {
		out, err := p.taggingClient.GetResources(ctx, &resourcegroupstaggingapi.GetResourcesInput{
			ResourceTypeFilters: []string{loadBalancerResourceType},
			PaginationToken:     paginationToken,
		})
		if err != nil {
			return nil, classify("GetResources", err)
		}
		for _, mapping := range out.ResourceTagMappingList {
			arn := awssdk.ToString(mapping.ResourceARN)
			if !taggingMatchesCluster(mapping, clusterTag) {
				continue
			}
			found = append(found, newResource(resource.TypeLoadBalancer, arn, region,
				clusterTag, loadBalancerNameFromARN(arn)))
		}
		if awssdk.ToString(out.PaginationToken) == "" {
			return found, nil
		}
		paginationToken = out.PaginationToken
	}
}

func taggingMatchesCluster(mapping taggingtypes.ResourceTagMapping, clusterTag string) bool {
	for _, tag := range mapping.Tags {
		if tag.Key != nil && strings.Contains(*tag.Key, clusterTag) {
			return true
		}
		if tag.Value != nil && strings.Contains(*tag.Value, clusterTag) {
			return true
		}
	}
	return false
}

// loadBalancerNameFromARN extracts the name segment of a load balancer ARN:
// arn:aws:elasticloadbalancing:...:loadbalancer/net/<name>/<hash>.
func loadBalancerNameFromARN(arn string) string {
	parts := strings.Split(arn, "/")
	if len(parts) >= 3 {
		return parts[len(parts)-2]
	}
	return arn
}

func (p *Provider) listLoadBalancersByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var marker *string
	for {
		out, err := p.elbv2Client.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
			Marker: marker,
		})
		if err != nil {
			return nil, classify("DescribeLoadBalancers", err)
		}
		for _, lb := range out.LoadBalancers {
			if awssdk.ToString(lb.VpcId) != vpcID {
				continue
			}
			arn := awssdk.ToString(lb.LoadBalancerArn)
			found = append(found, newResource(resource.TypeLoadBalancer, arn, region,
				"", awssdk.ToString(lb.LoadBalancerName)))
		}
		if awssdk.ToString(out.NextMarker) == "" {
			return found, nil
		}
		marker = out.NextMarker
	}
}

func (p *Provider) loadBalancerExists(ctx context.Context, arn string) (bool, error) {
	out, err := p.elbv2Client.DescribeLoadBalancers(ctx, &elasticloadbalancingv2.DescribeLoadBalancersInput{
		LoadBalancerArns: []string{arn},
	})
	if err != nil {
		cerr := classify("DescribeLoadBalancers", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.LoadBalancers) > 0, nil
}

func (p *Provider) deleteLoadBalancer(ctx context.Context, arn string) error {
	_, err := p.elbv2Client.DeleteLoadBalancer(ctx, &elasticloadbalancingv2.DeleteLoadBalancerInput{
		LoadBalancerArn: awssdk.String(arn),
	})
	return classify("DeleteLoadBalancer", err)
}
