// Package aws implements the cloud provider boundary on top of the AWS SDK:
// EC2 for the networking and compute resources, ELBv2 for load balancers, and
// the resource-groups tagging API for cross-service tag lookup.
package aws

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"

	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
)

// EC2API is the EC2 surface this provider consumes. Narrowed to an interface
// so tests can inject fakes.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
	DescribeNetworkInterfaces(ctx context.Context, params *ec2.DescribeNetworkInterfacesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error)
	DeleteNetworkInterface(ctx context.Context, params *ec2.DeleteNetworkInterfaceInput, optFns ...func(*ec2.Options)) (*ec2.DeleteNetworkInterfaceOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	DeleteSecurityGroup(ctx context.Context, params *ec2.DeleteSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error)
	RevokeSecurityGroupIngress(ctx context.Context, params *ec2.RevokeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.RevokeSecurityGroupIngressOutput, error)
	RevokeSecurityGroupEgress(ctx context.Context, params *ec2.RevokeSecurityGroupEgressInput, optFns ...func(*ec2.Options)) (*ec2.RevokeSecurityGroupEgressOutput, error)
	DescribeSubnets(ctx context.Context, params *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DeleteSubnet(ctx context.Context, params *ec2.DeleteSubnetInput, optFns ...func(*ec2.Options)) (*ec2.DeleteSubnetOutput, error)
	DescribeRouteTables(ctx context.Context, params *ec2.DescribeRouteTablesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)
	DeleteRouteTable(ctx context.Context, params *ec2.DeleteRouteTableInput, optFns ...func(*ec2.Options)) (*ec2.DeleteRouteTableOutput, error)
	DescribeInternetGateways(ctx context.Context, params *ec2.DescribeInternetGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error)
	DetachInternetGateway(ctx context.Context, params *ec2.DetachInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.DetachInternetGatewayOutput, error)
	DeleteInternetGateway(ctx context.Context, params *ec2.DeleteInternetGatewayInput, optFns ...func(*ec2.Options)) (*ec2.DeleteInternetGatewayOutput, error)
	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
	ReleaseAddress(ctx context.Context, params *ec2.ReleaseAddressInput, optFns ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error)
	DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
	DeleteNatGateway(ctx context.Context, params *ec2.DeleteNatGatewayInput, optFns ...func(*ec2.Options)) (*ec2.DeleteNatGatewayOutput, error)
	DescribeKeyPairs(ctx context.Context, params *ec2.DescribeKeyPairsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeKeyPairsOutput, error)
	DeleteKeyPair(ctx context.Context, params *ec2.DeleteKeyPairInput, optFns ...func(*ec2.Options)) (*ec2.DeleteKeyPairOutput, error)
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DeleteVpc(ctx context.Context, params *ec2.DeleteVpcInput, optFns ...func(*ec2.Options)) (*ec2.DeleteVpcOutput, error)
}

// ELBV2API is the load balancer surface this provider consumes.
type ELBV2API interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error)
	DeleteLoadBalancer(ctx context.Context, params *elasticloadbalancingv2.DeleteLoadBalancerInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DeleteLoadBalancerOutput, error)
}

// TaggingAPI is the resource-groups tagging surface used for cross-service
// tag lookup.
type TaggingAPI interface {
	GetResources(ctx context.Context, params *resourcegroupstaggingapi.GetResourcesInput, optFns ...func(*resourcegroupstaggingapi.Options)) (*resourcegroupstaggingapi.GetResourcesOutput, error)
}

// Provider implements provider.CloudProvider against one AWS account.
type Provider struct {
	mu            sync.Mutex
	region        string
	ec2Client     EC2API
	elbv2Client   ELBV2API
	taggingClient TaggingAPI
}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return "aws" }

// ensureClients lazily builds the SDK clients for the requested region.
// Clients are rebuilt if a different region is asked for.
func (p *Provider) ensureClients(ctx context.Context, region string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ec2Client != nil && p.elbv2Client != nil && p.taggingClient != nil && p.region == region {
		return nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return fmt.Errorf("unable to load SDK config, %v", err)
	}

	p.region = region
	p.ec2Client = ec2.NewFromConfig(cfg)
	p.elbv2Client = elasticloadbalancingv2.NewFromConfig(cfg)
	p.taggingClient = resourcegroupstaggingapi.NewFromConfig(cfg)
	return nil
}

// List enumerates resources of one type matching the cluster identifier.
func (p *Provider) List(ctx context.Context, t resource.Type, clusterTag, region string) ([]*resource.Resource, error) {
	if err := p.ensureClients(ctx, region); err != nil {
		return nil, err
	}

	switch t {
	case resource.TypeInstance:
		return p.listInstances(ctx, clusterTag, region)
	case resource.TypeLoadBalancer:
		return p.listLoadBalancersByTag(ctx, clusterTag, region)
	case resource.TypeNetworkInterface:
		return p.listNetworkInterfaces(ctx, clusterTag, region)
	case resource.TypeSecurityGroup:
		return p.listSecurityGroups(ctx, clusterTag, region)
	case resource.TypeSubnet:
		return p.listSubnets(ctx, clusterTag, region)
	case resource.TypeRouteTable:
		return p.listRouteTables(ctx, clusterTag, region)
	case resource.TypeInternetGateway:
		return p.listInternetGateways(ctx, clusterTag, region)
	case resource.TypeElasticIP:
		return p.listElasticIPs(ctx, clusterTag, region)
	case resource.TypeNatGateway:
		return p.listNatGateways(ctx, clusterTag, region)
	case resource.TypeKeyPair:
		return p.listKeyPairs(ctx, clusterTag, region)
	case resource.TypeVpc:
		return p.listVpcs(ctx, clusterTag, region)
	}
	return nil, fmt.Errorf("unsupported resource type: %s", t)
}

// ListByVpc enumerates resources of one type attached to a VPC. Key pairs
// live outside any VPC, so that type always returns empty here.
func (p *Provider) ListByVpc(ctx context.Context, t resource.Type, vpcID, region string) ([]*resource.Resource, error) {
	if err := p.ensureClients(ctx, region); err != nil {
		return nil, err
	}

	switch t {
	case resource.TypeInstance:
		return p.listInstancesByVpc(ctx, vpcID, region)
	case resource.TypeLoadBalancer:
		return p.listLoadBalancersByVpc(ctx, vpcID, region)
	case resource.TypeNetworkInterface:
		return p.listNetworkInterfacesByVpc(ctx, vpcID, region)
	case resource.TypeSecurityGroup:
		return p.listSecurityGroupsByVpc(ctx, vpcID, region)
	case resource.TypeSubnet:
		return p.listSubnetsByVpc(ctx, vpcID, region)
	case resource.TypeRouteTable:
		return p.listRouteTablesByVpc(ctx, vpcID, region)
	case resource.TypeInternetGateway:
		return p.listInternetGatewaysByVpc(ctx, vpcID, region)
	case resource.TypeElasticIP:
		return p.listElasticIPsByVpc(ctx, vpcID, region)
	case resource.TypeNatGateway:
		return p.listNatGatewaysByVpc(ctx, vpcID, region)
	case resource.TypeKeyPair:
		return nil, nil
	case resource.TypeVpc:
		return p.listVpcByID(ctx, vpcID, region)
	}
	return nil, fmt.Errorf("unsupported resource type: %s", t)
}

// Exists runs a targeted existence check for one resource.
func (p *Provider) Exists(ctx context.Context, res *resource.Resource) (bool, error) {
	if err := p.ensureClients(ctx, res.Region); err != nil {
		return false, err
	}

	switch res.Type {
	case resource.TypeInstance:
		return p.instanceExists(ctx, res.ID)
	case resource.TypeLoadBalancer:
		return p.loadBalancerExists(ctx, res.ID)
	case resource.TypeNetworkInterface:
		return p.networkInterfaceExists(ctx, res.ID)
	case resource.TypeSecurityGroup:
		return p.securityGroupExists(ctx, res.ID)
	case resource.TypeSubnet:
		return p.subnetExists(ctx, res.ID)
	case resource.TypeRouteTable:
		return p.routeTableExists(ctx, res.ID)
	case resource.TypeInternetGateway:
		return p.internetGatewayExists(ctx, res.ID)
	case resource.TypeElasticIP:
		return p.elasticIPExists(ctx, res.ID)
	case resource.TypeNatGateway:
		return p.natGatewayExists(ctx, res.ID)
	case resource.TypeKeyPair:
		return p.keyPairExists(ctx, res.ID)
	case resource.TypeVpc:
		return p.vpcExists(ctx, res.ID)
	}
	return false, fmt.Errorf("unsupported resource type: %s", res.Type)
}

// Delete issues the type-specific delete call for one resource. A NotFound
// answer comes back classified so the caller can treat it as success.
func (p *Provider) Delete(ctx context.Context, res *resource.Resource) error {
	if err := p.ensureClients(ctx, res.Region); err != nil {
		return err
	}

	switch res.Type {
	case resource.TypeInstance:
		return p.terminateInstance(ctx, res.ID)
	case resource.TypeLoadBalancer:
		return p.deleteLoadBalancer(ctx, res.ID)
	case resource.TypeNetworkInterface:
		return p.deleteNetworkInterface(ctx, res.ID)
	case resource.TypeSecurityGroup:
		return p.deleteSecurityGroup(ctx, res.ID)
	case resource.TypeSubnet:
		return p.deleteSubnet(ctx, res.ID)
	case resource.TypeRouteTable:
		return p.deleteRouteTable(ctx, res.ID)
	case resource.TypeInternetGateway:
		return p.deleteInternetGateway(ctx, res.ID)
	case resource.TypeElasticIP:
		return p.releaseElasticIP(ctx, res.ID)
	case resource.TypeNatGateway:
		return p.deleteNatGateway(ctx, res.ID)
	case resource.TypeKeyPair:
		return p.deleteKeyPair(ctx, res.ID)
	case resource.TypeVpc:
		return p.deleteVpc(ctx, res.ID)
	}
	return provider.NewError(provider.KindPermanent, "Delete",
		fmt.Errorf("unsupported resource type: %s", res.Type))
}

// StripSecurityGroupRules revokes all ingress and egress rules on a security
// group.
func (p *Provider) StripSecurityGroupRules(ctx context.Context, res *resource.Resource) error {
	if err := p.ensureClients(ctx, res.Region); err != nil {
		return err
	}
	return p.stripSecurityGroupRules(ctx, res.ID)
}
