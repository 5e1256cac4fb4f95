package aws

import (
	"context"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/reapr-io/reapr/internal/provider"
	"github.com/reapr-io/reapr/internal/resource"
)

// tagValueFilter matches any resource carrying a tag value that contains the
// cluster identifier.
func tagValueFilter(clusterTag string) types.Filter {
	return types.Filter{
		Name:   awssdk.String("tag-value"),
		Values: []string{"*" + clusterTag + "*"},
	}
}

func vpcFilter(vpcID string) types.Filter {
	return types.Filter{
		Name:   awssdk.String("vpc-id"),
		Values: []string{vpcID},
	}
}

// nameTag extracts the Name tag, falling back to the given id.
func nameTag(tags []types.Tag, id string) string {
	for _, tag := range tags {
		if tag.Key != nil && *tag.Key == "Name" && tag.Value != nil {
			return *tag.Value
		}
	}
	return id
}

// tagsMatchCluster reports whether any tag key or value contains the cluster
// identifier. Covers both value conventions ("my-cluster-worker") and key
// conventions ("kubernetes.io/cluster/my-cluster").
func tagsMatchCluster(tags []types.Tag, clusterTag string) bool {
	for _, tag := range tags {
		if tag.Key != nil && strings.Contains(*tag.Key, clusterTag) {
			return true
		}
		if tag.Value != nil && strings.Contains(*tag.Value, clusterTag) {
			return true
		}
	}
	return false
}

func newResource(t resource.Type, id, region, clusterTag, displayName string) *resource.Resource {
	return &resource.Resource{
		Type:        t,
		ID:          id,
		Region:      region,
		ClusterTag:  clusterTag,
		DisplayName: displayName,
		State:       resource.StateDiscovered,
	}
}

// Instances

// liveInstanceStates excludes terminated instances from discovery; a
// terminated instance is already gone for reclamation purposes.
var liveInstanceStates = []string{"pending", "running", "shutting-down", "stopping", "stopped"}

func (p *Provider) listInstances(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	filters := []types.Filter{
		tagValueFilter(clusterTag),
		{Name: awssdk.String("instance-state-name"), Values: liveInstanceStates},
	}
	return p.describeInstances(ctx, filters, clusterTag, region)
}

func (p *Provider) listInstancesByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	filters := []types.Filter{
		vpcFilter(vpcID),
		{Name: awssdk.String("instance-state-name"), Values: liveInstanceStates},
	}
	return p.describeInstances(ctx, filters, "", region)
}

func (p *Provider) describeInstances(ctx context.Context, filters []types.Filter, clusterTag, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var nextToken *string
	for {
		out, err := p.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, classify("DescribeInstances", err)
		}
		for _, reservation := range out.Reservations {
			for _, inst := range reservation.Instances {
				id := awssdk.ToString(inst.InstanceId)
				found = append(found, newResource(resource.TypeInstance, id, region,
					clusterTag, nameTag(inst.Tags, id)))
			}
		}
		if out.NextToken == nil {
			return found, nil
		}
		nextToken = out.NextToken
	}
}

func (p *Provider) instanceExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeInstances", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	for _, reservation := range out.Reservations {
		for _, inst := range reservation.Instances {
			if inst.State != nil && inst.State.Name != types.InstanceStateNameTerminated {
				return true, nil
			}
		}
	}
	return false, nil
}

func (p *Provider) terminateInstance(ctx context.Context, id string) error {
	_, err := p.ec2Client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{id},
	})
	return classify("TerminateInstances", err)
}

// Network interfaces

func (p *Provider) listNetworkInterfaces(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	return p.describeNetworkInterfaces(ctx, []types.Filter{tagValueFilter(clusterTag)}, clusterTag, region)
}

func (p *Provider) listNetworkInterfacesByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	return p.describeNetworkInterfaces(ctx, []types.Filter{vpcFilter(vpcID)}, "", region)
}

func (p *Provider) describeNetworkInterfaces(ctx context.Context, filters []types.Filter, clusterTag, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var nextToken *string
	for {
		out, err := p.ec2Client.DescribeNetworkInterfaces(ctx, &ec2.DescribeNetworkInterfacesInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, classify("DescribeNetworkInterfaces", err)
		}
		for _, eni := range out.NetworkInterfaces {
			id := awssdk.ToString(eni.NetworkInterfaceId)
			found = append(found, newResource(resource.TypeNetworkInterface, id, region,
				clusterTag, id))
		}
		if out.NextToken == nil {
			return found, nil
		}
		nextToken = out.NextToken
	}
}

func (p *Provider) networkInterfaceExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeNetworkInterfaces(ctx, &ec2.DescribeNetworkInterfacesInput{
		NetworkInterfaceIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeNetworkInterfaces", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.NetworkInterfaces) > 0, nil
}

func (p *Provider) deleteNetworkInterface(ctx context.Context, id string) error {
	_, err := p.ec2Client.DeleteNetworkInterface(ctx, &ec2.DeleteNetworkInterfaceInput{
		NetworkInterfaceId: awssdk.String(id),
	})
	return classify("DeleteNetworkInterface", err)
}

// Security groups

func (p *Provider) listSecurityGroups(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	return p.describeSecurityGroups(ctx, []types.Filter{tagValueFilter(clusterTag)}, clusterTag, region)
}

func (p *Provider) listSecurityGroupsByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	return p.describeSecurityGroups(ctx, []types.Filter{vpcFilter(vpcID)}, "", region)
}

func (p *Provider) describeSecurityGroups(ctx context.Context, filters []types.Filter, clusterTag, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var nextToken *string
	for {
		out, err := p.ec2Client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, classify("DescribeSecurityGroups", err)
		}
		for _, sg := range out.SecurityGroups {
			// The default group cannot be deleted; it dies with the VPC.
			if awssdk.ToString(sg.GroupName) == "default" {
				continue
			}
			id := awssdk.ToString(sg.GroupId)
			found = append(found, newResource(resource.TypeSecurityGroup, id, region,
				clusterTag, awssdk.ToString(sg.GroupName)))
		}
		if out.NextToken == nil {
			return found, nil
		}
		nextToken = out.NextToken
	}
}

func (p *Provider) securityGroupExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		GroupIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeSecurityGroups", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.SecurityGroups) > 0, nil
}

func (p *Provider) deleteSecurityGroup(ctx context.Context, id string) error {
	_, err := p.ec2Client.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: awssdk.String(id),
	})
	return classify("DeleteSecurityGroup", err)
}

func (p *Provider) stripSecurityGroupRules(ctx context.Context, id string) error {
	out, err := p.ec2Client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		GroupIds: []string{id},
	})
	if err != nil {
		return classify("DescribeSecurityGroups", err)
	}
	for _, sg := range out.SecurityGroups {
		if len(sg.IpPermissions) > 0 {
			_, err := p.ec2Client.RevokeSecurityGroupIngress(ctx, &ec2.RevokeSecurityGroupIngressInput{
				GroupId:       sg.GroupId,
				IpPermissions: sg.IpPermissions,
			})
			if err != nil {
				return classify("RevokeSecurityGroupIngress", err)
			}
		}
		if len(sg.IpPermissionsEgress) > 0 {
			_, err := p.ec2Client.RevokeSecurityGroupEgress(ctx, &ec2.RevokeSecurityGroupEgressInput{
				GroupId:       sg.GroupId,
				IpPermissions: sg.IpPermissionsEgress,
			})
			if err != nil {
				return classify("RevokeSecurityGroupEgress", err)
			}
		}
	}
	return nil
}

// Subnets

func (p *Provider) listSubnets(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	return p.describeSubnets(ctx, []types.Filter{tagValueFilter(clusterTag)}, clusterTag, region)
}

func (p *Provider) listSubnetsByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	return p.describeSubnets(ctx, []types.Filter{vpcFilter(vpcID)}, "", region)
}

func (p *Provider) describeSubnets(ctx context.Context, filters []types.Filter, clusterTag, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var nextToken *string
	for {
		out, err := p.ec2Client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, classify("DescribeSubnets", err)
		}
		for _, subnet := range out.Subnets {
			id := awssdk.ToString(subnet.SubnetId)
			found = append(found, newResource(resource.TypeSubnet, id, region,
				clusterTag, nameTag(subnet.Tags, id)))
		}
		if out.NextToken == nil {
			return found, nil
		}
		nextToken = out.NextToken
	}
}

func (p *Provider) subnetExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		SubnetIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeSubnets", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.Subnets) > 0, nil
}

func (p *Provider) deleteSubnet(ctx context.Context, id string) error {
	_, err := p.ec2Client.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{
		SubnetId: awssdk.String(id),
	})
	return classify("DeleteSubnet", err)
}

// Route tables

func (p *Provider) listRouteTables(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	return p.describeRouteTables(ctx, []types.Filter{tagValueFilter(clusterTag)}, clusterTag, region)
}

func (p *Provider) listRouteTablesByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	return p.describeRouteTables(ctx, []types.Filter{vpcFilter(vpcID)}, "", region)
}

func (p *Provider) describeRouteTables(ctx context.Context, filters []types.Filter, clusterTag, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var nextToken *string
	for {
		out, err := p.ec2Client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, classify("DescribeRouteTables", err)
		}
		for _, rt := range out.RouteTables {
			// The main route table cannot be deleted; it dies with the VPC.
			if isMainRouteTable(rt) {
				continue
			}
			id := awssdk.ToString(rt.RouteTableId)
			found = append(found, newResource(resource.TypeRouteTable, id, region,
				clusterTag, nameTag(rt.Tags, id)))
		}
		if out.NextToken == nil {
			return found, nil
		}
		nextToken = out.NextToken
	}
}

func isMainRouteTable(rt types.RouteTable) bool {
	for _, assoc := range rt.Associations {
		if awssdk.ToBool(assoc.Main) {
			return true
		}
	}
	return false
}

func (p *Provider) routeTableExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		RouteTableIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeRouteTables", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.RouteTables) > 0, nil
}

func (p *Provider) deleteRouteTable(ctx context.Context, id string) error {
	_, err := p.ec2Client.DeleteRouteTable(ctx, &ec2.DeleteRouteTableInput{
		RouteTableId: awssdk.String(id),
	})
	return classify("DeleteRouteTable", err)
}

// Internet gateways

func (p *Provider) listInternetGateways(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	return p.describeInternetGateways(ctx, []types.Filter{tagValueFilter(clusterTag)}, clusterTag, region)
}

func (p *Provider) listInternetGatewaysByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	filter := types.Filter{
		Name:   awssdk.String("attachment.vpc-id"),
		Values: []string{vpcID},
	}
	return p.describeInternetGateways(ctx, []types.Filter{filter}, "", region)
}

func (p *Provider) describeInternetGateways(ctx context.Context, filters []types.Filter, clusterTag, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var nextToken *string
	for {
		out, err := p.ec2Client.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
			Filters:   filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, classify("DescribeInternetGateways", err)
		}
		for _, igw := range out.InternetGateways {
			id := awssdk.ToString(igw.InternetGatewayId)
			found = append(found, newResource(resource.TypeInternetGateway, id, region,
				clusterTag, nameTag(igw.Tags, id)))
		}
		if out.NextToken == nil {
			return found, nil
		}
		nextToken = out.NextToken
	}
}

func (p *Provider) internetGatewayExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		InternetGatewayIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeInternetGateways", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.InternetGateways) > 0, nil
}

// deleteInternetGateway detaches the gateway from any VPC before deleting it;
// a still-attached gateway cannot be deleted.
func (p *Provider) deleteInternetGateway(ctx context.Context, id string) error {
	out, err := p.ec2Client.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		InternetGatewayIds: []string{id},
	})
	if err != nil {
		return classify("DescribeInternetGateways", err)
	}
	for _, igw := range out.InternetGateways {
		for _, attachment := range igw.Attachments {
			_, err := p.ec2Client.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
				InternetGatewayId: awssdk.String(id),
				VpcId:             attachment.VpcId,
			})
			if err != nil {
				cerr := classify("DetachInternetGateway", err)
				if !provider.IsNotFound(cerr) {
					return cerr
				}
			}
		}
	}

	_, err = p.ec2Client.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{
		InternetGatewayId: awssdk.String(id),
	})
	return classify("DeleteInternetGateway", err)
}

// Elastic IPs

func (p *Provider) listElasticIPs(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	out, err := p.ec2Client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{
		Filters: []types.Filter{tagValueFilter(clusterTag)},
	})
	if err != nil {
		return nil, classify("DescribeAddresses", err)
	}
	var found []*resource.Resource
	for _, addr := range out.Addresses {
		id := awssdk.ToString(addr.AllocationId)
		found = append(found, newResource(resource.TypeElasticIP, id, region,
			clusterTag, nameTag(addr.Tags, awssdk.ToString(addr.PublicIp))))
	}
	return found, nil
}

// listElasticIPsByVpc resolves VPC membership through the addresses'
// network-interface attachments; addresses themselves carry no VPC id.
func (p *Provider) listElasticIPsByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	enis, err := p.describeNetworkInterfaces(ctx, []types.Filter{vpcFilter(vpcID)}, "", region)
	if err != nil {
		return nil, err
	}
	inVpc := make(map[string]bool, len(enis))
	for _, eni := range enis {
		inVpc[eni.ID] = true
	}

	out, err := p.ec2Client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, classify("DescribeAddresses", err)
	}
	var found []*resource.Resource
	for _, addr := range out.Addresses {
		if addr.NetworkInterfaceId == nil || !inVpc[*addr.NetworkInterfaceId] {
			continue
		}
		id := awssdk.ToString(addr.AllocationId)
		found = append(found, newResource(resource.TypeElasticIP, id, region,
			"", nameTag(addr.Tags, awssdk.ToString(addr.PublicIp))))
	}
	return found, nil
}

func (p *Provider) elasticIPExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{
		AllocationIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeAddresses", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.Addresses) > 0, nil
}

func (p *Provider) releaseElasticIP(ctx context.Context, id string) error {
	_, err := p.ec2Client.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{
		AllocationId: awssdk.String(id),
	})
	return classify("ReleaseAddress", err)
}

// NAT gateways

// listNatGateways matches tags client-side; DescribeNatGateways has no
// tag-value filter.
func (p *Provider) listNatGateways(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	return p.describeNatGateways(ctx, nil, clusterTag, region)
}

func (p *Provider) listNatGatewaysByVpc(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	return p.describeNatGateways(ctx, []types.Filter{vpcFilter(vpcID)}, "", region)
}

func (p *Provider) describeNatGateways(ctx context.Context, filters []types.Filter, clusterTag, region string) ([]*resource.Resource, error) {
	var found []*resource.Resource
	var nextToken *string
	for {
		out, err := p.ec2Client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
			Filter:    filters,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, classify("DescribeNatGateways", err)
		}
		for _, natgw := range out.NatGateways {
			if natgw.State == types.NatGatewayStateDeleted {
				continue
			}
			if clusterTag != "" && !tagsMatchCluster(natgw.Tags, clusterTag) {
				continue
			}
			id := awssdk.ToString(natgw.NatGatewayId)
			found = append(found, newResource(resource.TypeNatGateway, id, region,
				clusterTag, nameTag(natgw.Tags, id)))
		}
		if out.NextToken == nil {
			return found, nil
		}
		nextToken = out.NextToken
	}
}

func (p *Provider) natGatewayExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{
		NatGatewayIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeNatGateways", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	for _, natgw := range out.NatGateways {
		if natgw.State != types.NatGatewayStateDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (p *Provider) deleteNatGateway(ctx context.Context, id string) error {
	_, err := p.ec2Client.DeleteNatGateway(ctx, &ec2.DeleteNatGatewayInput{
		NatGatewayId: awssdk.String(id),
	})
	return classify("DeleteNatGateway", err)
}

// Key pairs

// listKeyPairs matches names and tags client-side; the cluster convention
// names key pairs after the cluster ("my-cluster-bastion-key").
func (p *Provider) listKeyPairs(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	out, err := p.ec2Client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{})
	if err != nil {
		return nil, classify("DescribeKeyPairs", err)
	}
	var found []*resource.Resource
	for _, kp := range out.KeyPairs {
		name := awssdk.ToString(kp.KeyName)
		if !strings.Contains(name, clusterTag) && !tagsMatchCluster(kp.Tags, clusterTag) {
			continue
		}
		found = append(found, newResource(resource.TypeKeyPair, name, region, clusterTag, name))
	}
	return found, nil
}

func (p *Provider) keyPairExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{
		KeyNames: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeKeyPairs", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.KeyPairs) > 0, nil
}

func (p *Provider) deleteKeyPair(ctx context.Context, id string) error {
	_, err := p.ec2Client.DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{
		KeyName: awssdk.String(id),
	})
	return classify("DeleteKeyPair", err)
}

// VPCs

func (p *Provider) listVpcs(ctx context.Context, clusterTag, region string) ([]*resource.Resource, error) {
	out, err := p.ec2Client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []types.Filter{tagValueFilter(clusterTag)},
	})
	if err != nil {
		return nil, classify("DescribeVpcs", err)
	}
	var found []*resource.Resource
	for _, vpc := range out.Vpcs {
		id := awssdk.ToString(vpc.VpcId)
		found = append(found, newResource(resource.TypeVpc, id, region,
			clusterTag, nameTag(vpc.Tags, id)))
	}
	return found, nil
}

func (p *Provider) listVpcByID(ctx context.Context, vpcID, region string) ([]*resource.Resource, error) {
	out, err := p.ec2Client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		VpcIds: []string{vpcID},
	})
	if err != nil {
		cerr := classify("DescribeVpcs", err)
		if provider.IsNotFound(cerr) {
			return nil, nil
		}
		return nil, cerr
	}
	var found []*resource.Resource
	for _, vpc := range out.Vpcs {
		id := awssdk.ToString(vpc.VpcId)
		found = append(found, newResource(resource.TypeVpc, id, region,
			"", nameTag(vpc.Tags, id)))
	}
	return found, nil
}

func (p *Provider) vpcExists(ctx context.Context, id string) (bool, error) {
	out, err := p.ec2Client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		VpcIds: []string{id},
	})
	if err != nil {
		cerr := classify("DescribeVpcs", err)
		if provider.IsNotFound(cerr) {
			return false, nil
		}
		return false, cerr
	}
	return len(out.Vpcs) > 0, nil
}

func (p *Provider) deleteVpc(ctx context.Context, id string) error {
	_, err := p.ec2Client.DeleteVpc(ctx, &ec2.DeleteVpcInput{
		VpcId: awssdk.String(id),
	})
	return classify("DeleteVpc", err)
}
