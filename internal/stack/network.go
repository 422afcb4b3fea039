package stack

import (
	"fmt"
	"net/netip"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/internal/topology"
)

func (r *renderer) renderNetwork(id string) error {
	part := r.plan.Partition(id)
	if part == nil {
		return fmt.Errorf("partition %q not in plan", id)
	}

	groups, err := subnetConfiguration(part)
	if err != nil {
		return err
	}

	vpc := awsec2.NewVpc(r.out.Stack, jsii.String(part.ID), &awsec2.VpcProps{
		IpAddresses:         awsec2.IpAddresses_Cidr(jsii.String(part.CIDR)),
		MaxAzs:              jsii.Number(part.Zones),
		SubnetConfiguration: &groups,
	})
	applyTags(vpc, r.tags().
		WithComponent(string(topology.KindNetwork)).
		WithPartition(part.Role).
		Build())

	r.out.Networks[part.ID] = vpc
	return nil
}

func (r *renderer) requireNetwork(id string) error {
	if _, ok := r.out.Networks[id]; !ok {
		return fmt.Errorf("network %q not rendered", id)
	}
	return nil
}

// subnetConfiguration folds the allocated subnets back into one group per
// name, in allocation order. The provider allocates the same CIDRs when
// given the groups in this order.
func subnetConfiguration(part *topology.Partition) ([]*awsec2.SubnetConfiguration, error) {
	var groups []*awsec2.SubnetConfiguration
	seen := make(map[string]bool)
	for _, s := range part.Subnets {
		if seen[s.Group] {
			continue
		}
		seen[s.Group] = true

		prefix, err := netip.ParsePrefix(s.CIDR)
		if err != nil {
			return nil, fmt.Errorf("subnet %s: %w", s.Name, err)
		}
		subnetType, err := subnetTypeOf(s.Tag)
		if err != nil {
			return nil, fmt.Errorf("subnet %s: %w", s.Name, err)
		}
		groups = append(groups, &awsec2.SubnetConfiguration{
			Name:       jsii.String(s.Group),
			SubnetType: subnetType,
			CidrMask:   jsii.Number(prefix.Bits()),
		})
	}
	return groups, nil
}

func subnetTypeOf(tag topology.SubnetTag) (awsec2.SubnetType, error) {
	switch tag {
	case topology.TagPublic:
		return awsec2.SubnetType_PUBLIC, nil
	case topology.TagIsolated:
		return awsec2.SubnetType_PRIVATE_ISOLATED, nil
	default:
		return "", fmt.Errorf("unsupported subnet tag %q", tag)
	}
}
