package cloudmap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/aws/aws-sdk-go-v2/service/servicediscovery"
	sdtypes "github.com/aws/aws-sdk-go-v2/service/servicediscovery/types"

	"github.com/imamik/ecsdisco/internal/util/retry"
)

// Request names the namespace and the VPC to associate with its zone.
type Request struct {
	NamespaceName string
	VPCID         string

	// VPCRegion defaults to the associator's region.
	VPCRegion string
}

// Result describes a completed association.
type Result struct {
	NamespaceID  string
	HostedZoneID string
	ChangeID     string

	// AlreadyAssociated is set when the VPC was associated before the run.
	AlreadyAssociated bool
}

// Associate runs all three steps: resolve the namespace, resolve its
// hosted zone, and associate the VPC with the zone.
func (a *Associator) Associate(ctx context.Context, req Request) (*Result, error) {
	if req.NamespaceName == "" || req.VPCID == "" {
		return nil, fmt.Errorf("namespace name and VPC ID are required")
	}
	region := req.VPCRegion
	if region == "" {
		region = a.region
	}
	if region == "" {
		return nil, fmt.Errorf("VPC region is required")
	}

	log := a.log.WithValues("namespace", req.NamespaceName, "vpc", req.VPCID)

	nsID, err := a.FindNamespace(ctx, req.NamespaceName)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("resolved namespace", "namespaceID", nsID)

	zoneID, err := a.ResolveHostedZone(ctx, nsID)
	if err != nil {
		return nil, err
	}
	log = log.WithValues("hostedZoneID", zoneID)
	log.V(1).Info("resolved hosted zone")

	res := &Result{NamespaceID: nsID, HostedZoneID: zoneID}

	associated, err := a.IsAssociated(ctx, zoneID, req.VPCID)
	if err != nil {
		return nil, err
	}
	if associated {
		log.Info("VPC already associated")
		res.AlreadyAssociated = true
		return res, nil
	}

	changeID, err := a.AssociateVPC(ctx, zoneID, req.VPCID, region)
	if err != nil {
		return nil, err
	}
	res.ChangeID = changeID

	log.Info("waiting for association to propagate", "changeID", changeID)
	if err := a.WaitForChange(ctx, changeID); err != nil {
		return nil, err
	}
	log.Info("VPC associated")
	return res, nil
}

// FindNamespace returns the ID of the private DNS namespace called name.
func (a *Associator) FindNamespace(ctx context.Context, name string) (string, error) {
	paginator := servicediscovery.NewListNamespacesPaginator(a.sd, &servicediscovery.ListNamespacesInput{
		Filters: []sdtypes.NamespaceFilter{{
			Name:      sdtypes.NamespaceFilterNameType,
			Values:    []string{string(sdtypes.NamespaceTypeDnsPrivate)},
			Condition: sdtypes.FilterConditionEq,
		}},
	})

	var matches []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list namespaces: %w", err)
		}
		for _, ns := range page.Namespaces {
			if aws.ToString(ns.Name) == name {
				matches = append(matches, aws.ToString(ns.Id))
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNamespaceNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("namespace name %s is ambiguous: %s", name, strings.Join(matches, ", "))
	}
}

// ResolveHostedZone returns the hosted zone ID behind a namespace.
func (a *Associator) ResolveHostedZone(ctx context.Context, namespaceID string) (string, error) {
	out, err := a.sd.GetNamespace(ctx, &servicediscovery.GetNamespaceInput{
		Id: aws.String(namespaceID),
	})
	if err != nil {
		if isNamespaceNotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrNamespaceNotFound, namespaceID)
		}
		return "", fmt.Errorf("failed to get namespace %s: %w", namespaceID, err)
	}

	ns := out.Namespace
	if ns == nil || ns.Properties == nil || ns.Properties.DnsProperties == nil ||
		aws.ToString(ns.Properties.DnsProperties.HostedZoneId) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoHostedZone, namespaceID)
	}
	return aws.ToString(ns.Properties.DnsProperties.HostedZoneId), nil
}

// IsAssociated reports whether vpcID is already associated with the zone.
func (a *Associator) IsAssociated(ctx context.Context, zoneID, vpcID string) (bool, error) {
	out, err := a.r53.GetHostedZone(ctx, &route53.GetHostedZoneInput{
		Id: aws.String(zoneID),
	})
	if err != nil {
		return false, fmt.Errorf("failed to get hosted zone %s: %w", zoneID, err)
	}
	for _, vpc := range out.VPCs {
		if aws.ToString(vpc.VPCId) == vpcID {
			return true, nil
		}
	}
	return false, nil
}

// AssociateVPC associates vpcID with the zone and returns the change ID.
func (a *Associator) AssociateVPC(ctx context.Context, zoneID, vpcID, region string) (string, error) {
	out, err := a.r53.AssociateVPCWithHostedZone(ctx, &route53.AssociateVPCWithHostedZoneInput{
		HostedZoneId: aws.String(zoneID),
		VPC: &r53types.VPC{
			VPCId:     aws.String(vpcID),
			VPCRegion: r53types.VPCRegion(region),
		},
		Comment: aws.String("associated by ecsdisco"),
	})
	if err != nil {
		if isConflictingDomain(err) {
			return "", fmt.Errorf("%w: VPC %s already resolves the domain of hosted zone %s through another zone: %w",
				ErrConflictingZone, vpcID, zoneID, err)
		}
		return "", fmt.Errorf("failed to associate VPC %s with hosted zone %s: %w", vpcID, zoneID, err)
	}
	if out.ChangeInfo == nil {
		return "", fmt.Errorf("association of VPC %s returned no change info", vpcID)
	}
	return aws.ToString(out.ChangeInfo.Id), nil
}

// WaitForChange polls a Route 53 change until it is INSYNC.
func (a *Associator) WaitForChange(ctx context.Context, changeID string) error {
	err := retry.Until(ctx, func(ctx context.Context) (bool, error) {
		out, err := a.r53.GetChange(ctx, &route53.GetChangeInput{Id: aws.String(changeID)})
		if err != nil {
			if isPermanent(err) {
				return false, err
			}
			a.log.V(1).Info("polling change failed, retrying", "changeID", changeID, "error", err.Error())
			return false, nil
		}
		if out.ChangeInfo == nil {
			return false, nil
		}
		return out.ChangeInfo.Status == r53types.ChangeStatusInsync, nil
	}, a.waitOpts...)
	if err != nil {
		return fmt.Errorf("change %s did not reach %s: %w", changeID, r53types.ChangeStatusInsync, err)
	}
	return nil
}
