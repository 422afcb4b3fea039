package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/customresources"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/internal/topology"
	"github.com/imamik/ecsdisco/internal/util/naming"
)

// renderZoneLookup imports the namespace's hosted zone by its ID token.
func (r *renderer) renderZoneLookup() error {
	lookup := r.plan.ZoneLookup
	if r.out.Namespace == nil {
		return fmt.Errorf("namespace %q not rendered", lookup.NamespaceID)
	}

	r.out.Zone = awsroute53.PrivateHostedZone_FromPrivateHostedZoneId(
		r.out.Stack, jsii.String(lookup.ID), r.out.Namespace.NamespaceHostedZoneId())
	return nil
}

// renderZoneAssociation associates the imported zone with the target
// network through Route 53 SDK calls on create and delete.
func (r *renderer) renderZoneAssociation() error {
	assoc := r.plan.ZoneAssociation
	if r.out.Zone == nil {
		return fmt.Errorf("zone %q not resolved", assoc.ZoneLookupID)
	}
	vpc, ok := r.out.Networks[assoc.PartitionID]
	if !ok {
		return fmt.Errorf("network %q not rendered", assoc.PartitionID)
	}

	zoneID := r.out.Zone.HostedZoneId()
	params := map[string]interface{}{
		"HostedZoneId": zoneID,
		"VPC": map[string]interface{}{
			"VPCId":     vpc.VpcId(),
			"VPCRegion": r.out.Stack.Region(),
		},
	}
	physicalID := customresources.PhysicalResourceId_Of(
		jsii.String(naming.AssociationPhysicalID(r.plan.StackName, assoc.PartitionID)))

	zoneArn := fmt.Sprintf("arn:%s:route53:::hostedzone/%s", *awscdk.Aws_PARTITION(), *zoneID)

	r.out.Association = customresources.NewAwsCustomResource(r.out.Stack, jsii.String(assoc.ID),
		&customresources.AwsCustomResourceProps{
			OnCreate: &customresources.AwsSdkCall{
				Service:            jsii.String("Route53"),
				Action:             jsii.String("associateVPCWithHostedZone"),
				Parameters:         params,
				PhysicalResourceId: physicalID,
			},
			OnDelete: &customresources.AwsSdkCall{
				Service:    jsii.String("Route53"),
				Action:     jsii.String("disassociateVPCFromHostedZone"),
				Parameters: params,
			},
			Policy: customresources.AwsCustomResourcePolicy_FromStatements(&[]awsiam.PolicyStatement{
				awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
					Actions: jsii.Strings(
						"route53:AssociateVPCWithHostedZone",
						"route53:DisassociateVPCFromHostedZone",
					),
					Resources: jsii.Strings(zoneArn),
				}),
				awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
					Actions:   jsii.Strings("ec2:DescribeVpcs"),
					Resources: jsii.Strings("*"),
				}),
			}),
			InstallLatestAwsSdk: jsii.Bool(false),
		})
	r.component(r.out.Association, topology.KindZoneAssociation)
	return nil
}
