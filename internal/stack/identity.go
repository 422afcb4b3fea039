package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/internal/topology"
)

func (r *renderer) renderIdentity() error {
	id := r.plan.Identity

	role := awsiam.NewRole(r.out.Stack, jsii.String(id.ID), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String(id.Principal), nil),
	})
	role.AddToPrincipalPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings(id.Actions...),
		Resources: jsii.Strings(id.Resources...),
	}))
	r.component(role, topology.KindIdentity)

	r.out.Role = role
	return nil
}
