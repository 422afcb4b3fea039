package stack

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicediscovery"
	"github.com/aws/aws-cdk-go/awscdk/v2/customresources"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/internal/topology"
	"github.com/imamik/ecsdisco/internal/util/labels"
)

// Props configures the rendered stack.
type Props struct {
	// Account and Region pin the stack. Both empty yields an
	// environment-agnostic stack.
	Account string
	Region  string

	Description string

	// Tags are applied to every taggable resource, next to the standard
	// ecsdisco.io tags.
	Tags map[string]string
}

// Stack holds the rendered constructs by role.
type Stack struct {
	Stack awscdk.Stack

	Networks         map[string]awsec2.Vpc
	Cluster          awsecs.Cluster
	DefaultNamespace awsservicediscovery.INamespace
	Namespace        awsservicediscovery.PrivateDnsNamespace
	Role             awsiam.Role
	TaskDefinition   awsecs.FargateTaskDefinition
	Container        awsecs.ContainerDefinition
	Service          awsecs.FargateService
	Zone             awsroute53.IPrivateHostedZone
	Association      customresources.AwsCustomResource
}

// New renders plan as a stack named id inside scope.
func New(scope constructs.Construct, id string, plan *topology.Plan, props Props) (*Stack, error) {
	if plan == nil || plan.Graph == nil {
		return nil, fmt.Errorf("plan is required")
	}

	stackProps := &awscdk.StackProps{}
	if props.Account != "" || props.Region != "" {
		stackProps.Env = &awscdk.Environment{
			Account: optionalString(props.Account),
			Region:  optionalString(props.Region),
		}
	}
	if props.Description != "" {
		stackProps.Description = jsii.String(props.Description)
	}

	r := &renderer{
		plan: plan,
		out: &Stack{
			Stack:    awscdk.NewStack(scope, jsii.String(id), stackProps),
			Networks: make(map[string]awsec2.Vpc),
		},
	}

	for _, d := range plan.Graph.Declarations() {
		if err := r.render(d); err != nil {
			return nil, fmt.Errorf("failed to render %s %s: %w", d.Kind, d.ID, err)
		}
	}

	tags := labels.NewTagBuilder(plan.StackName).Merge(props.Tags)
	for _, tag := range tags.Sorted() {
		awscdk.Tags_Of(r.out.Stack).Add(jsii.String(tag.Key), jsii.String(tag.Value), nil)
	}
	return r.out, nil
}

// renderer turns declarations into constructs, one kind at a time.
type renderer struct {
	plan *topology.Plan
	out  *Stack
}

func (r *renderer) render(d *topology.Declaration) error {
	switch d.Kind {
	case topology.KindNetwork:
		return r.renderNetwork(d.ID)
	case topology.KindSubnet:
		// Subnets are created by their network.
		return r.requireNetwork(d.DependsOn[0])
	case topology.KindCluster:
		return r.renderCluster()
	case topology.KindDefaultNamespace:
		return r.renderDefaultNamespace()
	case topology.KindNamespace:
		return r.renderNamespace()
	case topology.KindIdentity:
		return r.renderIdentity()
	case topology.KindTaskTemplate:
		return r.renderTask()
	case topology.KindContainer:
		return r.renderContainer()
	case topology.KindService:
		return r.renderService()
	case topology.KindZoneLookup:
		return r.renderZoneLookup()
	case topology.KindZoneAssociation:
		return r.renderZoneAssociation()
	default:
		return fmt.Errorf("unknown declaration kind %q", d.Kind)
	}
}

// component tags c with the declaration kind it was rendered from.
func (r *renderer) component(c constructs.IConstruct, kind topology.Kind) {
	applyTags(c, r.tags().WithComponent(string(kind)).Build())
}

func (r *renderer) tags() *labels.TagBuilder {
	return labels.NewTagBuilder(r.plan.StackName)
}

// applyTags adds tags to c and everything below it, in key order.
func applyTags(c constructs.IConstruct, tags map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(tags)) {
		awscdk.Tags_Of(c).Add(jsii.String(k), jsii.String(tags[k]), nil)
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return jsii.String(s)
}
