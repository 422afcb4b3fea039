package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicediscovery"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/internal/topology"
)

func (r *renderer) renderNamespace() error {
	ns := r.plan.Namespace
	vpc, ok := r.out.Networks[ns.PartitionID]
	if !ok {
		return fmt.Errorf("network %q not rendered", ns.PartitionID)
	}

	namespace := awsservicediscovery.NewPrivateDnsNamespace(r.out.Stack, jsii.String(ns.ID),
		&awsservicediscovery.PrivateDnsNamespaceProps{
			Name: jsii.String(ns.Name),
			Vpc:  vpc,
		})
	r.component(namespace, topology.KindNamespace)

	r.out.Namespace = namespace
	return nil
}
