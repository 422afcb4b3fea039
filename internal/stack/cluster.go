package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/internal/topology"
)

func (r *renderer) renderCluster() error {
	c := r.plan.Cluster
	vpc, ok := r.out.Networks[c.PartitionID]
	if !ok {
		return fmt.Errorf("network %q not rendered", c.PartitionID)
	}

	cluster := awsecs.NewCluster(r.out.Stack, jsii.String(c.ID), &awsecs.ClusterProps{
		Vpc:                            vpc,
		ContainerInsights:              jsii.Bool(c.ContainerInsights),
		EnableFargateCapacityProviders: jsii.Bool(c.FargateCapacityProviders),
	})
	r.component(cluster, topology.KindCluster)

	r.out.Cluster = cluster
	return nil
}

// renderDefaultNamespace constructs the cluster's default namespace
// explicitly instead of through cluster props.
func (r *renderer) renderDefaultNamespace() error {
	ns := r.plan.Cluster.DefaultNamespace
	if r.out.Cluster == nil {
		return fmt.Errorf("cluster not rendered")
	}

	r.out.DefaultNamespace = r.out.Cluster.AddDefaultCloudMapNamespace(&awsecs.CloudMapNamespaceOptions{
		Name: jsii.String(ns.Name),
		Vpc:  r.out.Networks[ns.PartitionID],
	})
	return nil
}
