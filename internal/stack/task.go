package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/internal/topology"
)

func (r *renderer) renderTask() error {
	t := r.plan.TaskTemplate
	if r.out.Role == nil {
		return fmt.Errorf("identity %q not rendered", t.IdentityID)
	}

	def := awsecs.NewFargateTaskDefinition(r.out.Stack, jsii.String(t.ID), &awsecs.FargateTaskDefinitionProps{
		Cpu:            jsii.Number(t.CPU),
		MemoryLimitMiB: jsii.Number(t.MemoryLimitMiB),
		TaskRole:       r.out.Role,
	})
	r.component(def, topology.KindTaskTemplate)

	r.out.TaskDefinition = def
	return nil
}

// renderContainer adds the task template's container. Its construct ID is
// the container name, scoped by the task definition.
func (r *renderer) renderContainer() error {
	t := r.plan.TaskTemplate
	if r.out.TaskDefinition == nil {
		return fmt.Errorf("task template %q not rendered", t.ID)
	}

	r.out.Container = r.out.TaskDefinition.AddContainer(jsii.String(t.Container.Name), &awsecs.ContainerDefinitionOptions{
		Image: awsecs.ContainerImage_FromRegistry(jsii.String(t.Container.Image), nil),
		PortMappings: &[]*awsecs.PortMapping{
			{ContainerPort: jsii.Number(t.Container.Port)},
		},
	})
	return nil
}
