package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsservicediscovery"
	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/internal/config"
	"github.com/imamik/ecsdisco/internal/topology"
)

func (r *renderer) renderService() error {
	s := r.plan.Service
	if r.out.Cluster == nil || r.out.TaskDefinition == nil || r.out.Namespace == nil {
		return fmt.Errorf("cluster, task definition and namespace must be rendered first")
	}

	subnetType, err := subnetTypeOf(s.SubnetTag)
	if err != nil {
		return err
	}
	recordType, err := dnsRecordTypeOf(s.Registration.RecordType)
	if err != nil {
		return err
	}

	svc := awsecs.NewFargateService(r.out.Stack, jsii.String(s.ID), &awsecs.FargateServiceProps{
		Cluster:        r.out.Cluster,
		TaskDefinition: r.out.TaskDefinition,
		DesiredCount:   jsii.Number(s.DesiredCount),
		AssignPublicIp: jsii.Bool(s.AssignPublicIP),
		VpcSubnets: &awsec2.SubnetSelection{
			SubnetType: subnetType,
		},
		CloudMapOptions: &awsecs.CloudMapOptions{
			Name:              jsii.String(s.Registration.Name),
			CloudMapNamespace: r.out.Namespace,
			DnsRecordType:     recordType,
			DnsTtl:            awscdk.Duration_Seconds(jsii.Number(s.Registration.TTL.Seconds())),
		},
	})
	r.component(svc, topology.KindService)

	r.out.Service = svc
	return nil
}

func dnsRecordTypeOf(recordType string) (awsservicediscovery.DnsRecordType, error) {
	switch recordType {
	case config.RecordTypeA:
		return awsservicediscovery.DnsRecordType_A, nil
	case config.RecordTypeAAAA:
		return awsservicediscovery.DnsRecordType_AAAA, nil
	case config.RecordTypeSRV:
		return awsservicediscovery.DnsRecordType_SRV, nil
	default:
		return "", fmt.Errorf("unsupported record type %q", recordType)
	}
}
