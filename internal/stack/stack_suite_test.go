//go:build integration

// Synthesis tests run the construct library through the jsii runtime, which
// needs node on the PATH.
//
// Run these tests with:
//
//	go test -v -tags=integration ./internal/stack/...
package stack

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/ecsdisco/internal/config"
	"github.com/imamik/ecsdisco/internal/topology"
)

func TestStackIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stack Synthesis Suite")
}

var _ = AfterSuite(func() {
	jsii.Close()
})

// render builds a plan from the default config after applying mutate and
// renders it into a fresh app.
func render(mutate ...func(*config.Config)) (*Stack, assertions.Template) {
	cfg := config.Default()
	for _, m := range mutate {
		m(cfg)
	}
	plan, err := topology.Build(cfg)
	Expect(err).NotTo(HaveOccurred())

	app := awscdk.NewApp(nil)
	s, err := New(app, cfg.StackName, plan, Props{Tags: cfg.Tags})
	Expect(err).NotTo(HaveOccurred())
	return s, assertions.Template_FromStack(s.Stack, nil)
}

var _ = Describe("Stack", func() {
	var (
		s        *Stack
		template assertions.Template
	)

	BeforeEach(func() {
		s, template = render()
	})

	Context("network partitions", func() {
		It("declares two VPCs with the same block", func() {
			template.ResourceCountIs(jsii.String("AWS::EC2::VPC"), jsii.Number(2))
			template.AllResourcesProperties(jsii.String("AWS::EC2::VPC"), map[string]interface{}{
				"CidrBlock": "10.0.0.0/16",
			})
			Expect(s.Networks).To(HaveKey("ECSVPC"))
			Expect(s.Networks).To(HaveKey("TestVPC"))
		})

		It("declares two zones of public and isolated subnets per VPC", func() {
			template.ResourceCountIs(jsii.String("AWS::EC2::Subnet"), jsii.Number(8))
			for _, cidr := range []string{"10.0.0.0/24", "10.0.1.0/24", "10.0.2.0/24", "10.0.3.0/24"} {
				template.HasResourceProperties(jsii.String("AWS::EC2::Subnet"), map[string]interface{}{
					"CidrBlock": cidr,
				})
			}
			Expect(*s.Networks["ECSVPC"].PublicSubnets()).To(HaveLen(2))
			Expect(*s.Networks["ECSVPC"].IsolatedSubnets()).To(HaveLen(2))
			Expect(*s.Networks["TestVPC"].PublicSubnets()).To(HaveLen(2))
			Expect(*s.Networks["TestVPC"].IsolatedSubnets()).To(HaveLen(2))
		})

		It("tags each VPC with its component and partition role", func() {
			template.HasResourceProperties(jsii.String("AWS::EC2::VPC"), map[string]interface{}{
				"Tags": assertions.Match_ArrayWith(&[]interface{}{
					map[string]interface{}{"Key": "ecsdisco.io/component", "Value": "network"},
					map[string]interface{}{"Key": "ecsdisco.io/partition", "Value": "validation"},
				}),
			})
		})

		It("tags the task definition with its component", func() {
			template.HasResourceProperties(jsii.String("AWS::ECS::TaskDefinition"), map[string]interface{}{
				"Tags": assertions.Match_ArrayWith(&[]interface{}{
					map[string]interface{}{"Key": "ecsdisco.io/component", "Value": "task-template"},
					map[string]interface{}{"Key": "ecsdisco.io/managed-by", "Value": "ecsdisco"},
				}),
			})
		})
	})

	Context("cluster and namespaces", func() {
		It("enables container insights", func() {
			template.HasResourceProperties(jsii.String("AWS::ECS::Cluster"), map[string]interface{}{
				"ClusterSettings": []interface{}{
					map[string]interface{}{"Name": "containerInsights", "Value": "enabled"},
				},
			})
		})

		It("declares the explicit and the default namespace independently", func() {
			template.ResourceCountIs(jsii.String("AWS::ServiceDiscovery::PrivateDnsNamespace"), jsii.Number(2))
			template.HasResourceProperties(jsii.String("AWS::ServiceDiscovery::PrivateDnsNamespace"), map[string]interface{}{
				"Name": "service",
			})
			template.HasResourceProperties(jsii.String("AWS::ServiceDiscovery::PrivateDnsNamespace"), map[string]interface{}{
				"Name": "local",
			})
		})

		It("omits the default namespace when disabled", func() {
			_, tmpl := render(func(c *config.Config) { c.Cluster.DefaultNamespace.Enabled = false })
			tmpl.ResourceCountIs(jsii.String("AWS::ServiceDiscovery::PrivateDnsNamespace"), jsii.Number(1))
		})
	})

	Context("task identity and template", func() {
		It("grants exactly the configured actions on every resource", func() {
			template.HasResourceProperties(jsii.String("AWS::IAM::Policy"), map[string]interface{}{
				"PolicyDocument": map[string]interface{}{
					"Statement": assertions.Match_ArrayWith(&[]interface{}{
						map[string]interface{}{
							"Action": []interface{}{
								"ssmmessages:CreateControlChannel",
								"ssmmessages:CreateDataChannel",
								"ssmmessages:OpenControlChannel",
								"ssmmessages:OpenDataChannel",
								"elasticfilesystem:*",
							},
							"Effect":   "Allow",
							"Resource": "*",
						},
					}),
				},
			})
		})

		It("is assumed by the task service", func() {
			template.HasResourceProperties(jsii.String("AWS::IAM::Role"), map[string]interface{}{
				"AssumeRolePolicyDocument": map[string]interface{}{
					"Statement": assertions.Match_ArrayWith(&[]interface{}{
						assertions.Match_ObjectLike(&map[string]interface{}{
							"Principal": map[string]interface{}{"Service": "ecs-tasks.amazonaws.com"},
						}),
					}),
				},
			})
		})

		It("declares one nginx container", func() {
			template.HasResourceProperties(jsii.String("AWS::ECS::TaskDefinition"), map[string]interface{}{
				"Cpu":    "256",
				"Memory": "512",
				"ContainerDefinitions": []interface{}{
					assertions.Match_ObjectLike(&map[string]interface{}{
						"Name":  "nginx",
						"Image": "nginx:latest",
						"PortMappings": []interface{}{
							map[string]interface{}{"ContainerPort": 80, "Protocol": "tcp"},
						},
					}),
				},
			})
		})
	})

	Context("service registration", func() {
		It("runs two replicas with public addresses", func() {
			template.HasResourceProperties(jsii.String("AWS::ECS::Service"), map[string]interface{}{
				"DesiredCount": 2,
				"NetworkConfiguration": map[string]interface{}{
					"AwsvpcConfiguration": assertions.Match_ObjectLike(&map[string]interface{}{
						"AssignPublicIp": "ENABLED",
					}),
				},
			})
		})

		It("registers an A record with a 30 second TTL", func() {
			template.HasResourceProperties(jsii.String("AWS::ServiceDiscovery::Service"), map[string]interface{}{
				"Name": "nginx",
				"DnsConfig": assertions.Match_ObjectLike(&map[string]interface{}{
					"DnsRecords": []interface{}{
						map[string]interface{}{"TTL": 30, "Type": "A"},
					},
				}),
			})
		})
	})

	Context("zone association", func() {
		It("associates the namespace zone with the validation VPC", func() {
			template.ResourceCountIs(jsii.String("Custom::AWS"), jsii.Number(1))
			Expect(s.Zone).NotTo(BeNil())
			Expect(s.Association).NotTo(BeNil())
		})

		It("is omitted when disabled", func() {
			disabled, tmpl := render(func(c *config.Config) { c.Association.Enabled = false })
			tmpl.ResourceCountIs(jsii.String("Custom::AWS"), jsii.Number(0))
			Expect(disabled.Zone).To(BeNil())
		})
	})
})

var _ = Describe("Synth", func() {
	synth := func() *Result {
		plan, err := topology.Build(config.Default())
		Expect(err).NotTo(HaveOccurred())
		res, err := Synth(plan, SynthOptions{Outdir: GinkgoT().TempDir()})
		Expect(err).NotTo(HaveOccurred())
		return res
	}

	It("writes the template and summarizes it", func() {
		res := synth()
		Expect(res.TemplateFile).To(BeAnExistingFile())
		Expect(res.Summary.Count("AWS::EC2::VPC")).To(Equal(2))
		Expect(res.Summary.Count("AWS::EC2::Subnet")).To(Equal(8))
		Expect(res.Summary.Count("AWS::ECS::Service")).To(Equal(1))

		records := PropertiesOf(res.Template, "AWS::ServiceDiscovery::Service")
		Expect(records).To(HaveLen(1))
		Expect(records[0].Get("DnsConfig.DnsRecords.0.TTL").Int()).To(Equal(int64(30)))
	})

	It("produces identical templates from identical plans", func() {
		Expect(synth().Template).To(MatchJSON(synth().Template))
	})
})
