// Package stack renders a checked topology plan into AWS CDK constructs and
// synthesizes the CloudFormation template.
//
// Declarations are rendered in graph order, so every construct only
// references constructs rendered before it. The hosted zone association is
// rendered as an imported zone followed by an SDK-call custom resource,
// because neither the namespace nor an imported zone can attach a network
// directly.
package stack
