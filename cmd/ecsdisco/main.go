// Package main is the entry point for the ecsdisco CLI.
//
// ecsdisco declares an ECS service discovery topology (two VPCs, a Fargate
// service registered in a Cloud Map namespace, and the association of the
// namespace's hosted zone with the second VPC) and synthesizes it with the
// AWS CDK.
//
// Commands: init, plan, validate, synth, associate, publish.
//
// For detailed usage information, run:
//
//	ecsdisco --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/jsii-runtime-go"

	"github.com/imamik/ecsdisco/cmd/ecsdisco/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Root().ExecuteContext(ctx)
	stop()

	// Stops the jsii kernel process if synthesis started one.
	jsii.Close()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
