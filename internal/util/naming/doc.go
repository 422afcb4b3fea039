// Package naming provides consistent naming functions for stack constructs.
//
// Construct IDs follow the patterns the CDK itself uses ({Group}Subnet{n})
// so synthesized logical IDs line up with hand-written stacks. Discovery
// names follow {service}.{namespace}.
package naming
