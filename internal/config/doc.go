// Package config defines the configuration model of a service discovery stack.
//
// The [Config] struct carries every literal the stack declares: the two
// network partitions, the cluster, the explicit namespace, the task role,
// the task template, and the running service with its DNS registration.
// [Default] reproduces the reference topology; [LoadFile] layers a YAML
// file on top of it and validates the result.
package config
