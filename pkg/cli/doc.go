/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the clusterspec tool.
//
// # Overview
//
// clusterspec validates cluster specification documents against the cluster schema,
// fills in schema defaults and prints schema information. It is intended for CI
// pipelines and for provisioning tools that need a single normalized input.
//
// # Commands
//
// validate - Validate one or more specifications:
//
//	clusterspec validate cluster.yaml
//	clusterspec validate a.yaml b.yaml --format json --output cm://infra/validation
//
// Prints "FILE: ok" or "FILE: <message>" per file. With --format a report document
// is written instead. Exits non-zero when any file fails.
//
// normalize - Validate a specification and write it with defaults applied:
//
//	clusterspec normalize cluster.yaml --output normalized.yaml
//	clusterspec normalize cluster.yaml --format json --output cm://infra/cluster-spec
//
// default - Print a schema default by raw path segments:
//
//	clusterspec default properties kubernetesVersion default
//
// schema - Print the schema in use:
//
//	clusterspec schema --format yaml
//
// # Global Flags
//
//	--schema       Schema file (default: embedded schema)
//	--log-level    Log level: debug, info, warn, error (default: warn)
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	CLUSTERSPEC_SCHEMA  Schema file, same as --schema
//	LOG_LEVEL           Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG          Path to kubeconfig file for cm:// outputs
//
// # Exit Codes
//
//	0  Success
//	1  General error or validation failure
//	2  Context canceled or timeout
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to:
//   - pkg/schema - Schema loading and lookups
//   - pkg/validator - Validation and reports
//   - pkg/defaults - Defaults application
//   - pkg/serializer - Output formatting (including ConfigMap)
//   - pkg/logging - Structured logging
package cli
