/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator checks cluster specifications and reports the first problem found.
//
// # Overview
//
// Validation runs in two phases that short-circuit on the first failure:
//
//  1. Structural: the document is checked against the schema and the first violation
//     reported by the schema engine is translated into a stable message.
//  2. Semantic: cross-field rules the schema cannot express, such as machine private
//     IPs belonging to the private subnetwork.
//
// Failures are returned as *Violation errors whose Error() text is the canonical
// message. Only one violation is ever reported per call.
//
// # Messages
//
//	Invalid cluster spec: 'machines' must be a non-empty array
//	Invalid cluster spec: 'machines[0].id' is a required string
//	Invalid cluster spec: unknown field 'machines[0].extra' is not allowed
//	Invalid cluster spec: 'machines[0].platform' must be 'hcloud'
//	when 'usePrivateNetwork' is true, both 'privateNetwork' and 'privateSubnetwork' are required
//	Invalid cluster spec: machine 'w-1' must define privateIP when usePrivateNetwork is true
//	Invalid cluster spec: machine 'w-1' privateIP '10.0.1.10' must be inside '10.0.0.0/24'
//
// # Usage
//
//	s, err := schema.LoadEmbedded()
//	if err != nil {
//	    return err
//	}
//	v := validator.New(s, validator.WithSuggestions(true))
//	if err := v.Validate(doc); err != nil {
//	    var viol *validator.Violation
//	    if errors.As(err, &viol) {
//	        fmt.Println(viol.Message)
//	    }
//	}
//
// # Reports
//
// Report collects per-source results for the CLI and renders with the serializer
// package. Each report carries a header and a unique identifier.
package validator
