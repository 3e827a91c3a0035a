/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/NVIDIA/clusterspec/pkg/tree"
)

const (
	rulePrivateNetwork = "privateNetwork"
	rulePrivateIP      = "privateIP"
	ruleSubnetwork     = "privateSubnetwork"
	ruleMembership     = "subnetMembership"

	unknownMachine = "<unknown>"
)

// ValidateSemantic checks the cross-field rules. spec is expected to have passed
// structural validation; nodes of unexpected shape are skipped.
//
// The rules only apply when usePrivateNetwork is true:
//  1. privateNetwork and privateSubnetwork must both be non-blank.
//  2. every machine must define a non-blank privateIP.
//  3. every privateIP must lie inside privateSubnetwork. Host bits in the CIDR are
//     ignored. Addresses and prefixes are parsed strictly: leading zeros in IPv4
//     fields are rejected and IPv4-mapped IPv6 addresses never match an IPv4 prefix.
func (v *Validator) ValidateSemantic(spec tree.Value) error {
	root, ok := spec.(*tree.Object)
	if !ok || !root.GetBool("usePrivateNetwork") {
		return nil
	}

	network := strings.TrimSpace(root.GetString("privateNetwork"))
	subnetwork := strings.TrimSpace(root.GetString("privateSubnetwork"))
	if network == "" || subnetwork == "" {
		return &Violation{
			Kind:    KindSemantic,
			Rule:    rulePrivateNetwork,
			Path:    "usePrivateNetwork",
			Message: "when 'usePrivateNetwork' is true, both 'privateNetwork' and 'privateSubnetwork' are required",
		}
	}

	machines, ok := root.Get("machines")
	if !ok {
		return nil
	}
	arr, ok := machines.(*tree.Array)
	if !ok {
		return nil
	}

	var checked int
	for i, item := range arr.Items {
		m, ok := item.(*tree.Object)
		if !ok {
			continue
		}
		if err := checkMachine(m, tree.NewPath("machines", i), subnetwork); err != nil {
			return err
		}
		checked++
	}

	slog.Debug("semantic validation passed",
		"subnetwork", subnetwork,
		"machines", checked)

	return nil
}

func checkMachine(m *tree.Object, at tree.Path, subnetwork string) error {
	id := unknownMachine
	if m.Has("id") {
		id = m.GetString("id")
	}

	ip := strings.TrimSpace(m.GetString("privateIP"))
	if ip == "" {
		return &Violation{
			Kind:    KindSemantic,
			Rule:    rulePrivateIP,
			Path:    at.Field("privateIP"),
			Message: fmt.Sprintf("%smachine '%s' must define privateIP when usePrivateNetwork is true", messagePrefix, id),
		}
	}

	prefix, err := netip.ParsePrefix(subnetwork)
	if err != nil {
		return &Violation{
			Kind:    KindSemantic,
			Rule:    ruleSubnetwork,
			Path:    "privateSubnetwork",
			Message: fmt.Sprintf("%s'%s' is not a valid CIDR", messagePrefix, subnetwork),
		}
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil || !prefix.Contains(addr) {
		return &Violation{
			Kind:    KindSemantic,
			Rule:    ruleMembership,
			Path:    at.Field("privateIP"),
			Message: fmt.Sprintf("%smachine '%s' privateIP '%s' must be inside '%s'", messagePrefix, id, ip, subnetwork),
		}
	}

	return nil
}
