/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/clusterspec/pkg/schema"
)

// maxSuggestionDistance is the largest edit distance still offered as a hint.
const maxSuggestionDistance = 2

// suggest returns the declared property closest to the unknown field named in ev,
// or "" when nothing is close enough. Ties go to the earlier declared property.
func suggest(s *schema.Schema, ev *schema.Event) string {
	parent, ok := s.NodeAt(ev.Path)
	if !ok {
		return ""
	}
	unknown := quotedName(ev.Message, "")
	if unknown == "" {
		return ""
	}

	best, bestDist := "", maxSuggestionDistance+1
	for _, name := range parent.PropertyNames {
		if d := levenshtein.ComputeDistance(unknown, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
