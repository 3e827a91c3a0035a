/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/clusterspec/pkg/schema"
	"github.com/NVIDIA/clusterspec/pkg/tree"
)

const (
	messagePrefix = "Invalid cluster spec: "

	ruleRequired             = "required"
	ruleAdditionalProperties = "additionalProperties"
	ruleMinItems             = "minItems"
	ruleEnum                 = "enum"

	fieldMachines = "machines"
	fieldPlatform = "platform"
)

// Translate maps one structural event to its canonical violation. s supplies the
// allowed values for enum failures and may be nil.
func Translate(ev *schema.Event, s *schema.Schema) *Violation {
	viol := &Violation{
		Kind: KindStructural,
		Rule: ev.Rule,
		Path: ev.Path.String(),
	}

	switch {
	case ev.Rule == ruleRequired:
		missing := quotedName(ev.Message, "value")
		if missing == fieldMachines && len(ev.Path) == 0 {
			viol.Path = fieldMachines
			viol.Message = messagePrefix + "'machines' must be a non-empty array"
			return viol
		}
		viol.Path = ev.Path.Field(missing)
		viol.Message = fmt.Sprintf("%s'%s' is a required string", messagePrefix, viol.Path)

	case ev.Rule == ruleAdditionalProperties:
		viol.Path = ev.Path.Field(quotedName(ev.Message, "field"))
		viol.Message = fmt.Sprintf("%sunknown field '%s' is not allowed", messagePrefix, viol.Path)

	case ev.Rule == ruleMinItems && ev.Path.Equal(tree.NewPath(fieldMachines)):
		viol.Message = messagePrefix + "'machines' must be a non-empty array"

	case ev.Rule == ruleEnum && lastKey(ev.Path) == fieldPlatform:
		viol.Message = fmt.Sprintf("%s'%s' must be %s", messagePrefix, viol.Path, allowed(s, ev))

	case viol.Path != "":
		viol.Message = fmt.Sprintf("%s'%s' %s", messagePrefix, viol.Path, ev.Message)

	default:
		viol.Message = messagePrefix + ev.Message
	}

	return viol
}

// quotedName returns the first single-quoted token of msg, or def when there is none.
func quotedName(msg, def string) string {
	parts := strings.SplitN(msg, "'", 3)
	if len(parts) < 2 {
		return def
	}
	return parts[1]
}

func lastKey(p tree.Path) string {
	last, ok := p.Last()
	if !ok || last.IsIndex() {
		return ""
	}
	return last.Key()
}

// allowed renders the enum values declared at the event path. The shipped schema
// allows exactly one platform, which renders as a single quoted literal. Without a
// schema the values are recovered from the raw message.
func allowed(s *schema.Schema, ev *schema.Event) string {
	var values []string
	if s != nil {
		if n, ok := s.NodeAt(ev.Path); ok {
			for _, e := range n.Enum {
				values = append(values, "'"+literal(e)+"'")
			}
		}
	}
	if len(values) == 0 {
		parts := strings.Split(ev.Message, `"`)
		for i := 1; i < len(parts); i += 2 {
			values = append(values, "'"+parts[i]+"'")
		}
	}

	switch len(values) {
	case 0:
		return "a supported value"
	case 1:
		return values[0]
	default:
		return "one of " + strings.Join(values, ", ")
	}
}

func literal(v tree.Value) string {
	switch t := v.(type) {
	case tree.String:
		return string(t)
	case tree.Number:
		return string(t)
	case tree.Boolean:
		if t {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}
