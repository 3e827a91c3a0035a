// Package defaults fills unspecified fields of a cluster specification with the
// defaults its schema declares, and holds the process-wide timeout constants.
//
// # Defaulting
//
// Apply walks the document and the schema in lock-step. For every object it injects
// each declared property that is absent and carries a default, then descends into
// every present property, including ones it just injected. Arrays descend into each
// element, either against the single items schema or positionally against a tuple,
// with indices past the tuple sharing its last item schema.
//
// Present fields are never overwritten, so Apply is idempotent. Injected values are
// deep copies of the schema literal and never alias each other. Mismatched
// shapes (array data against an object schema, and so on) are skipped; defaulting
// is meant to run on documents that already passed validation.
//
// Usage:
//
//	s, err := schema.LoadEmbedded()
//	if err != nil {
//	    return err
//	}
//	if err := validator.New(s).Validate(doc); err != nil {
//	    return err
//	}
//	defaults.Apply(doc, s)
//
// # Timeouts
//
//   - KubernetesAPITimeout: 30s for single Kubernetes API calls
package defaults
