/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"errors"
	"log/slog"
	"time"

	cserrors "github.com/NVIDIA/clusterspec/pkg/errors"
	"github.com/NVIDIA/clusterspec/pkg/schema"
	"github.com/NVIDIA/clusterspec/pkg/tree"
)

// Kind tells which validation phase produced a violation.
type Kind string

const (
	// KindStructural marks violations of the schema.
	KindStructural Kind = "structural"

	// KindSemantic marks violations of cross-field rules.
	KindSemantic Kind = "semantic"
)

// Violation is a single user-facing validation failure.
type Violation struct {
	// Kind is the phase that failed.
	Kind Kind `json:"kind" yaml:"kind"`

	// Rule names the violated schema keyword or semantic rule.
	Rule string `json:"rule,omitempty" yaml:"rule,omitempty"`

	// Path is the rendered location of the problem, empty for the document root.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Message is the canonical message.
	Message string `json:"message" yaml:"message"`

	// Suggestion is the closest declared field name for unknown fields.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Error returns the canonical message.
func (v *Violation) Error() string {
	return v.Message
}

// Validator validates cluster specifications against one schema. It holds no
// per-call state and is safe for concurrent use.
type Validator struct {
	schema      *schema.Schema
	suggestions bool
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithSuggestions returns an Option that enables "did you mean" hints for unknown fields.
func WithSuggestions(enabled bool) Option {
	return func(v *Validator) {
		v.suggestions = enabled
	}
}

// New creates a Validator bound to s.
func New(s *schema.Schema, opts ...Option) *Validator {
	v := &Validator{schema: s}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Schema returns the schema the validator is bound to.
func (v *Validator) Schema() *schema.Schema {
	return v.schema
}

// Validate runs structural then semantic validation and returns the first failure.
// Failures are *Violation values; any other error means validation could not run.
func (v *Validator) Validate(spec tree.Value) error {
	start := time.Now()

	err := v.ValidateStructural(spec)
	if err == nil {
		err = v.ValidateSemantic(spec)
	}

	observe(err, time.Since(start))
	return err
}

// ValidateStructural checks spec against the schema only.
func (v *Validator) ValidateStructural(spec tree.Value) error {
	ev, err := v.schema.Validate(spec)
	if err != nil {
		return cserrors.Wrap(cserrors.ErrCodeInternal, "structural validation could not run", err)
	}
	if ev == nil {
		return nil
	}

	viol := Translate(ev, v.schema)
	if v.suggestions && ev.Rule == ruleAdditionalProperties {
		viol.Suggestion = suggest(v.schema, ev)
	}

	slog.Debug("structural violation",
		"rule", ev.Rule,
		"path", ev.Path.String(),
		"raw", ev.Message)

	return viol
}

// IsViolation reports whether err is a validation failure rather than an
// operational error.
func IsViolation(err error) bool {
	var viol *Violation
	return errors.As(err, &viol)
}
