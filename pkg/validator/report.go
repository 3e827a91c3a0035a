/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"errors"

	"github.com/google/uuid"

	"github.com/NVIDIA/clusterspec/pkg/header"
)

// ValidationStatus is the overall outcome of a report.
type ValidationStatus string

const (
	ValidationStatusPass ValidationStatus = "pass"
	ValidationStatusFail ValidationStatus = "fail"
)

// Report aggregates validation results for several sources.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// ID uniquely identifies the report.
	ID string `json:"id" yaml:"id"`

	Summary Summary `json:"summary" yaml:"summary"`

	Results []SourceResult `json:"results" yaml:"results"`
}

// Summary counts results by outcome.
type Summary struct {
	Total  int              `json:"total" yaml:"total"`
	Passed int              `json:"passed" yaml:"passed"`
	Failed int              `json:"failed" yaml:"failed"`
	Status ValidationStatus `json:"status" yaml:"status"`
}

// SourceResult is the outcome for one source document.
type SourceResult struct {
	Source    string     `json:"source" yaml:"source"`
	Valid     bool       `json:"valid" yaml:"valid"`
	Violation *Violation `json:"violation,omitempty" yaml:"violation,omitempty"`

	// Error holds operational failures such as unreadable files.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewReport creates an empty passing report stamped with version.
func NewReport(version string) *Report {
	r := &Report{
		ID:      uuid.NewString(),
		Results: []SourceResult{},
		Summary: Summary{Status: ValidationStatusPass},
	}
	r.Init(header.KindValidationReport, version)
	return r
}

// Add records the outcome for source. A nil err is a pass.
func (r *Report) Add(source string, err error) {
	res := SourceResult{Source: source, Valid: err == nil}
	if err != nil {
		var viol *Violation
		if errors.As(err, &viol) {
			res.Violation = viol
		} else {
			res.Error = err.Error()
		}
	}

	r.Results = append(r.Results, res)
	r.Summary.Total++
	if res.Valid {
		r.Summary.Passed++
	} else {
		r.Summary.Failed++
		r.Summary.Status = ValidationStatusFail
	}
}

// Failed reports whether any source failed.
func (r *Report) Failed() bool {
	return r.Summary.Failed > 0
}
