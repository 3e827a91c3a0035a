/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/clusterspec/pkg/header"
)

func TestReport(t *testing.T) {
	r := NewReport("v0.1.0")

	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, header.KindValidationReport, r.Kind)
	assert.Equal(t, ValidationStatusPass, r.Summary.Status)
	assert.False(t, r.Failed())

	r.Add("a.yaml", nil)
	r.Add("b.yaml", &Violation{Kind: KindStructural, Message: "Invalid cluster spec: 'name' is a required string"})
	r.Add("c.yaml", errors.New("open c.yaml: no such file or directory"))

	assert.Equal(t, Summary{Total: 3, Passed: 1, Failed: 2, Status: ValidationStatusFail}, r.Summary)
	assert.True(t, r.Failed())

	require.Len(t, r.Results, 3)
	assert.True(t, r.Results[0].Valid)
	require.NotNil(t, r.Results[1].Violation)
	assert.Empty(t, r.Results[1].Error)
	assert.Nil(t, r.Results[2].Violation)
	assert.Equal(t, "open c.yaml: no such file or directory", r.Results[2].Error)
}

func TestReport_JSONShape(t *testing.T) {
	r := NewReport("")
	r.Add("a.yaml", nil)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, header.KindValidationReport, m["kind"])
	assert.Contains(t, m, "apiVersion")
	assert.Contains(t, m, "id")
	assert.Contains(t, m, "summary")
}

func TestReport_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, NewReport("").ID, NewReport("").ID)
}
