// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/gsctl/internal/attrs"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type testBuildFiltersCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	Delimiter string   `yaml:"delimiter"`
	Want      []Filter `yaml:"want"`
	WantCount int      `yaml:"wantCount"`
}

type testFilterDatasetCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	WantCount int      `yaml:"wantCount"`
	WantNames []string `yaml:"wantNames"`
}

func loadTestData(t *testing.T, filename string, v interface{}) {
	t.Helper()
	data, err := testDataFS.ReadFile("testdata/" + filename)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, v))
}

func TestBuildFilters(t *testing.T) {
	var tests []testBuildFiltersCase
	loadTestData(t, "build_filters.yaml", &tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if tt.Delimiter != "" {
				t.Setenv("GSCTL_FILTER_DELIM", tt.Delimiter)
			}

			got := BuildFilters(tt.Spec)
			require.Len(t, got, tt.WantCount)
			for i, want := range tt.Want {
				assert.Equal(t, want, got[i])
			}
		})
	}
}

func TestServerSide(t *testing.T) {
	got := ServerSide("_Status=ACTIVE,Name=x,_sort!=y,_order>1")
	assert.Equal(t, map[string]string{"status": "ACTIVE"}, got)
	assert.Empty(t, ServerSide(""))
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		value  string
		filter Filter
		want   bool
	}{
		{"ACTIVE", Filter{Operand: "=", Value: "ACTIVE"}, true},
		{"ACTIVE", Filter{Operand: "=", Value: "ACTIVE", Negate: true}, false},
		{"Active", Filter{Operand: "~", Value: "active"}, true},
		{"prod-sg", Filter{Operand: "^", Value: "prod"}, true},
		{"b", Filter{Operand: ">", Value: "a"}, true},
		{"b", Filter{Operand: "<", Value: "a"}, false},
		{"my-stream-group", Filter{Operand: "@", Value: "stream"}, true},
		{"sg-123", Filter{Operand: "/", Value: `^sg-\d+$`}, true},
		{"sg-123", Filter{Operand: "/", Value: `(`}, false},
		{"x", Filter{Operand: ""}, true},
		{"x", Filter{Operand: "?"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.filter.Operand+tt.filter.Value, func(t *testing.T) {
			assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	assert.True(t, checkNumericOperand(5, Filter{Operand: "=", Value: "5"}))
	assert.False(t, checkNumericOperand(5, Filter{Operand: "=", Value: "5", Negate: true}))
	assert.True(t, checkNumericOperand(5, Filter{Operand: ">", Value: "4.5"}))
	assert.True(t, checkNumericOperand(5, Filter{Operand: "<", Value: "10"}))
	assert.False(t, checkNumericOperand(5, Filter{Operand: "=", Value: "five"}))
	assert.False(t, checkNumericOperand(5, Filter{Operand: "^", Value: "5"}))
}

func TestCheckContainsOperand(t *testing.T) {
	assert.True(t, checkContainsOperand([]any{"a", "b"}, Filter{Operand: "@", Value: "b"}))
	assert.False(t, checkContainsOperand([]any{"a"}, Filter{Operand: "@", Value: "b"}))
	assert.True(t, checkContainsOperand([]any{"a"}, Filter{Operand: "@", Value: "b", Negate: true}))
	assert.True(t, checkContainsOperand([]any{float64(2)}, Filter{Operand: "@", Value: "2"}))
	assert.True(t, checkContainsOperand(map[string]any{"team": "x"}, Filter{Operand: "@", Value: "team"}))
	assert.False(t, checkContainsOperand("str", Filter{Operand: "@", Value: "s"}))
}

func TestToFloat64(t *testing.T) {
	for _, v := range []interface{}{float64(1), float32(1), 1, int32(1), int64(1), uint(1), uint32(1), uint64(1)} {
		got, ok := toFloat64(v)
		assert.True(t, ok)
		assert.Equal(t, float64(1), got)
	}
	_, ok := toFloat64("1")
	assert.False(t, ok)
}

func TestFilterDataset(t *testing.T) {
	var tests []testFilterDatasetCase
	loadTestData(t, "filter_dataset.yaml", &tests)

	data := `[
		{"Name": "alpha", "Status": "ACTIVE", "Capacity": 1, "DefaultApplication": {"Id": "app-1"}, "Locations": ["us-east-1", "us-west-2"]},
		{"Name": "beta", "Status": "ERROR", "Capacity": 2, "DefaultApplication": {"Id": "app-2"}, "Locations": ["us-east-1"]},
		{"Name": "gamma", "Status": "ACTIVE", "Capacity": 3, "DefaultApplication": {"Id": "app-3"}, "Locations": ["eu-central-1"]}
	]`

	al := attrs.AttrList{
		{Key: "Name", OutputKey: "Name", Include: true},
		{Key: "Status", OutputKey: "state", Include: true},
		{Key: "Capacity", OutputKey: "Capacity", Include: false},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			got := FilterDataset(gjson.Parse(data), al, tt.Spec)
			require.Len(t, got, tt.WantCount)
			for i, name := range tt.WantNames {
				assert.Equal(t, name, got[i]["Name"])
			}
		})
	}
}
