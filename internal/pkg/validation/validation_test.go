package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Label string `json:"label" validate:"required"`
}

type sample struct {
	Name  string `json:"name" validate:"required,min=3"`
	Items []item `json:"items" validate:"omitempty,dive"`
	Note  string `json:"-"`
}

var sampleMessages = Messages{
	"name.required":          "Name is required",
	"name.min":               "Name is too short",
	"items[].label.required": "Label cannot be empty",
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "gopher"}, sampleMessages))
}

func TestStruct_FirstRulePerField(t *testing.T) {
	err := Struct(sample{}, sampleMessages)
	errs, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, Errors{"name": "Name is required"}, errs)

	err = Struct(sample{Name: "go"}, sampleMessages)
	errs, ok = AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Name is too short", errs["name"])
}

func TestStruct_IndexedPaths(t *testing.T) {
	err := Struct(sample{Name: "gopher", Items: []item{{Label: "a"}, {}}}, sampleMessages)
	errs, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, Errors{"items[1].label": "Label cannot be empty"}, errs)
}

func TestStruct_FallbackMessage(t *testing.T) {
	err := Struct(sample{Name: "go"}, nil)
	errs, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "name failed min=3", errs["name"])
}

func TestErrors_ErrorIsStable(t *testing.T) {
	e := Errors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", e.Error())
}

func TestStruct_NonStruct(t *testing.T) {
	err := Struct("not a struct", nil)
	require.Error(t, err)
	_, ok := AsErrors(err)
	assert.False(t, ok)
}
