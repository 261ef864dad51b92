package locator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xpathq/internal/xpath"
)

func TestCompile(t *testing.T) {
	testCases := []struct {
		name string
		def  Definition
		want string
	}{
		{
			name: "bare tag",
			def:  Definition{Name: "rows", From: "tr"},
			want: "//tr",
		},
		{
			name: "empty from is any tag",
			def:  Definition{Name: "all"},
			want: "//*",
		},
		{
			name: "child axis",
			def:  Definition{Name: "cells", From: "td", Axis: "child"},
			want: "./td",
		},
		{
			name: "default and",
			def: Definition{Name: "div", From: "div", Steps: []Step{
				{Op: "attribute", Args: Args{Name: "id", Value: "x"}},
				{Op: "attribute", Args: Args{Name: "class", Value: "y"}},
			}},
			want: "//div[@id='x' and @class='y']",
		},
		{
			name: "or",
			def: Definition{Name: "div", From: "div", Steps: []Step{
				{Op: "attribute", Args: Args{Name: "id", Value: "x"}},
				{Op: "or"},
				{Op: "attribute", Args: Args{Name: "id", Value: "y"}},
			}},
			want: "//div[@id='x' or @id='y']",
		},
		{
			name: "navigation closes predicate",
			def: Definition{Name: "span", From: "tag", Steps: []Step{
				{Op: "attribute", Args: Args{Name: "id", Value: "x"}},
				{Op: "child", Args: Args{Target: &Target{Tag: "span"}}},
			}},
			want: "//tag[@id='x']/child::span",
		},
		{
			name: "nested target",
			def: Definition{Name: "row", From: "tr", Steps: []Step{
				{Op: "where_child", Args: Args{Target: &Target{Definition: &Definition{
					From:  "td",
					Steps: []Step{{Op: "text_contains", Args: Args{Value: "Math"}}},
				}}}},
			}},
			want: "//tr[./child::td[contains(text()[1],'Math')]]",
		},
		{
			name: "numeric comparison",
			def: Definition{Name: "high", From: "td", Steps: []Step{
				{Op: "text_gt", Args: Args{Value: int64(80)}},
			}},
			want: "//td[number(text()) > 80]",
		},
		{
			name: "position",
			def: Definition{Name: "second", From: "tr", Steps: []Step{
				{Op: "position", Args: Args{N: IntArg(2)}},
			}},
			want: "//tr[position() = 2]",
		},
		{
			name: "indexed",
			def:  Definition{Name: "second_cell", From: "td", Index: 2},
			want: "(//td)[2]",
		},
		{
			name: "text node",
			def: Definition{Name: "labels", From: "label", Steps: []Step{
				{Op: "text_node"},
			}},
			want: "//label/text()",
		},
		{
			name: "sub element",
			def: Definition{Name: "body", From: "table", Steps: []Step{
				{Op: "sub_element", Args: Args{Value: "tbody"}},
			}},
			want: "//table/tbody",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Compile(tc.def)
			require.NoError(t, err)
			assert.Equal(t, tc.def.Name, c.Name)
			assert.Equal(t, tc.want, c.Expression)
			assert.False(t, c.Pending())
			assert.Len(t, c.Hash, 64)
		})
	}
}

func TestCompilePendingOperator(t *testing.T) {
	c, err := Compile(Definition{Name: "dangling", From: "div", Steps: []Step{
		{Op: "attribute", Args: Args{Name: "id", Value: "x"}},
		{Op: "and"},
	}})
	require.NoError(t, err)

	assert.True(t, c.Pending())
	assert.Equal(t, "//div[@id='x' and ]", c.Expression)

	_, err = c.Strict()
	require.Error(t, err)
	assert.True(t, xpath.IsInvalidState(err))
}

func TestCompileNavigationWithPendingOperator(t *testing.T) {
	_, err := Compile(Definition{Name: "bad", From: "tag", Steps: []Step{
		{Op: "attribute", Args: Args{Name: "id", Value: "x"}},
		{Op: "and"},
		{Op: "child", Args: Args{Target: &Target{Tag: "span"}}},
	}})
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, FieldState, ce.Field)
	assert.Equal(t, "bad.steps[2]", ce.Path)
	assert.True(t, xpath.IsInvalidState(err))
	assert.ErrorIs(t, err, xpath.ErrInvalidState)
	assert.Equal(t, ErrCodeInvalidState, ConvertError(err, "bad").Code)
}

func TestCompileStrictUnsupportedLiteral(t *testing.T) {
	c, err := Compile(Definition{Name: "quote", From: "td", Steps: []Step{
		{Op: "text", Args: Args{Value: `say "it's"`}},
	}})
	require.NoError(t, err)

	_, err = c.Strict()
	assert.ErrorIs(t, err, xpath.ErrUnsupportedLiteral)
}

func TestCompileErrors(t *testing.T) {
	testCases := []struct {
		name  string
		def   Definition
		field string
	}{
		{"missing name", Definition{From: "div"}, FieldName},
		{"negative index", Definition{Name: "x", Index: -1}, FieldIndex},
		{"bad axis", Definition{Name: "x", Axis: "sideways"}, FieldAxis},
		{"unknown op", Definition{Name: "x", Steps: []Step{{Op: "teleport"}}}, FieldOp},
		{"missing name arg", Definition{Name: "x", Steps: []Step{{Op: "attribute", Args: Args{Value: "v"}}}}, FieldArgs},
		{"missing value", Definition{Name: "x", Steps: []Step{{Op: "text"}}}, FieldArgs},
		{"missing n", Definition{Name: "x", Steps: []Step{{Op: "position"}}}, FieldArgs},
		{"missing target", Definition{Name: "x", Steps: []Step{{Op: "child"}}}, FieldArgs},
		{"empty target", Definition{Name: "x", Steps: []Step{{Op: "child", Args: Args{Target: &Target{}}}}}, FieldArgs},
		{"number for text", Definition{Name: "x", Steps: []Step{{Op: "text", Args: Args{Value: int64(3)}}}}, FieldType},
		{"bool value", Definition{Name: "x", Steps: []Step{{Op: "text_gt", Args: Args{Value: true}}}}, FieldType},
		{"nested error", Definition{Name: "x", Steps: []Step{{Op: "where_child", Args: Args{Target: &Target{
			Definition: &Definition{Steps: []Step{{Op: "teleport"}}},
		}}}}}, FieldOp},
		{"indexed target", Definition{Name: "x", Steps: []Step{{Op: "child", Args: Args{Target: &Target{
			Definition: &Definition{From: "td", Index: 2},
		}}}}}, FieldIndex},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.def)
			require.Error(t, err)
			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.field, ce.Field)
			assert.False(t, xpath.IsInvalidState(err))
		})
	}
}

func TestEveryOperationCompiles(t *testing.T) {
	for _, name := range Operations() {
		t.Run(name, func(t *testing.T) {
			op := operations[name]
			args := Args{}
			if op.needs&argName != 0 {
				args.Name = "title"
			}
			if op.needs&(argText|argLiteral) != 0 {
				args.Value = "v"
			}
			if op.needs&argTarget != 0 {
				args.Target = &Target{Tag: "span"}
			}
			if op.needs&argN != 0 {
				args.N = IntArg(1)
			}

			c, err := Compile(Definition{Name: name, From: "div", Steps: []Step{{Op: name, Args: args}}})
			require.NoError(t, err)
			assert.NotEmpty(t, c.Expression)
		})
	}
}

func TestHash(t *testing.T) {
	base := Definition{Name: "a", From: "div", Steps: []Step{
		{Op: "attribute", Args: Args{Name: "id", Value: "x"}},
	}}
	renamed := base
	renamed.Name = "b"
	renamed.Description = "same content"

	h1, err := base.Hash()
	require.NoError(t, err)
	h2, err := renamed.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "name and description are not hashed")

	changed := Definition{Name: "a", From: "div", Steps: []Step{
		{Op: "attribute", Args: Args{Name: "id", Value: "y"}},
	}}
	h3, err := changed.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	// axis spellings that mean the same thing hash the same
	long := Definition{Name: "a", From: "div", Axis: "global", Steps: base.Steps}
	h4, err := long.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h4)

	// int and int64 values hash the same
	i := Definition{Name: "n", Steps: []Step{{Op: "text_gt", Args: Args{Value: 3}}}}
	i64 := Definition{Name: "n", Steps: []Step{{Op: "text_gt", Args: Args{Value: int64(3)}}}}
	hi, err := i.Hash()
	require.NoError(t, err)
	hi64, err := i64.Hash()
	require.NoError(t, err)
	assert.Equal(t, hi, hi64)
}

func TestBuilderIsCopy(t *testing.T) {
	c := MustCompile(Definition{Name: "rows", From: "tr"})
	b := c.Builder().WherePosition(1)
	assert.Equal(t, "//tr[position() = 1]", b.Render())
	assert.Equal(t, "//tr", c.Expression)
	assert.Equal(t, "//tr", c.Builder().Render())
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(Definition{})
	})
}

func TestCanonical(t *testing.T) {
	def := Definition{Name: "pdf", From: "a", Steps: []Step{
		{Op: "attribute_ends_with", Args: Args{Name: "href", Value: ".pdf", IgnoreCase: true}},
		{Op: "position", Args: Args{N: IntArg(1)}},
	}}

	got, err := def.Canonical()
	require.NoError(t, err)
	assert.Equal(t,
		`{"axis":"//","from":"a","steps":[{"ignore_case":true,"name":"href","op":"attribute_ends_with","value":".pdf"},{"n":1,"op":"position"}]}`,
		string(got))
}

func TestCompileStrictNestedTarget(t *testing.T) {
	c, err := Compile(Definition{Name: "row", From: "tr", Steps: []Step{
		{Op: "where_child", Args: Args{Target: &Target{Definition: &Definition{
			From:  "td",
			Steps: []Step{{Op: "attribute", Args: Args{Name: "id", Value: "x"}}, {Op: "and"}},
		}}}},
	}})
	require.NoError(t, err)
	assert.False(t, c.Pending())

	_, err = c.Strict()
	assert.True(t, xpath.IsInvalidState(err))
}
