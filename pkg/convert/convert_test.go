package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToStringMap(t *testing.T) {
	m, err := ToStringMap(map[string]any{"Environment": "prod"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Environment": "prod"}, m)

	m, err = ToStringMap(nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	_, err = ToStringMap(map[string]any{"Count": 3})
	assert.ErrorIs(t, err, errNotStringValue)

	_, err = ToStringMap("tags")
	assert.ErrorIs(t, err, errNotMap)
}

func TestStringEntries(t *testing.T) {
	got := StringEntries(map[string]any{"Environment": "dev", "Count": 3, "Nil": nil})
	assert.Equal(t, map[string]string{"Environment": "dev", "Count": "3"}, got)

	src := map[string]string{"a": "b"}
	got = StringEntries(src)
	got["a"] = "changed"
	assert.Equal(t, "b", src["a"])

	assert.Nil(t, StringEntries([]string{"x"}))
}

func TestToSliceOfString(t *testing.T) {
	got, err := ToSliceOfString([]any{"0.0.0.0/0", 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"0.0.0.0/0", "10"}, got)

	got, err = ToSliceOfString(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ToSliceOfString("0.0.0.0/0")
	assert.ErrorIs(t, err, errNotSlice)
}

func TestToSliceOfMap(t *testing.T) {
	got, err := ToSliceOfMap([]any{map[string]any{"from_port": 22}})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = ToSliceOfMap([]any{"x"})
	assert.ErrorIs(t, err, errNotMapElement)
}

func TestToBlock(t *testing.T) {
	block, ok := ToBlock([]any{map[string]any{"subnet_ids": []any{"a"}}})
	require.True(t, ok)
	assert.Contains(t, block, "subnet_ids")

	_, ok = ToBlock(map[string]any{})
	assert.True(t, ok)

	_, ok = ToBlock([]any{})
	assert.False(t, ok)

	_, ok = ToBlock("vpc")
	assert.False(t, ok)
}

func TestToInt(t *testing.T) {
	for _, in := range []any{22, int64(22), float64(22), "22"} {
		n, ok := ToInt(in)
		assert.True(t, ok, "%T", in)
		assert.Equal(t, 22, n)
	}
	_, ok := ToInt(22.5)
	assert.False(t, ok)
	_, ok = ToInt(nil)
	assert.False(t, ok)
}

func TestToInt_Rejects(t *testing.T) {
	for _, in := range []any{nil, 22.5, "ssh", []int{22}} {
		_, ok := ToInt(in)
		assert.False(t, ok, "%v", in)
	}
	port := 3389
	n, ok := ToInt(&port)
	assert.True(t, ok)
	assert.Equal(t, 3389, n)
}

func TestIsEmpty(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *int
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(nilMap))
	assert.True(t, IsEmpty([]string{}))
	assert.True(t, IsEmpty(nilPtr))
	assert.True(t, IsEmpty(0))
	assert.True(t, IsEmpty(false))

	assert.False(t, IsEmpty("subnet-1"))
	assert.False(t, IsEmpty([]any{"a"}))
	assert.False(t, IsEmpty(map[string]any{"k": 1}))
	assert.False(t, IsEmpty(22))
}

func TestToFloat64(t *testing.T) {
	for _, in := range []any{2.5, float32(2.5), "2.5"} {
		f, ok := ToFloat64(in)
		assert.True(t, ok, "%T", in)
		assert.InDelta(t, 2.5, f, 1e-9)
	}
	f, ok := ToFloat64(int64(20))
	assert.True(t, ok)
	assert.Equal(t, 20.0, f)

	for _, in := range []any{nil, "${var.size}", true, []any{1}} {
		_, ok := ToFloat64(in)
		assert.False(t, ok, "%v", in)
	}
}

func TestToBool(t *testing.T) {
	b, ok := ToBool(true)
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = ToBool("false")
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = ToBool("${var.multi_az}")
	assert.False(t, ok)
	_, ok = ToBool(1)
	assert.False(t, ok)
}
