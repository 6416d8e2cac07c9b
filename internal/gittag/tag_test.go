package gittag

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ pflag.Value = (*Component)(nil)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{in: "1.2.3", want: Tag{1, 2, 3}},
		{in: "0.0.0", want: Tag{0, 0, 0}},
		{in: "1000.1.1", want: Tag{1000, 1, 1}},
		{in: "0.0", wantErr: true},
		{in: "1.2.3.4", wantErr: true},
		{in: "v1.2.3", wantErr: true},
		{in: "1.2.x", wantErr: true},
		{in: "-1.2.3", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "Parse(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "1.20.300", Tag{1, 20, 300}.String())
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(Tag{1, 2, 3}, Tag{1, 2, 3}))
	assert.Equal(t, -1, Compare(Tag{1, 2, 3}, Tag{1, 2, 4}))
	assert.Equal(t, 1, Compare(Tag{2, 0, 0}, Tag{1, 99, 99}))
	assert.True(t, Less(Tag{1, 9, 0}, Tag{1, 10, 0}))
	assert.False(t, Less(Tag{1, 10, 0}, Tag{1, 9, 0}))
}

func TestLargest(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{name: "major", tags: []string{"1000.1.1", "999.1.1", "1.1000.1", "1.1.1000"}, want: "1000.1.1"},
		{name: "minor", tags: []string{"1.1.1", "1.1000.1", "1.999.1", "1.1.1000"}, want: "1.1000.1"},
		{name: "patch", tags: []string{"1.1.1", "1.1000.1", "1.1000.1000"}, want: "1.1000.1000"},
		{name: "skips malformed", tags: []string{"release", "0.0", "1.0.3", "v9.9.9"}, want: "1.0.3"},
		{name: "multi digit ordering", tags: []string{"0.9.0", "0.10.0"}, want: "0.10.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Largest(tt.tags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestLargestNotFound(t *testing.T) {
	for _, tags := range [][]string{nil, {}, {"0.0", "latest", ""}} {
		_, err := Largest(tags)
		assert.ErrorIs(t, err, ErrTagNotFound)
	}
}

func TestValidSortsAscending(t *testing.T) {
	got := Valid([]string{"2.0.0", "bogus", " 1.0.0 ", "1.10.0", "1.2.0"})
	want := []Tag{{1, 0, 0}, {1, 2, 0}, {1, 10, 0}, {2, 0, 0}}
	assert.Equal(t, want, got)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines("  \n"))
	assert.Equal(t, []string{"1.0.0", "1.0.1"}, SplitLines("1.0.0\n1.0.1\n"))
}

func TestIncrement(t *testing.T) {
	base := Tag{1, 0, 3}
	assert.Equal(t, "2.0.0", Increment(base, Major).String())
	assert.Equal(t, "1.1.0", Increment(base, Minor).String())
	assert.Equal(t, "1.0.4", Increment(base, Patch).String())
	assert.Equal(t, "1.3.0", Increment(Tag{1, 2, 9}, Minor).String())
}

func TestParseComponent(t *testing.T) {
	for in, want := range map[string]Component{"major": Major, "minor": Minor, "patch": Patch} {
		got, err := ParseComponent(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, in, got.String())
	}

	_, err := ParseComponent("error")
	assert.Error(t, err)
}

func TestComponentFlagValue(t *testing.T) {
	var c Component
	require.NoError(t, c.Set("minor"))
	assert.Equal(t, Minor, c)
	assert.Error(t, c.Set("build"))
	assert.Equal(t, "component", c.Type())
}
