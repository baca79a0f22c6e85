package duplicates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/parser"
)

func parse(t *testing.T, doc string) models.JSONValue {
	t.Helper()
	root, err := parser.ParseString(doc)
	require.NoError(t, err)
	return root
}

func TestCollect(t *testing.T) {
	root := parse(t, `{
		"name": "John",
		"tags": ["a", "b", "a"],
		"nested": {"name": "John", "n": 3, "ok": true, "nil": null, "empty": [], "none": {}},
		"odd key": "b"
	}`)

	idx := Collect(root)

	assert.Equal(t, []string{"John", "a", "b"}, idx.Values())
	assert.Equal(t, []string{"$.name", "$.nested.name"}, idx.Paths("John"))
	assert.Equal(t, []string{"$.tags[0]", "$.tags[2]"}, idx.Paths("a"))
	assert.Equal(t, []string{"$.tags[1]", `$["odd key"]`}, idx.Paths("b"))
	assert.Nil(t, idx.Paths("missing"))
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 6, idx.Total())
}

func TestCollect_RootString(t *testing.T) {
	idx := Collect("solo")
	assert.Equal(t, []string{"$"}, idx.Paths("solo"))
}

func TestCollect_CountsEveryStringLeaf(t *testing.T) {
	root := parse(t, `[["x", ["x", "y"]], {"a": "x", "b": {"c": ["y", 1, "z"]}}, "x"]`)

	idx := Collect(root)
	sum := 0
	for _, v := range idx.Values() {
		sum += len(idx.Paths(v))
	}
	assert.Equal(t, 7, sum)
	assert.Equal(t, idx.Total(), sum)
}

func TestFindDuplicates_SimpleObject(t *testing.T) {
	root := parse(t, `{"name": "John", "title": "Developer", "role": "Developer"}`)

	dups := FindDuplicates(root)

	require.Len(t, dups, 1)
	assert.Equal(t, models.DuplicateRecord{
		Value: "Developer",
		Count: 2,
		Paths: []string{"$.title", "$.role"},
	}, dups[0])
}

func TestFindDuplicates_Array(t *testing.T) {
	root := parse(t, `{"tags": ["frontend", "backend", "frontend"]}`)

	dups := FindDuplicates(root)

	assert.Equal(t, []models.DuplicateRecord{
		{Value: "frontend", Count: 2, Paths: []string{"$.tags[0]", "$.tags[2]"}},
	}, dups)
}

func TestFindDuplicates_Nested(t *testing.T) {
	root := parse(t, `{"user": {"name": "test", "profile": {"nickname": "test"}}}`)

	dups := FindDuplicates(root)

	require.Len(t, dups, 1)
	assert.Equal(t, []string{"$.user.name", "$.user.profile.nickname"}, dups[0].Paths)
}

func TestFindDuplicates_NoDuplicates(t *testing.T) {
	root := parse(t, `{"name": "John", "title": "Developer", "role": "Engineer"}`)

	dups := FindDuplicates(root)

	assert.NotNil(t, dups)
	assert.Empty(t, dups)
}

func TestFindDuplicates_SortedByCountThenDiscovery(t *testing.T) {
	root := parse(t, `{
		"a": "rare", "b": "common", "c": "rare", "d": "common", "e": "common",
		"f": "tie1", "g": "tie2", "h": "tie2", "i": "tie1"
	}`)

	dups := FindDuplicates(root)

	values := make([]string, len(dups))
	for i, d := range dups {
		values[i] = d.Value
	}
	assert.Equal(t, []string{"common", "rare", "tie1", "tie2"}, values)
	assert.Equal(t, 3, dups[0].Count)
}

func TestFindDuplicates_IgnoresNonStrings(t *testing.T) {
	root := parse(t, `{"name": "John", "age": 30, "active": true, "score": null, "another_name": "John", "n2": 30}`)

	dups := FindDuplicates(root)

	require.Len(t, dups, 1)
	assert.Equal(t, "John", dups[0].Value)
}

func TestFindDuplicates_CountMatchesPaths(t *testing.T) {
	root := parse(t, `{"xs": ["q", "q", "q", "r", "r", "s"], "deep": [{"v": "q"}, {"v": "s"}]}`)

	for _, r := range FindDuplicates(root) {
		assert.Equal(t, r.Count, len(r.Paths), r.Value)
		assert.GreaterOrEqual(t, r.Count, 2, r.Value)
	}
}

func TestFilter(t *testing.T) {
	records := []models.DuplicateRecord{
		{Value: "Frontend", Count: 3},
		{Value: "backend", Count: 2},
		{Value: "FRONT door", Count: 2},
	}

	tests := []struct {
		query    string
		expected []string
	}{
		{"", []string{"Frontend", "backend", "FRONT door"}},
		{"front", []string{"Frontend", "FRONT door"}},
		{"END", []string{"Frontend", "backend"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(records, tt.query)
			values := make([]string, 0, len(got))
			for _, r := range got {
				values = append(values, r.Value)
			}
			assert.Equal(t, tt.expected, values)
		})
	}
}
