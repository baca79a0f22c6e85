package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/mcncl/jsonlens/internal/jsontext"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/parser"
	"github.com/mcncl/jsonlens/internal/pathaddr"
)

const sampleDoc = `{
	"user_id": 123,
	"username": "johndoe",
	"is_active": true,
	"profile": {
		"full_name": "John Doe",
		"email": "john.doe@example.com",
		"tags": ["admin", "ops", "admin"]
	},
	"logins": [
		{"at": "2024-01-01", "ok": true},
		{"at": "2024-01-02", "ok": false, "reason": null}
	],
	"ratio": 0.75
}`

func TestIntegration_ParseSerializeRoundTrip(t *testing.T) {
	root, err := parser.ParseString(sampleDoc)
	require.NoError(t, err)

	for _, indent := range []int{0, 2, 4} {
		sm := Serialize(root, indent)
		require.True(t, gjson.Valid(sm.Text), "indent %d", indent)

		again, err := parser.ParseString(sm.Text)
		require.NoError(t, err)
		assert.True(t, models.Equal(root, again), "indent %d", indent)
		assert.Equal(t, sm.Text, Serialize(again, indent).Text, "serialization is not stable")
	}
}

func TestIntegration_OutputAgreesWithGJSON(t *testing.T) {
	root, err := parser.ParseString(sampleDoc)
	require.NoError(t, err)
	text := Serialize(root, 2).Text

	assert.Equal(t, int64(123), gjson.Get(text, "user_id").Int())
	assert.Equal(t, "ops", gjson.Get(text, "profile.tags.1").String())
	assert.Equal(t, "2024-01-02", gjson.Get(text, "logins.1.at").String())
	assert.Equal(t, gjson.Null, gjson.Get(text, "logins.1.reason").Type)
	assert.Equal(t, 0.75, gjson.Get(text, "ratio").Float())

	var keys []string
	gjson.Parse(text).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	assert.Equal(t, []string{"user_id", "username", "is_active", "profile", "logins", "ratio"}, keys)
}

func TestIntegration_EverySpanCoversItsNode(t *testing.T) {
	root, err := parser.ParseString(sampleDoc)
	require.NoError(t, err)
	sm := Serialize(root, 2)

	// One entry per node: the root, 6 members, 3 profile members, 3 tags,
	// 2 logins and their 5 members.
	assert.Len(t, sm.Pointers, 20)

	for ptr, span := range sm.Pointers {
		path, err := pathaddr.FromPointer(ptr, root)
		require.NoError(t, err, ptr)
		want, err := pathaddr.Resolve(path, root)
		require.NoError(t, err, ptr)

		got, err := parser.ParseString(sm.Text[span.Start:span.End])
		require.NoError(t, err, ptr)
		assert.True(t, models.Equal(want, got), ptr)

		if span.HasKey {
			_, last, _ := path.Parent()
			assert.Equal(t, jsontext.Quote(last.Key), sm.Text[span.KeyStart:span.KeyEnd], ptr)
		}
	}
}

func TestIntegration_LinePointersResolve(t *testing.T) {
	root, err := parser.ParseString(sampleDoc)
	require.NoError(t, err)
	sm := Serialize(root, 2)

	for line, ptr := range sm.Lines {
		span, ok := sm.Lookup(ptr)
		require.True(t, ok, ptr)
		assert.Equal(t, line, span.Line, ptr)
	}

	ptr, ok := sm.PointerAtLine(7)
	require.True(t, ok)
	assert.Equal(t, "/profile/email", ptr)
}
