package jsontree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTree_XML(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"leaf types preserved",
			`{"ok": true, "n": 25, "gone": null, "name": "nadia"}`,
			`<root><ok type="boolean">true</ok><n type="number">25</n><gone type="null"/><name type="string">nadia</name></root>`,
		},
		{
			"scientific notation renders canonically",
			`{"n": 1e3}`,
			`<root><n type="number">1000</n></root>`,
		},
		{
			"text is escaped",
			`{"q": "a < b & c"}`,
			`<root><q type="string">a &lt; b &amp; c</q></root>`,
		},
		{
			"collapsed root with list",
			`{"ids": [1, 2]}`,
			`<ids><ids type="number">1</ids><ids type="number">2</ids></ids>`,
		},
		{
			"top level list",
			`[true, "x"]`,
			`<root><root type="boolean">true</root><root type="string">x</root></root>`,
		},
		{
			"empty object",
			`{}`,
			`<root/>`,
		},
		{
			"wrapped scalar",
			`27`,
			`<root><root type="number">27</root></root>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := projectJSON(t, tt.body)
			assert.Equal(t, tt.want, tree.XML())
		})
	}
}
