package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostDocListsEveryFormField(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]struct {
			Parameters []struct {
				Name string `json:"name"`
				In   string `json:"in"`
			} `json:"parameters"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	var names []string
	for _, p := range doc.Paths["/api/v1/posts"]["post"].Parameters {
		assert.Equal(t, "formData", p.In)
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{
		"title", "content", "type", "location", "venue", "zone", "seat",
		"color", "mood", "eventDate", "image",
	}, names)
}
