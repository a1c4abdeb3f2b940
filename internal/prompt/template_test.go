package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllTemplates(t *testing.T) {
	for _, tmpl := range []*Template{Itinerary, Mapping, Center} {
		t.Run(tmpl.Name, func(t *testing.T) {
			value := `{"odd": "value with {{braces}} and ####"}` + "\nsecond line"
			msgs, err := tmpl.Render(map[string]string{tmpl.InputField: value})
			require.NoError(t, err)
			require.Len(t, msgs, 2)

			assert.Equal(t, RoleSystem, msgs[0].Role)
			assert.Equal(t, tmpl.System.Text, msgs[0].Content)
			assert.Equal(t, RoleHuman, msgs[1].Role)
			assert.Equal(t, Delimiter+value+Delimiter, msgs[1].Content)
		})
	}
}

func TestRender_MissingField(t *testing.T) {
	for _, tmpl := range []*Template{Itinerary, Mapping, Center} {
		t.Run(tmpl.Name, func(t *testing.T) {
			msgs, err := tmpl.Render(map[string]string{"unrelated": "x"})
			require.Error(t, err)
			assert.Nil(t, msgs)

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tmpl.InputField, missing.Field)
			assert.Equal(t, tmpl.Name, missing.Template)
		})
	}
}

func TestRender_EmptyValueIsPresent(t *testing.T) {
	msgs, err := Itinerary.Render(map[string]string{"request": ""})
	require.NoError(t, err)
	assert.Equal(t, Delimiter+Delimiter, msgs[1].Content)
}

func TestRender_SystemPlaceholderMissing(t *testing.T) {
	tmpl, err := New("custom", "request", "Answer in {{.language}}.")
	require.NoError(t, err)

	_, err = tmpl.Render(map[string]string{"request": "hi"})
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "language", missing.Field)
	assert.Equal(t, "custom", missing.Template)

	msgs, err := tmpl.Render(map[string]string{"request": "hi", "language": "Portuguese"})
	require.NoError(t, err)
	assert.Equal(t, "Answer in Portuguese.", msgs[0].Content)
}

func TestNew_InvalidTemplate(t *testing.T) {
	_, err := New("broken", "request", "{{.unterminated")
	require.Error(t, err)
}

func TestTemplates_InputFields(t *testing.T) {
	assert.Equal(t, "request", Itinerary.InputField)
	assert.Equal(t, "agent_suggestion", Mapping.InputField)
	assert.Equal(t, "coordinates", Center.InputField)

	// Each instruction text carries its worked example or format rules.
	assert.Contains(t, Itinerary.System.Text, "bulleted list")
	assert.True(t, strings.Contains(Mapping.System.Text, `"days"`))
	assert.True(t, strings.Contains(Center.System.Text, `"zoom"`))
}

func TestTemplate_Fields(t *testing.T) {
	tmpl, err := New("custom", "request", "Answer in {{.language}}{{if .tone}} with a {{.tone}} tone{{end}}.")
	require.NoError(t, err)

	assert.Equal(t, []string{"language", "tone", "request"}, tmpl.Fields())
	assert.Equal(t, []string{"request"}, Itinerary.Fields())
	assert.Equal(t, []string{"agent_suggestion"}, Mapping.Fields())
	assert.Equal(t, []string{"coordinates"}, Center.Fields())
}
