package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type staticProvider struct {
	inContext bool
	tags      map[string]string
}

func (p staticProvider) InContext() bool {
	return p.inContext
}

func (p staticProvider) Tags(context.Context) map[string]string {
	return p.tags
}

func TestWriteRunContext(t *testing.T) {
	scenarios := []struct {
		name     string
		provider staticProvider
		expected runContext
	}{
		{
			name: "inside Faculty",
			provider: staticProvider{
				inContext: true,
				tags: map[string]string{
					"mlflow.faculty.project.projectId": "6f8a2b52-4d0f-4c3a-9b6e-2f6d3e9c1a7b",
					"mlflow.faculty.server.name":       "notebook",
				},
			},
			expected: runContext{
				InContext: true,
				Tags: map[string]string{
					"mlflow.faculty.project.projectId": "6f8a2b52-4d0f-4c3a-9b6e-2f6d3e9c1a7b",
					"mlflow.faculty.server.name":       "notebook",
				},
			},
		},
		{
			name:     "outside Faculty",
			provider: staticProvider{tags: map[string]string{"ignored": "tag"}},
			expected: runContext{InContext: false},
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			var buffer bytes.Buffer
			require.NoError(t, writeRunContext(context.Background(), &buffer, scenario.provider))

			var decoded runContext
			require.NoError(t, yaml.Unmarshal(buffer.Bytes(), &decoded))
			assert.Equal(t, scenario.expected, decoded)
		})
	}
}

func TestWriteRunContextOmitsTagsOutsideFaculty(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, writeRunContext(context.Background(), &buffer, staticProvider{}))

	assert.Equal(t, "in_context: false\n", buffer.String())
}
