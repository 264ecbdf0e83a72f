package esregex

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v2"
	"gotest.tools/v3/assert"
)

func TestLiteralCorpus(t *testing.T) {
	type corpusEntry struct {
		Source string
		Kind   string
		Labels []Span
	}

	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	assert.NilError(t, err)
	assert.Assert(t, len(files) > 0)

	for _, file := range files {
		content, err := os.ReadFile(file)
		assert.NilError(t, err)
		var entries []corpusEntry
		assert.NilError(t, yaml.Unmarshal(content, &entries))

		for _, entry := range entries {
			t.Run(filepath.Base(file)+"/"+entry.Source, func(t *testing.T) {
				t.Parallel()
				_, _, err := ParseLiteral(entry.Source, Options{})
				if entry.Kind == "" {
					assert.NilError(t, err)
					return
				}
				d := diagnosticOf(t, err)
				assert.Equal(t, d.Kind.String(), entry.Kind)
				if entry.Labels != nil {
					assert.DeepEqual(t, d.Labels, entry.Labels)
				}
			})
		}
	}
}
