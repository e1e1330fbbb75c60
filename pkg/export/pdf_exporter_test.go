package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	data := Dataset{
		Headers: []string{"subject", "teacher"},
		Rows: []map[string]string{
			{"subject": "Math", "teacher": "Ada"},
		},
	}

	out, err := exporter.Render(data, "weekly schedule")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	exporter := NewPDFExporter()
	_, err := exporter.Render(Dataset{}, "")
	require.Error(t, err)
}
