package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psyfit/app"
	"psyfit/internal/testkit"
	"psyfit/ports"
)

func sampleRecord(t *testing.T) *ports.RunRecord {
	t.Helper()
	svc := app.NewBootstrapService(testkit.NewSyntheticEngine(7), nil)
	record, err := svc.Run(context.Background(), testkit.FixtureDataset(), app.Params{Samples: 50})
	require.NoError(t, err)
	return record
}

func TestBuildMarkdownContainsSections(t *testing.T) {
	record := sampleRecord(t)

	md := BuildMarkdown(record)
	assert.Contains(t, md, "# Bootstrap run "+record.ID.String())
	assert.Contains(t, md, "sigmoid `logistic`, core `ab`, 2-AFC")
	assert.Contains(t, md, "## Parameter confidence bounds (95%)")
	assert.Contains(t, md, "## Cut diagnostics")
	assert.Contains(t, md, "## Blocks")
	assert.Contains(t, md, "Median bootstrap deviance")
}

func TestRenderHTMLProducesTables(t *testing.T) {
	record := sampleRecord(t)

	html := string(RenderHTML(BuildMarkdown(record)))
	assert.True(t, strings.Contains(html, "<table>"))
	assert.True(t, strings.Contains(html, "<h1"))
}
