package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// RunWithGolden replays a scenario and compares its rendered result
// against testdata/golden/{name}.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, sc Scenario) {
	t.Helper()

	res, err := Run(sc)
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, res.Name, res.Render())
}
