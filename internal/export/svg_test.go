package export

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func orbitHistory(t *testing.T, steps int) *dynamo.History {
	t.Helper()
	h := dynamo.NewHistory([]string{"Sun", "Earth"}, steps, 86400)
	h.Colors["Sun"] = "yellow"
	h.Colors["Earth"] = "blue"
	h.Radii["Sun"] = 696340
	h.Radii["Earth"] = 6371
	for k := 0; k < steps; k++ {
		require.NoError(t, h.Set(k, "Sun", r3.Vec{}, 5772))
		require.NoError(t, h.Set(k, "Earth", r3.Vec{X: float64(k) * 1e6, Y: 1.5e8}, 255))
	}
	return h
}

func TestTrajectoriesSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TrajectoriesSVG(&buf, orbitHistory(t, 10), SVGOptions{Width: 400, Height: 300}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Equal(t, 2, strings.Count(out, "<path"))
	assert.Equal(t, 2, strings.Count(out, "<circle"))
	assert.Contains(t, out, `<title>Earth</title>`)
	assert.Contains(t, out, `width="400" height="300"`)
}

func TestTrajectoriesSVG_EscapesNames(t *testing.T) {
	h := dynamo.NewHistory([]string{"Gamma Cephei A", "<B & C>"}, 2, 86400)
	for k := 0; k < 2; k++ {
		require.NoError(t, h.Set(k, "Gamma Cephei A", r3.Vec{}, 4800))
		require.NoError(t, h.Set(k, "<B & C>", r3.Vec{X: 3e9, Y: float64(k) * 1e7}, 3000))
	}

	var buf bytes.Buffer
	require.NoError(t, TrajectoriesSVG(&buf, h, SVGOptions{Width: 100, Height: 100}))
	out := buf.String()

	assert.Contains(t, out, `id="body0-gamma-cephei-a"`)
	assert.Contains(t, out, `id="body1--b---c-"`)
	assert.Contains(t, out, `<title>&lt;B &amp; C&gt;</title>`)
	assert.NotContains(t, out, "<B & C>")
	assert.NoError(t, xml.Unmarshal(buf.Bytes(), new(struct{})))
}

func TestTrajectoriesSVG_MaxPoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TrajectoriesSVG(&buf, orbitHistory(t, 100), SVGOptions{Width: 200, Height: 200, MaxPoints: 10}))

	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "<path") {
			// One move plus at most MaxPoints line segments.
			assert.LessOrEqual(t, strings.Count(line, " L"), 10)
		}
	}
}

func TestTrajectoriesSVG_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, TrajectoriesSVG(&buf, dynamo.NewHistory([]string{"A"}, 0, 1), SVGOptions{Width: 10, Height: 10}))
	assert.Error(t, TrajectoriesSVG(&buf, orbitHistory(t, 3), SVGOptions{}))

	err := TrajectoriesSVG(&buf, orbitHistory(t, 3), SVGOptions{Width: 10, Height: 10, Center: "Moon"})
	assert.ErrorIs(t, err, dynamo.ErrUnknownBody)
}
