package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobasis/reference"
)

func TestParsePoints(t *testing.T) {
	pts, err := parsePoints("0,0; -0.5 ,-0.25;")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {-0.5, -0.25}}, pts)
	_, err = parsePoints("0,x")
	assert.Error(t, err)

	e, err := parseEntity("1,2")
	require.NoError(t, err)
	assert.Equal(t, &reference.Entity{Dim: 1, ID: 2}, e)
	e, err = parseEntity("")
	require.NoError(t, err)
	assert.Nil(t, e)
	_, err = parseEntity("1")
	assert.Error(t, err)
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestDofsCommand(t *testing.T) {
	out := run(t, "dofs", "-f", "BDM", "-c", "tri", "-n", "1", "--variant", "point", "-I", "")
	assert.Contains(t, out, "BDM1 on Triangle")
	assert.Contains(t, out, "{0:{0:[],1:[],2:[]},1:{0:[0,1],1:[2,3],2:[4,5]},2:{0:[]}}")
	assert.Equal(t, 6, strings.Count(out, "PointScaledNormalEval"))
	assert.Contains(t, out, "[contravariant piola contravariant piola]\t= Mapping")
	assert.Contains(t, out, "6\t\t\t= Incidence Nonzeros")
	// Vertices carry no BDM dofs, so a facet closure is the facet's own dofs
	assert.Contains(t, out, "Facet[1] closure dofs = [2 3]")

	out = run(t, "dofs", "-f", "serendipity", "-c", "quad", "-n", "2", "--variant", "")
	assert.Contains(t, out, "closed form basis")
}

func TestTabulateCommand(t *testing.T) {
	out := run(t, "tabulate", "-f", "Lagrange", "-c", "interval", "-n", "1", "--order", "1",
		"--points", "-1;1", "--entity", "")
	assert.Contains(t, out, "Lagrange1 on Interval, 2 basis functions")
	assert.Contains(t, out, "D(0)")
	assert.Contains(t, out, "D(1)")

	yamlFile := filepath.Join(t.TempDir(), "mixed.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(exampleFile), 0o644))
	out = run(t, "tabulate", "-I", yamlFile, "--order", "0", "--points", "", "--entity", "1,0",
		"--parallel", "2")
	assert.Contains(t, out, "Mixed(RT2,Lagrange1) on Triangle, 11 basis functions")
	assert.Contains(t, out, "D(0,0)[2]")

	rootCmd.SetArgs([]string{"tabulate", "-I", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, rootCmd.Execute())
}
