package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangle = `G
a,b,c
(a,b,1)
(b,c,2)
(a,c,5)
`

const chain = `D
a,b,c
(b,c)
(a,b)
`

// execute runs the root command in a scratch directory with a file backend
// under dataDir and returns what it printed.
func execute(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	bfsLimit, dijkstraTo, mstRoot, mstKruskal, mstEdgeList, cliqueSeed = 0, "", "", false, false, ""
	importFormat, configPath, logLevel = "", "", ""

	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestGraphCommands(t *testing.T) {
	net := writeFile(t, "net.txt", triangle)
	deps := writeFile(t, "deps.txt", chain)
	data := t.TempDir()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{"bfs", []string{"graph", "bfs", net, "a"}, "a b c\n"},
		{"path", []string{"graph", "path", net, "a", "c"}, "a -> c\n"},
		{"dijkstra", []string{"graph", "dijkstra", net, "a"}, "a\t0\nb\t1\nc\t3\n"},
		{"dijkstra to", []string{"graph", "dijkstra", net, "a", "--to", "c"}, "a -> b -> c (cost 3)\n"},
		{"prim", []string{"graph", "mst", net, "--root", "a"}, "a -> b\nb -> c\n"},
		{"topo", []string{"graph", "topo", deps}, "a b c\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, data, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestGraphKruskalAndClique(t *testing.T) {
	net := writeFile(t, "net.txt", triangle)
	data := t.TempDir()

	out, err := execute(t, data, "graph", "mst", net, "--kruskal")
	require.NoError(t, err)
	assert.Contains(t, out, "total\t3\n")

	out, err = execute(t, data, "graph", "clique", net, "--seed", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "a")
}

func TestGraphMSTEdgeList(t *testing.T) {
	net := writeFile(t, "net.txt", triangle)
	data := t.TempDir()
	want := "G\na,b,c\n(a,b,1)\n(b,c,2)\n"

	out, err := execute(t, data, "graph", "mst", net, "--root", "a", "--edgelist")
	require.NoError(t, err)
	assert.Equal(t, want, out)

	out, err = execute(t, data, "graph", "mst", net, "--kruskal", "--edgelist")
	require.NoError(t, err)
	assert.Equal(t, want, out)

	// the written tree is itself a valid input
	tree := writeFile(t, "tree.txt", out)
	out, err = execute(t, data, "graph", "dijkstra", tree, "a", "--to", "c")
	require.NoError(t, err)
	assert.Equal(t, "a -> b -> c (cost 3)\n", out)
}

func TestGraphErrors(t *testing.T) {
	net := writeFile(t, "net.txt", triangle)
	data := t.TempDir()

	_, err := execute(t, data, "graph", "topo", net)
	assert.Error(t, err, "undirected input")

	_, err = execute(t, data, "graph", "bfs", filepath.Join(t.TempDir(), "missing.txt"), "a")
	assert.Error(t, err)

	_, err = execute(t, data, "graph", "path", net, "a", "zzz")
	assert.Error(t, err)
}

func TestDataCommands(t *testing.T) {
	data := t.TempDir()
	doc := writeFile(t, "seed.yaml", `
collections: [people]
nodes:
  - {key: ann, belongs_to: people, data: {age: 30}}
  - {key: bob, belongs_to: people, data: {age: 31}}
relations:
  - {from: {key: ann, belongs_to: people}, to: {key: bob, belongs_to: people}, by: FRIEND}
`)

	out, err := execute(t, data, "import", doc)
	require.NoError(t, err)
	assert.Equal(t, "collections created: 1, existed: 0, nodes: 2, relations: 1\n", out)

	out, err = execute(t, data, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "nodes:        2\n")
	assert.Contains(t, out, "associations: 1\n")

	out, err = execute(t, data, "wipe")
	require.NoError(t, err)
	assert.Equal(t, "wiped\n", out)

	out, err = execute(t, data, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "nodes:        0\n")
}

func TestImportErrors(t *testing.T) {
	data := t.TempDir()

	_, err := execute(t, data, "import", writeFile(t, "seed.txt", "{}"))
	assert.Error(t, err, "format cannot be inferred")

	out, err := execute(t, data, "import", writeFile(t, "seed.txt", `{"collections":["people"]}`), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "collections created: 1")

	_, err = execute(t, data, "import", writeFile(t, "bad.json", `{"nodes":[{"key":""}]}`))
	assert.Error(t, err)
}
