package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/relgraph/bfs"
	"github.com/katalvlaran/relgraph/clique"
	"github.com/katalvlaran/relgraph/converters"
	"github.com/katalvlaran/relgraph/core"
	"github.com/katalvlaran/relgraph/dfs"
	"github.com/katalvlaran/relgraph/dijkstra"
	"github.com/katalvlaran/relgraph/prim"
)

var (
	bfsLimit    int
	dijkstraTo  string
	mstRoot     string
	mstKruskal  bool
	mstEdgeList bool
	cliqueSeed  string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Run graph algorithms over an edge-list file",
	Long: `Load an edge-list file and run one algorithm on it.

File format:
  G or D          undirected or directed
  a,b,c           vertex IDs
  (a,b)           one edge per line, cost defaults to 1
  (b,c,2.5)

Examples:
  relgraph graph bfs net.txt a --limit 10
  relgraph graph path net.txt a c
  relgraph graph dijkstra net.txt a --to c
  relgraph graph mst net.txt --kruskal
  relgraph graph mst net.txt --edgelist > tree.txt
  relgraph graph clique net.txt --seed a
  relgraph graph topo deps.txt`,
}

var graphBFSCmd = &cobra.Command{
	Use:   "bfs FILE START",
	Short: "Breadth-first visit order from START",
	Args:  cobra.ExactArgs(2),
	RunE:  runGraphBFS,
}

var graphPathCmd = &cobra.Command{
	Use:   "path FILE FROM TO",
	Short: "Fewest-hop path between two vertices",
	Args:  cobra.ExactArgs(3),
	RunE:  runGraphPath,
}

var graphDijkstraCmd = &cobra.Command{
	Use:   "dijkstra FILE START",
	Short: "Cheapest distances from START",
	Args:  cobra.ExactArgs(2),
	RunE:  runGraphDijkstra,
}

var graphMSTCmd = &cobra.Command{
	Use:   "mst FILE",
	Short: "Minimum spanning tree (Prim, or Kruskal with --kruskal)",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphMST,
}

var graphCliqueCmd = &cobra.Command{
	Use:   "clique FILE",
	Short: "Clique heuristic around a seed vertex",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphClique,
}

var graphTopoCmd = &cobra.Command{
	Use:   "topo FILE",
	Short: "Topological order of a directed acyclic graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphTopo,
}

func init() {
	graphBFSCmd.Flags().IntVar(&bfsLimit, "limit", 0, "stop once at least this many vertices are visited (0 = all)")
	graphDijkstraCmd.Flags().StringVar(&dijkstraTo, "to", "", "print the cheapest path to this vertex instead of all distances")
	graphMSTCmd.Flags().StringVar(&mstRoot, "root", "", "Prim start vertex (default: random)")
	graphMSTCmd.Flags().BoolVar(&mstKruskal, "kruskal", false, "use Kruskal's algorithm over every component")
	graphMSTCmd.Flags().BoolVar(&mstEdgeList, "edgelist", false, "print the tree as an undirected edge-list file")
	graphCliqueCmd.Flags().StringVar(&cliqueSeed, "seed", "", "seed vertex (default: random)")

	graphCmd.AddCommand(graphBFSCmd, graphPathCmd, graphDijkstraCmd, graphMSTCmd, graphCliqueCmd, graphTopoCmd)
}

func loadEdgeList(path string) (*converters.EdgeList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return converters.ReadEdgeList(f)
}

func runGraphBFS(cmd *cobra.Command, args []string) error {
	el, err := loadEdgeList(args[0])
	if err != nil {
		return err
	}
	order, err := bfs.BreadthFirstSearch(el.Graph, args[1], bfsLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(order, " "))

	return nil
}

func runGraphPath(cmd *cobra.Command, args []string) error {
	el, err := loadEdgeList(args[0])
	if err != nil {
		return err
	}
	path, err := bfs.FindShortestPath(el.Graph, args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(path, " -> "))

	return nil
}

func runGraphDijkstra(cmd *cobra.Command, args []string) error {
	el, err := loadEdgeList(args[0])
	if err != nil {
		return err
	}
	start := args[1]
	dist, prev, err := dijkstra.Dijkstra(el.Graph, start, dijkstra.WithReturnPath())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dijkstraTo != "" {
		path, err := dijkstra.PathTo(prev, start, dijkstraTo)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (cost %g)\n", strings.Join(path, " -> "), dist[dijkstraTo])
		return nil
	}
	for _, id := range el.Graph.Vertices() {
		d := dist[id]
		if math.IsInf(d, 1) {
			fmt.Fprintf(out, "%s\tunreachable\n", id)
			continue
		}
		fmt.Fprintf(out, "%s\t%g\n", id, d)
	}

	return nil
}

func runGraphMST(cmd *cobra.Command, args []string) error {
	el, err := loadEdgeList(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if mstKruskal {
		edges, total, err := prim.Kruskal(el.Graph)
		if err != nil {
			return err
		}
		if mstEdgeList {
			return writeForest(out, el.Graph, edges)
		}
		for _, e := range edges {
			cost, _ := e.Value.AsCost()
			fmt.Fprintf(out, "%s - %s\t%g\n", e.From, e.To, cost)
		}
		fmt.Fprintf(out, "total\t%g\n", total)
		return nil
	}

	var opts []prim.Option
	if mstRoot != "" {
		opts = append(opts, prim.WithRoot(mstRoot))
	}
	tree, err := prim.Prim(el.Graph, opts...)
	if err != nil {
		return err
	}
	pairs := treePairs(tree)
	if mstEdgeList {
		edges := make([]core.Edge, 0, len(pairs))
		for _, p := range pairs {
			v, _ := el.Graph.EdgeValue(p[0], p[1])
			edges = append(edges, core.Edge{From: p[0], To: p[1], Value: v})
		}
		return writeForest(out, el.Graph, edges)
	}
	for _, p := range pairs {
		fmt.Fprintf(out, "%s -> %s\n", p[0], p[1])
	}

	return nil
}

// treePairs lists parent→child pairs sorted by parent, then child.
func treePairs(tree prim.Tree) [][2]string {
	parents := make([]string, 0, len(tree))
	for p := range tree {
		parents = append(parents, p)
	}
	slices.Sort(parents)

	var out [][2]string
	for _, p := range parents {
		kids := make([]string, 0, len(tree[p]))
		for k := range tree[p] {
			kids = append(kids, k)
		}
		slices.Sort(kids)
		for _, k := range kids {
			out = append(out, [2]string{p, k})
		}
	}

	return out
}

// writeForest writes edges over every vertex of src as an undirected
// edge-list document that ReadEdgeList accepts back.
func writeForest(w io.Writer, src *core.Graph, edges []core.Edge) error {
	g := core.NewGraph()
	for _, id := range src.Vertices() {
		if err := g.InsertVertex(id, map[string]any{}); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if err := g.AddRelation(e.From, e.To, e.Value, true); err != nil {
			return err
		}
	}

	return converters.WriteEdgeList(w, g, false)
}

func runGraphClique(cmd *cobra.Command, args []string) error {
	el, err := loadEdgeList(args[0])
	if err != nil {
		return err
	}
	var opts []clique.Option
	if cliqueSeed != "" {
		opts = append(opts, clique.WithSeed(cliqueSeed))
	}
	set, err := clique.Clique(el.Graph, opts...)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(ids, " "))

	return nil
}

func runGraphTopo(cmd *cobra.Command, args []string) error {
	el, err := loadEdgeList(args[0])
	if err != nil {
		return err
	}
	if !el.Directed {
		return fmt.Errorf("topo: %s is undirected", args[0])
	}
	order, err := dfs.TopologicalSort(el.Graph, dfs.WithCancelContext(cmd.Context()))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(order, " "))

	return nil
}
