package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/relgraph/bfs"
	"github.com/katalvlaran/relgraph/core"
)

// ExampleFindShortestPath finds the fewest-hop route through a small network.
// Two routes lead from "A" to "E": A→B→C→E and the shorter A→D→E.
func ExampleFindShortestPath() {
	g := core.NewGraph()
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		_ = g.InsertVertex(id, map[string]any{})
	}
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "E"}, {"A", "D"}, {"D", "E"}} {
		_ = g.AddRelation(e[0], e[1], core.Label("road"), true)
	}

	path, err := bfs.FindShortestPath(g, "A", "E")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(path)

	order, _ := bfs.BreadthFirstSearch(g, "A", 0)
	fmt.Println(order)

	// Output:
	// [A D E]
	// [A B D C E]
}
