package dfs_test

import (
	"fmt"

	"github.com/katalvlaran/relgraph/core"
	"github.com/katalvlaran/relgraph/dfs"
)

// ExampleTopologicalSort orders build steps so every dependency comes first.
func ExampleTopologicalSort() {
	g := core.NewGraph()
	for _, id := range []string{"compile", "fetch", "link", "test"} {
		_ = g.InsertVertex(id, map[string]any{})
	}
	_ = g.AddEdge("fetch", "compile", core.Label("before"))
	_ = g.AddEdge("compile", "link", core.Label("before"))
	_ = g.AddEdge("link", "test", core.Label("before"))

	order, err := dfs.TopologicalSort(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(order)

	// Output:
	// [fetch compile link test]
}
