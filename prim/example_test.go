package prim_test

import (
	"fmt"

	"github.com/katalvlaran/relgraph/core"
	"github.com/katalvlaran/relgraph/prim"
)

// ExamplePrim grows an MST from "A" over a square with one expensive side.
//
//	A —1— B
//	|     |
//	4     2
//	|     |
//	D —3— C
func ExamplePrim() {
	g := core.NewGraph()
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = g.InsertVertex(id, map[string]any{})
	}
	_ = g.AddRelation("A", "B", core.Cost(1), true)
	_ = g.AddRelation("B", "C", core.Cost(2), true)
	_ = g.AddRelation("C", "D", core.Cost(3), true)
	_ = g.AddRelation("D", "A", core.Cost(4), true)

	tree, err := prim.Prim(g, prim.WithRoot("A"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range []string{"A", "B", "C"} {
		fmt.Println(p, "→", tree.Children(p))
	}

	// Output:
	// A → [B]
	// B → [C]
	// C → [D]
}

// ExampleKruskal shows the same square through Kruskal.
func ExampleKruskal() {
	g := core.NewGraph()
	for _, id := range []string{"A", "B", "C", "D"} {
		_ = g.InsertVertex(id, map[string]any{})
	}
	_ = g.AddRelation("A", "B", core.Cost(1), true)
	_ = g.AddRelation("B", "C", core.Cost(2), true)
	_ = g.AddRelation("C", "D", core.Cost(3), true)
	_ = g.AddRelation("D", "A", core.Cost(4), true)

	_, total, _ := prim.Kruskal(g)
	fmt.Println("total:", total)

	// Output:
	// total: 6
}
