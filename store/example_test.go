package store_test

import (
	"fmt"

	"github.com/katalvlaran/relgraph/core"
	"github.com/katalvlaran/relgraph/store"
)

// ExampleDatabase_Associations groups cross-collection relations by label.
func ExampleDatabase_Associations() {
	db := store.NewDatabase()
	staff, _ := db.Add("staff")
	teams, _ := db.Add("teams")

	ann, _ := staff.Insert(map[string]any{"name": "Ann"}, "ann")
	bob, _ := staff.Insert(map[string]any{"name": "Bob"}, "bob")
	core1, _ := teams.Insert(map[string]any{"name": "Core"}, "core")

	_ = ann.RelateTo(bob, "MENTORS", false)
	_ = bob.RelateTo(core1, "MEMBER_OF", false)

	assoc, _ := db.Associations()
	for _, label := range []string{"MENTORS", "MEMBER_OF"} {
		for _, a := range assoc[core.Label(label)] {
			fmt.Printf("%s: %s → %s\n", label, a.From, a.To)
		}
	}
	total, _ := db.NumAssociations()
	fmt.Println("nodes:", db.NumNodes(), "associations:", total)

	// Output:
	// MENTORS: staff/ann → staff/bob
	// MEMBER_OF: staff/bob → teams/core
	// nodes: 3 associations: 2
}

// ExampleNode_RelatedDifference counts friends of friends.
func ExampleNode_RelatedDifference() {
	db := store.NewDatabase()
	people, _ := db.Add("people")
	n := make(map[string]*store.Node)
	for _, k := range []string{"me", "amy", "ben", "cat"} {
		n[k], _ = people.Insert(map[string]any{}, k)
	}
	_ = n["me"].RelateTo(n["amy"], "FRIEND", true)
	_ = n["me"].RelateTo(n["ben"], "FRIEND", true)
	_ = n["amy"].RelateTo(n["cat"], "FRIEND", false)
	_ = n["ben"].RelateTo(n["cat"], "FRIEND", false)

	got, _ := n["me"].RelatedDifference("FRIEND", "FRIEND")
	for node, count := range got {
		fmt.Println(node.ID(), count)
	}

	// Output:
	// cat 2
}
