// Command relgraph serves and maintains a persisted relgraph database, and
// runs the graph algorithms over edge-list files.
//
//	relgraph serve                    start the HTTP API
//	relgraph import FILE              apply a JSON or YAML migration document
//	relgraph stats                    print node, collection and edge counts
//	relgraph wipe                     remove every entry
//	relgraph graph bfs|path|dijkstra|mst|clique|topo FILE ...
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
