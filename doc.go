// Package relgraph is an embedded, in-memory store of labeled nodes and
// relations with graph algorithms on top.
//
// What lives where:
//
//	core/         the arena: vertices with map payloads, directed edges
//	              carrying a label or a cost, under one RWMutex
//	store/        Database, Collection and Node: named namespaces over the
//	              arena, relations, associations, snapshots
//	bfs/ dfs/     traversals with hooks; fewest-hop paths, topological sort
//	dijkstra/     cheapest paths over cost edges
//	prim/         minimum spanning trees (Prim, Kruskal)
//	clique/       approximate clique around a seed vertex
//	converters/   the G/D text edge-list format
//	snapshot/     file, badger, sqlite and memory snapshot backends
//	persisted/    write-through Database over a snapshot backend
//	migrate/      JSON/YAML bulk import
//	config/       viper settings and the zap logger
//	api/          chi HTTP surface with prometheus metrics
//	cmd/relgraph  the CLI
//
// Quick ASCII example:
//
//	people/ann ──FRIEND──▶ people/bob ──FRIEND──▶ people/cat
//
// ann.RelatedDifference("FRIEND", "FRIEND") reports cat once: a friend of a
// friend who is not already a direct friend.
package relgraph
