package store

// namespace is an insertion-ordered key → node map shared by the top level
// and every collection. Callers hold Database.mu.
type namespace struct {
	order []string
	nodes map[string]*Node
}

func newNamespace() *namespace {
	return &namespace{nodes: make(map[string]*Node)}
}

func (ns *namespace) has(key string) bool {
	_, ok := ns.nodes[key]
	return ok
}

func (ns *namespace) get(key string) (*Node, bool) {
	n, ok := ns.nodes[key]
	return n, ok
}

func (ns *namespace) add(n *Node) {
	ns.order = append(ns.order, n.key)
	ns.nodes[n.key] = n
}

func (ns *namespace) remove(key string) (*Node, bool) {
	n, ok := ns.nodes[key]
	if !ok {
		return nil, false
	}
	delete(ns.nodes, key)
	for i, k := range ns.order {
		if k == key {
			ns.order = append(ns.order[:i], ns.order[i+1:]...)
			break
		}
	}

	return n, true
}

// list returns the nodes in insertion order.
func (ns *namespace) list() []*Node {
	out := make([]*Node, 0, len(ns.order))
	for _, k := range ns.order {
		out = append(out, ns.nodes[k])
	}

	return out
}

func (ns *namespace) keys() []string {
	return append([]string(nil), ns.order...)
}

func (ns *namespace) len() int { return len(ns.nodes) }
