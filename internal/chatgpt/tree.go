package chatgpt

// MainBranch orders nodes for transcript reconstruction. Starting from each
// root (a node no other node lists as a child), in source order, it follows
// the first child until a leaf. Nodes reached by no such walk (alternate
// branches, orphans) follow in source order.
func MainBranch(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}

	byID := indexByID(nodes)
	referenced := referencedIDs(nodes)

	ordered := make([]Node, 0, len(nodes))
	visited := make([]bool, len(nodes))
	for i, n := range nodes {
		if referenced[n.ID] || visited[i] {
			continue
		}
		for cur, ok := i, true; ok && !visited[cur]; {
			visited[cur] = true
			ordered = append(ordered, nodes[cur])
			cur, ok = byID[nodes[cur].FirstChild()]
		}
	}

	for i, n := range nodes {
		if !visited[i] {
			ordered = append(ordered, n)
		}
	}
	return ordered
}

// RootCandidates returns the nodes that no other node in the slice lists as
// a child, in slice order. Run over retained nodes, the ones with role user
// are the anchors of an opening exchange.
func RootCandidates(nodes []Node) []Node {
	referenced := referencedIDs(nodes)

	var roots []Node
	for _, n := range nodes {
		if !referenced[n.ID] {
			roots = append(roots, n)
		}
	}
	return roots
}

// anchorsOpening reports whether n is a user-role root candidate of nodes.
func anchorsOpening(n Node, nodes []Node) bool {
	if n.Role != RoleUser {
		return false
	}
	for _, r := range RootCandidates(nodes) {
		if r.ID == n.ID {
			return true
		}
	}
	return false
}

// answeredBy reports whether a is the first retained node below q on the
// main branch of nodes. Filtered nodes in between are skipped.
func answeredBy(q, a Node, nodes []Node) bool {
	if a.Role != RoleAssistant {
		return false
	}
	byID := indexByID(nodes)
	seen := map[string]bool{q.ID: true}
	for id := q.FirstChild(); id != "" && !seen[id]; {
		seen[id] = true
		i, ok := byID[id]
		if !ok {
			return false
		}
		if nodes[i].Retained() {
			return nodes[i].ID == a.ID
		}
		id = nodes[i].FirstChild()
	}
	return false
}

// indexByID maps each id to its first position in nodes.
func indexByID(nodes []Node) map[string]int {
	byID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := byID[n.ID]; !ok {
			byID[n.ID] = i
		}
	}
	return byID
}

// referencedIDs collects the ids listed as a child by some other node. A node
// listing itself does not count, so it stays a root.
func referencedIDs(nodes []Node) map[string]bool {
	referenced := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		for _, c := range n.ChildIDs {
			if c != n.ID {
				referenced[c] = true
			}
		}
	}
	return referenced
}
