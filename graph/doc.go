// Package graph provides the pipeline graph model: agent nodes, typed data
// connections between them, and a mutation API that maintains the graph's
// referential invariants.
//
// A Graph is an ordered collection of Nodes plus a collection of Edges.
// Nodes represent agents in the pipeline and carry a role kind, display
// label, description, optional runner instructions, and a layout position.
// Edges describe directed data flow between two nodes and carry a data kind
// classifying the payload.
//
// # Building a Graph
//
// Graphs are built through the mutation API, which generates unique IDs and
// enforces field and referential constraints:
//
//	g := graph.New()
//
//	analyst, err := g.AddNode(graph.KindBusinessAnalyst, "Requirements", "Gathers requirements")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dev, err := g.AddNode(graph.KindDeveloper, "Build", "Implements features")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_, err = g.AddEdge(analyst.ID, dev.ID, "Requirements doc", graph.DataRequirements, "Approved requirements")
//
// Removing a node cascades: every edge referencing the node is removed with
// it. Self-loops and duplicate edges between the same pair of nodes are
// permitted.
//
// # Serialization
//
// Serialize produces a JSON snapshot sufficient for exact round-trip
// reconstruction via Deserialize. Malformed snapshots are rejected with
// ErrBadSnapshot rather than producing a partial graph.
package graph
