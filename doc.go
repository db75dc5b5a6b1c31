// Package pipeline provides the SDK for building, persisting, and executing
// VibeX agent pipelines.
//
// A pipeline is a graph of agent nodes connected by typed data-flow edges.
// The SDK is organized around a few key concepts:
//
//   - Graph: the ordered collection of nodes and edges (package graph)
//   - Sequencer: walks a graph's nodes and invokes work on each (package execute)
//   - Runner: the external collaborator performing the work for a node
//   - Slots: named persistence locations for serialized graphs (package store)
//   - Notifications: fire-and-forget user-facing status messages (package notify)
//   - Templates: YAML documents instantiated into fresh graphs (package template)
//
// # Getting Started
//
// The Workflow type ties the pieces together. Build one with functional
// options, edit its graph, persist it, and run it:
//
//	w, err := pipeline.New(
//	    pipeline.WithStore(store.NewMemoryStore()),
//	    pipeline.WithRunner(myRunner),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	analyst, err := w.AddNode(graph.KindBusinessAnalyst, "Requirements", "Gathers requirements")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dev, _ := w.AddNode(graph.KindDeveloper, "Build", "Implements features")
//	_, _ = w.AddEdge(analyst.ID, dev.ID, "Requirements doc", graph.DataRequirements, "")
//
//	if err := w.Save(ctx, "sprint-12"); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := w.Execute(ctx)
//
// Every rejected operation produces a notification describing the failure in
// plain language, in addition to the returned error.
//
// # Error Handling
//
// Operations return the structured *Error type wrapping package-level
// sentinel errors, so both kind-based and sentinel-based matching work:
//
//	_, err := w.AddNode(graph.KindDeveloper, "", "desc")
//	if errors.Is(err, graph.ErrEmptyLabel) { ... }
package pipeline
