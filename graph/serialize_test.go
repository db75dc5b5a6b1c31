package graph

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSerialize_RoundTrip(t *testing.T) {
	g := New()
	reqs, err := g.AddNode(KindBusinessAnalyst, "Reqs", "Gathers requirements")
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if _, err := g.UpdateNode(reqs.ID, NodePatch{
		Instructions: ptr("Interview stakeholders"),
		Position:     &Position{X: 40, Y: 60},
	}); err != nil {
		t.Fatalf("UpdateNode() error = %v", err)
	}
	build, err := g.AddNode(KindDeveloper, "Build", "Implements features")
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if _, err := g.AddEdge(reqs.ID, build.ID, "Requirements doc", DataRequirements, "Approved requirements"); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if _, err := g.AddEdge(build.ID, build.ID, "self", DataCustom, ""); err != nil {
		t.Fatalf("AddEdge(self-loop) error = %v", err)
	}

	blob, err := g.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	restored, err := Deserialize(blob)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}

	if !Equal(g, restored) {
		t.Errorf("Deserialize(Serialize(g)) not structurally equal to g")
	}
}

func TestSerialize_WireShape(t *testing.T) {
	g := New()
	n, err := g.AddNode(KindQAEngineer, "Verify", "Runs tests")
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	if _, err := g.AddEdge(n.ID, n.ID, "retest", DataTestCases, "loop"); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	blob, err := g.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var raw struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
	}
	if err := json.Unmarshal(blob, &raw); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(raw.Nodes) != 1 || len(raw.Edges) != 1 {
		t.Fatalf("snapshot = %d nodes %d edges, want 1 and 1", len(raw.Nodes), len(raw.Edges))
	}

	node := raw.Nodes[0]
	for _, field := range []string{"id", "kind", "label", "description", "position"} {
		if _, ok := node[field]; !ok {
			t.Errorf("node snapshot missing field %q", field)
		}
	}
	edge := raw.Edges[0]
	for _, field := range []string{"id", "sourceId", "targetId", "label", "dataKind", "description"} {
		if _, ok := edge[field]; !ok {
			t.Errorf("edge snapshot missing field %q", field)
		}
	}
	if edge["dataKind"] != "test-cases" {
		t.Errorf("edge dataKind = %v, want test-cases", edge["dataKind"])
	}
}

func TestDeserialize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "not json at all"},
		{"null", "null"},
		{"wrong shape", `{"nodes": "nope"}`},
		{"trailing garbage", `{"nodes":[],"edges":[]}GARBAGE`},
		{"second value", `{"nodes":[],"edges":[]}{"nodes":[],"edges":[]}`},
		{"node without id", `{"nodes":[{"kind":"developer","label":"x","description":"","position":{"x":0,"y":0}}],"edges":[]}`},
		{"node with empty label", `{"nodes":[{"id":"1","kind":"developer","label":"","description":"","position":{"x":0,"y":0}}],"edges":[]}`},
		{"node with unknown kind", `{"nodes":[{"id":"1","kind":"wizard","label":"x","description":"","position":{"x":0,"y":0}}],"edges":[]}`},
		{"duplicate node ids", `{"nodes":[{"id":"1","kind":"developer","label":"a","description":"","position":{"x":0,"y":0}},{"id":"1","kind":"devops","label":"b","description":"","position":{"x":0,"y":0}}],"edges":[]}`},
		{"dangling edge target", `{"nodes":[{"id":"1","kind":"developer","label":"a","description":"","position":{"x":0,"y":0}}],"edges":[{"id":"e1","sourceId":"1","targetId":"2","label":"","dataKind":"code","description":""}]}`},
		{"unknown data kind", `{"nodes":[{"id":"1","kind":"developer","label":"a","description":"","position":{"x":0,"y":0}}],"edges":[{"id":"e1","sourceId":"1","targetId":"1","label":"","dataKind":"gossip","description":""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize([]byte(tt.blob))
			if !errors.Is(err, ErrBadSnapshot) {
				t.Errorf("Deserialize() error = %v, want ErrBadSnapshot", err)
			}
		})
	}
}

func TestDeserialize_DetachedFromInput(t *testing.T) {
	g := New()
	n, err := g.AddNode(KindDevOps, "Deploy", "")
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}

	blob, err := g.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	restored, err := Deserialize(blob)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}

	// Mutating the original must not affect the restored graph.
	if _, err := g.UpdateNode(n.ID, NodePatch{Label: ptr("Changed")}); err != nil {
		t.Fatalf("UpdateNode() error = %v", err)
	}
	rn, err := restored.Node(n.ID)
	if err != nil {
		t.Fatalf("restored.Node() error = %v", err)
	}
	if rn.Label != "Deploy" {
		t.Errorf("restored label = %v, want Deploy", rn.Label)
	}
}

func ptr(s string) *string {
	return &s
}
