// Package template provides loading and parsing of pipeline template YAML
// files and their instantiation into fresh graphs.
//
// A template describes a reusable pipeline shape. Nodes carry a local ref
// key used only to wire edges inside the document; refs are never persisted
// and each instantiation generates fresh node and edge IDs:
//
//	name: sdlc
//	description: Standard delivery pipeline
//	nodes:
//	  - ref: analyst
//	    kind: business-analyst
//	    label: Requirements
//	  - ref: dev
//	    kind: developer
//	    label: Build
//	    instructions: Follow the approved requirements document.
//	edges:
//	  - from: analyst
//	    to: dev
//	    label: Requirements doc
//	    data_kind: requirements
package template
