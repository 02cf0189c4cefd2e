// Package pkg provides the libraries behind umlgraph, a layout engine for
// Mermaid-style class diagrams.
//
// # Overview
//
// umlgraph reads class diagram text, turns it into a graph of classes and
// relationships, and assigns every class a position in a layered drawing.
// The pkg directory is organized into three areas:
//
//  1. Core - parsing and layout, pure functions without I/O
//  2. Output - serialization and drawing of laid out graphs
//  3. Infrastructure - caching, configuration, metrics, HTTP and file watching
//
// # Architecture
//
// The data flow through umlgraph:
//
//	diagram text
//	     ↓
//	[parser] (classify lines, build classes and relationships)
//	     ↓
//	[diagram] graph
//	     ↓
//	[layout] (reverse cycles, rank, subdivide, order, place)
//	     ↓
//	JSON/YAML ([io]) or DOT/SVG ([render/nodelink])
//
// # Quick Start
//
//	g := pipeline.Process("classDiagram\nAnimal <|-- Duck")
//	for _, n := range g.Nodes {
//	    fmt.Println(n.ID, n.Position.X, n.Position.Y)
//	}
//
// # Main Packages
//
// ## Core
//
// [diagram] - The graph model: classes with member lines, relationships with
// a relation token, and the relation vocabulary.
//
// [parser] - Line classification and graph construction. Parsing never fails;
// lines that contribute nothing are listed in a [parser.Report].
//
// [dag] - Directed graph with rows, used as the layout's working graph.
//
// [dag/transform] - Cycle reversal, longest-path ranking and subdivision of
// long edges into virtual nodes. [transform.Normalize] runs all three.
//
// [layout] - Sugiyama layout: normalization, crossing reduction with
// [layout/ordering], and coordinate assignment.
//
// ## Output
//
// [io] - JSON and YAML import/export of laid out graphs.
//
// [render/nodelink] - Graphviz DOT with pinned positions and SVG via
// go-graphviz.
//
// [pipeline] - Parse, layout and format used by the CLI and the HTTP API,
// with artifact caching.
//
// ## Infrastructure
//
// [cache] - File (snappy compressed), Redis and null artifact caches.
//
// [config] - TOML, .env and environment configuration.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hook interfaces for metrics; [metrics] implements them
// with Prometheus.
//
// [server] - chi based HTTP API.
//
// [watch] - fsnotify based file watching with latest-wins runs.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/layout/...          # Specific package
//	go test -run Example ./pkg/...    # Examples only
//	UMLGRAPH_TEST_REDIS=localhost:6379 go test ./pkg/cache  # Redis backend
package pkg
