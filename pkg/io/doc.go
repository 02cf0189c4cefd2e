// Package io reads diagram sources and serializes positioned class graphs.
//
// # Wire Format
//
// Graphs are written as JSON (or the same structure as YAML):
//
//	{
//	  "nodes": [
//	    {"id": "Animal", "label": "Animal\n+int age", "members": ["+int age"],
//	     "position": {"x": 0, "y": 0}}
//	  ],
//	  "edges": [
//	    {"id": "Animal-Duck-<|--", "source": "Animal", "target": "Duck",
//	     "relation": "<|--", "label": "", "style": "solid", "kind": "inheritance"}
//	  ]
//	}
//
// label, style and kind are derived fields: they are always written and
// ignored on read, where they are recomputed from members and relation.
//
// # Import
//
// [ReadJSON] and [ReadYAML] rebuild a [diagram.Graph] and reject graphs with
// duplicate node IDs or edges whose endpoints are missing, so anything they
// return satisfies the graph invariants.
//
// # Sources
//
// [ReadSource] loads diagram text from a file, or from standard input when
// the path is "-".
package io
