package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/layout"
	"github.com/matzehuels/umlgraph/pkg/parser"
)

func sample() diagram.Graph {
	g := parser.Parse("Animal <|-- Duck\nDuck ..> Pond : swims in\nDuck : +swim()")
	layout.Apply(&g)
	return g
}

func TestWriteJSON_Fields(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample(), &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"id": "Duck"`,
		`"label": "Duck\n+swim()"`,
		`"id": "Animal-Duck-<|--"`,
		`"style": "dashed"`,
		`"kind": "dependency"`,
		`"label": "swims in"`,
		`"y": 200`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s:\n%s", want, out)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := sample()
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, g)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	g := sample()
	var buf bytes.Buffer
	if err := WriteYAML(g, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "relation: <|--") {
		t.Errorf("YAML:\n%s", buf.String())
	}
	got, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("ReadYAML() error = %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, g)
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"duplicate", `{"nodes":[{"id":"A"},{"id":"A"}],"edges":[]}`, ErrDuplicateNode},
		{"dangling", `{"nodes":[{"id":"A"}],"edges":[{"source":"A","target":"B","relation":"--"}]}`, ErrDanglingEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); !errors.Is(err, tt.want) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("ReadJSON() accepted malformed JSON")
	}
}

func TestReadJSON_DerivesMissingID(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(`{"nodes":[{"id":"A"},{"id":"B"}],"edges":[{"source":"A","target":"B","relation":"..>"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if g.Edges[0].ID != "A-B-..>" {
		t.Errorf("ID = %q", g.Edges[0].ID)
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	g := sample()
	if err := ExportJSON(g, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != len(g.Nodes) {
		t.Errorf("nodes = %d, want %d", len(got.Nodes), len(g.Nodes))
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zoo.mmd")
	if err := os.WriteFile(path, []byte("A --> B\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := ReadSource(path, nil)
	if err != nil || text != "A --> B\n" {
		t.Errorf("ReadSource(file) = %q, %v", text, err)
	}
	text, err = ReadSource("-", strings.NewReader("B --> C"))
	if err != nil || text != "B --> C" {
		t.Errorf("ReadSource(-) = %q, %v", text, err)
	}
	if _, err := ReadSource(filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("ReadSource(missing) succeeded")
	}
}
