package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/umlgraph/pkg/diagram"
)

// ReadJSON decodes a graph written by [WriteJSON].
func ReadJSON(r io.Reader) (diagram.Graph, error) {
	var w graph
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return diagram.Graph{}, fmt.Errorf("decode: %w", err)
	}
	return fromWire(w)
}

// ReadYAML decodes a graph written by [WriteYAML].
func ReadYAML(r io.Reader) (diagram.Graph, error) {
	var w graph
	if err := yaml.NewDecoder(r).Decode(&w); err != nil {
		return diagram.Graph{}, fmt.Errorf("decode: %w", err)
	}
	return fromWire(w)
}

// ImportJSON reads a JSON graph file.
func ImportJSON(path string) (diagram.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return diagram.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadSource returns the diagram text at path, reading stdin when path is
// "-". The text is returned as is; the parser handles trimming.
func ReadSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
