// Package pipeline runs diagram text through parse, layout and formatting.
//
// [Process] is the pure core: text in, positioned graph out, no errors and
// no side effects. [Runner] wraps it for the command line and the HTTP API
// with option validation, output formatting, artifact caching, logging and
// observability hooks.
//
// # Usage
//
//	g := pipeline.Process("Animal <|-- Duck")
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, text, pipeline.Options{Format: "svg"})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Artifact)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/layout"
	"github.com/matzehuels/umlgraph/pkg/parser"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatYAML, FormatDOT, FormatSVG}

// DefaultFormat is used when Options.Format is empty.
const DefaultFormat = FormatJSON

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 24 * time.Hour

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// Options configures one [Runner.Execute] call.
type Options struct {
	Format string `json:"format,omitempty"`

	// Compact omits member compartments from DOT and SVG.
	Compact bool `json:"compact,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool          `json:"refresh,omitempty"`
	TTL     time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the format and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := errors.ValidateFormat(o.Format, Formats...); err != nil {
		return err
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed diagram with layout positions.
	Graph diagram.Graph

	// SourceHash is the SHA-256 of the input text.
	SourceHash string

	Format   string
	Artifact []byte

	// Report lists the lines that contributed nothing.
	Report parser.Report
	Layout layout.Result
	Stats  Stats

	// CacheHit is set when Artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Lines      int
	NodeCount  int
	EdgeCount  int
	Dropped    int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}
