package graph

import (
	"fmt"
	"strings"

	"github.com/datadynamo/dynamo/internal/apperr"
	"github.com/datadynamo/dynamo/internal/ident"
)

// Kind discriminates the two node kinds.
type Kind int

const (
	// KindData is a dataset vertex (DAT prefix, outgoing edges only).
	KindData Kind = iota
	// KindPipeline is a transform-stage vertex (PIP prefix).
	KindPipeline
)

// String returns the kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindPipeline:
		return "pipeline"
	default:
		return "unknown"
	}
}

// Ref is a parsed node identifier. Parsing happens once at the boundary;
// everything downstream dispatches on Kind instead of re-inspecting the
// identifier string.
type Ref struct {
	Kind Kind
	ID   string
}

// ParseRef resolves a node identifier to its kind by 3-letter prefix. Any
// other prefix is rejected before the store is touched.
func ParseRef(id string) (Ref, error) {
	switch {
	case strings.HasPrefix(id, ident.PrefixDataNode):
		return Ref{Kind: KindData, ID: id}, nil
	case strings.HasPrefix(id, ident.PrefixPipelineNode):
		return Ref{Kind: KindPipeline, ID: id}, nil
	default:
		return Ref{}, fmt.Errorf("graph: node id %q: %w", id, apperr.ErrInvalidID)
	}
}
