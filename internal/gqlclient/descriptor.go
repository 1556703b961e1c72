package gqlclient

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

type Kind string

const (
	Query    Kind = "query"
	Mutation Kind = "mutation"
)

// Variables is the per-call variable map sent alongside an operation.
type Variables map[string]any

// VarsHook transforms variables before the network call.
type VarsHook func(ctx context.Context, vars Variables) (Variables, error)

// EnvelopeHook transforms the response envelope after the network call.
type EnvelopeHook func(ctx context.Context, env *Envelope) (*Envelope, error)

// CacheOptions are advisory hints carried on a descriptor. The executor
// itself performs no caching; callers that layer one on read these.
type CacheOptions struct {
	Cacheable bool
	TTL       time.Duration
}

// Descriptor is an immutable registration of one named backend
// operation. Construct it once at package init and share it across
// calls. Hook slices run in registration order and are exported so
// tests can inspect the pipeline.
type Descriptor struct {
	Name          string
	Kind          Kind
	Text          string
	Cache         CacheOptions
	ThrowOnErrors bool

	PreProcess        []VarsHook
	PreProcessClient  []VarsHook
	PostProcess       []EnvelopeHook
	PostProcessClient []EnvelopeHook
}

// DescriptorConfig mirrors the Descriptor fields; Operation is the
// GraphQL source text, serialized to canonical form once at
// construction. No schema validation happens here: an operation that
// parses but names unknown fields surfaces as a backend error at call
// time.
type DescriptorConfig struct {
	Name          string
	Operation     string
	Kind          Kind
	Cache         CacheOptions
	ThrowOnErrors bool

	PreProcess        []VarsHook
	PreProcessClient  []VarsHook
	PostProcess       []EnvelopeHook
	PostProcessClient []EnvelopeHook
}

func NewDescriptor(cfg DescriptorConfig) (*Descriptor, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("descriptor: name is required")
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: cfg.Name, Input: cfg.Operation})
	if err != nil {
		return nil, fmt.Errorf("descriptor %s: parse operation: %w", cfg.Name, err)
	}
	if len(doc.Operations) == 0 {
		return nil, fmt.Errorf("descriptor %s: operation document is empty", cfg.Name)
	}
	if declared := doc.Operations[0].Name; declared != "" && declared != cfg.Name {
		return nil, fmt.Errorf("descriptor %s: operation declares name %q", cfg.Name, declared)
	}

	kind := cfg.Kind
	if kind == "" {
		kind = Query
	}

	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)

	return &Descriptor{
		Name:              cfg.Name,
		Kind:              kind,
		Text:              buf.String(),
		Cache:             cfg.Cache,
		ThrowOnErrors:     cfg.ThrowOnErrors,
		PreProcess:        cfg.PreProcess,
		PreProcessClient:  cfg.PreProcessClient,
		PostProcess:       cfg.PostProcess,
		PostProcessClient: cfg.PostProcessClient,
	}, nil
}

// MustDescriptor is NewDescriptor for package-level registrations,
// where a malformed operation is a programming error.
func MustDescriptor(cfg DescriptorConfig) *Descriptor {
	d, err := NewDescriptor(cfg)
	if err != nil {
		panic(err)
	}
	return d
}
