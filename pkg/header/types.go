// Package header provides the Kubernetes-style envelope shared by documents the
// clusterspec tool emits.
package header

import (
	"fmt"
	"strings"
	"time"
)

var (
	ApiVersionDomain = "clusterspec.nvidia.com"
	ApiVersionV1     = "v1"
)

const (
	// KindValidationReport is the kind of a validation report document.
	KindValidationReport = "ValidationReport"

	// TimestampKey is the metadata key holding the generation time.
	TimestampKey = "generated-timestamp"

	// VersionKey is the metadata key holding the tool version.
	VersionKey = "version"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a new Header instance with the provided functional options.
// The Metadata map is initialized automatically.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Header contains metadata and versioning information for emitted documents.
type Header struct {
	// Kind is the type of the document.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind, derives APIVersion as "<kind>.<domain>/v1" and stamps the
// generation time and tool version into Metadata.
func (h *Header) Init(kind, version string) {
	h.Kind = kind
	h.APIVersion = fmt.Sprintf("%s.%s/%s", strings.ToLower(kind), ApiVersionDomain, ApiVersionV1)
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[TimestampKey] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata[VersionKey] = version
	}
}
