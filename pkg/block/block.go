package block

import (
	"strings"

	"github.com/matzehuels/compactsheet/pkg/errors"
	"github.com/matzehuels/compactsheet/pkg/geometry"
)

// Priority bounds.
const (
	MinPriority = 1
	MaxPriority = 10
)

// Block is a typed, sized and prioritized unit of content.
// Blocks are values; distribution derives new blocks rather than editing them.
type Block struct {
	ID      string `json:"id"`
	Type    Type   `json:"type"`
	Content string `json:"content"`

	// EstimatedHeight is in inches.
	EstimatedHeight float64 `json:"estimated_height"`
	Breakable       bool    `json:"breakable"`
	Priority        int     `json:"priority"`

	// SourceID is the ID of the block this one was split from (itself if unsplit).
	SourceID string `json:"source_id"`
	// Part numbers the pieces of a split block starting at 1.
	Part int `json:"part"`
	// HeightOverridden is set when EstimatedHeight came from the caller.
	HeightOverridden bool `json:"height_overridden,omitempty"`
}

// IsContinuation reports whether b is a remainder produced by splitting.
func (b Block) IsContinuation() bool { return b.Part > 1 }

// Options override the factory defaults for a single block.
type Options struct {
	Breakable       *bool    `json:"breakable,omitempty" toml:"breakable"`
	Priority        *int     `json:"priority,omitempty" toml:"priority"`
	EstimatedHeight *float64 `json:"estimatedHeight,omitempty" toml:"estimated_height"`
}

// Unit is a raw content unit as delivered by the content pipeline.
type Unit struct {
	ID      string  `json:"id" toml:"id"`
	Content string  `json:"content" toml:"content"`
	Type    string  `json:"type" toml:"type"`
	Options Options `json:"options" toml:"options"`
}

// Factory turns raw content into blocks sized for one geometry.
type Factory struct {
	geometry  geometry.Geometry
	estimator Estimator
}

// NewFactory returns a factory for g. A nil estimator selects [Heuristic].
func NewFactory(g geometry.Geometry, est Estimator) *Factory {
	if est == nil {
		est = Heuristic{}
	}
	return &Factory{geometry: g, estimator: est}
}

// Create validates the input and returns a new Block.
// All failures are INVALID_CONTENT_BLOCK errors.
func (f *Factory) Create(id, content string, t Type, opts Options) (Block, error) {
	if strings.TrimSpace(id) == "" {
		return Block{}, errors.New(errors.ErrCodeInvalidContentBlock, "Content block ID cannot be empty").
			Suggest("give every content unit a unique, non-empty id").
			ForContent(string(t))
	}
	if strings.TrimSpace(content) == "" {
		return Block{}, errors.New(errors.ErrCodeInvalidContentBlock, "Content cannot be empty").
			Suggest("drop block %q or supply its text", id).
			ForContent(string(t))
	}
	if !t.Valid() {
		return Block{}, errors.New(errors.ErrCodeInvalidContentBlock, "Invalid content type").
			Suggest("use one of: %s", typeNames()).
			ForContent(string(t))
	}

	b := Block{
		ID:        id,
		SourceID:  id,
		Part:      1,
		Type:      t,
		Content:   content,
		Breakable: t.DefaultBreakable(),
		Priority:  t.DefaultPriority(),
	}

	if opts.Breakable != nil {
		b.Breakable = *opts.Breakable
	}
	if opts.Priority != nil {
		p := *opts.Priority
		if p < MinPriority || p > MaxPriority {
			return Block{}, errors.New(errors.ErrCodeInvalidContentBlock,
				"priority %d for block %q is outside %d-%d", p, id, MinPriority, MaxPriority).
				Suggest("use a priority between %d and %d (default for %s is %d)", MinPriority, MaxPriority, t, t.DefaultPriority()).
				ForContent(string(t))
		}
		b.Priority = p
	}
	if opts.EstimatedHeight != nil {
		h := *opts.EstimatedHeight
		if h < 0 {
			return Block{}, errors.New(errors.ErrCodeInvalidContentBlock,
				"estimated height %g for block %q is negative", h, id).
				Suggest("omit estimatedHeight to use the built-in estimate").
				ForContent(string(t))
		}
		b.EstimatedHeight = h
		b.HeightOverridden = true
	} else {
		b.EstimatedHeight = f.estimator.EstimateHeight(content, t, f.geometry)
	}
	return b, nil
}

// FromUnit creates a block from a raw content unit.
func (f *Factory) FromUnit(u Unit) (Block, error) {
	t, ok := ParseType(u.Type)
	if !ok {
		t = Type(u.Type)
	}
	return f.Create(u.ID, u.Content, t, u.Options)
}

// Estimator returns the estimator the factory sizes blocks with.
func (f *Factory) Estimator() Estimator { return f.estimator }
