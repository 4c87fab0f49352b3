// Package catalog holds model descriptors and the pure functions that
// classify, merge and group them.
package catalog

// Category names. The order of PriorityOrder is the display order.
const (
	CategoryFLUX            = "FLUX"
	CategoryStableDiffusion = "Stable Diffusion"
	CategoryProfessional    = "Professional"
	CategoryAnime           = "Anime"
	CategoryStyle           = "Style"
	CategoryCommunity       = "Community"
	CategoryOther           = "Other"
)

// PriorityOrder is the fixed category order used by GroupByCategory.
var PriorityOrder = []string{
	CategoryFLUX,
	CategoryStableDiffusion,
	CategoryProfessional,
	CategoryAnime,
	CategoryStyle,
	CategoryCommunity,
	CategoryOther,
}

// Descriptor is the normalized metadata of a selectable model.
type Descriptor struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// CategoryOrDefault returns the descriptor's category, or Other when unset.
func (d Descriptor) CategoryOrDefault() string {
	if d.Category == "" {
		return CategoryOther
	}
	return d.Category
}

// Label renders "icon name" for list views.
func (d Descriptor) Label() string {
	name := d.Name
	if name == "" {
		name = d.ID
	}
	if d.Icon == "" {
		return name
	}
	return d.Icon + " " + name
}

// Catalog is a mapping of model id to descriptor that remembers insertion order.
// The zero value is an empty catalog ready to use.
type Catalog struct {
	keys    []string
	entries map[string]Descriptor
}

// New builds a catalog from descriptors. Later duplicates replace earlier ones
// but keep the first position.
func New(descriptors ...Descriptor) Catalog {
	var c Catalog
	for _, d := range descriptors {
		c.Set(d)
	}
	return c
}

// Set inserts or replaces the descriptor keyed by d.ID.
func (c *Catalog) Set(d Descriptor) {
	if c.entries == nil {
		c.entries = make(map[string]Descriptor)
	}
	if _, exists := c.entries[d.ID]; !exists {
		c.keys = append(c.keys, d.ID)
	}
	c.entries[d.ID] = d
}

// Get returns the descriptor for id.
func (c Catalog) Get(id string) (Descriptor, bool) {
	d, ok := c.entries[id]
	return d, ok
}

// Has reports whether id is present.
func (c Catalog) Has(id string) bool {
	_, ok := c.entries[id]
	return ok
}

// Len returns the number of models.
func (c Catalog) Len() int {
	return len(c.keys)
}

// Keys returns the ids in insertion order.
func (c Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Descriptors returns the descriptors in insertion order.
func (c Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.entries[k])
	}
	return out
}

// First returns the first model, if any.
func (c Catalog) First() (Descriptor, bool) {
	if len(c.keys) == 0 {
		return Descriptor{}, false
	}
	return c.entries[c.keys[0]], true
}

// Clone returns an independent copy.
func (c Catalog) Clone() Catalog {
	return New(c.Descriptors()...)
}
