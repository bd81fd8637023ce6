package api

// Descriptor is the per-record navigation metadata. It declares where a record
// sits in the hierarchy and how it is labelled.
type Descriptor struct {
	// Key identifies the entry. Keys are unique across the whole record set.
	Key string `json:"key" yaml:"key"`
	// Parent is the Key of the parent entry. Empty for top-level entries.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
	// Title is the display label. Defaults to Key when empty.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Order sorts siblings ascending. Nil means no order was given; zero is a
	// valid order.
	Order *float64 `json:"order,omitempty" yaml:"order,omitempty"`
	// Pinned places the entry before all non-pinned siblings.
	Pinned bool `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	// URL overrides the record's own URL.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
	// Excerpt is optional text shown after the title.
	Excerpt string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
}

// HasOrder reports whether an explicit order was declared.
func (d *Descriptor) HasOrder() bool {
	return d != nil && d.Order != nil
}

// Record is one entry of the flat input collection (e.g. a page of a site).
// Records without a Descriptor are ignored by navigation.
type Record struct {
	// ID is the provider-assigned identifier (file path, row id).
	ID string `json:"id,omitempty"`
	// Data is the opaque payload the record was built from.
	Data any `json:"data,omitempty"`
	// Nav is the navigation descriptor, nil when the record has none.
	Nav *Descriptor `json:"nav,omitempty"`
	// URL is the record's own URL, used when the descriptor has none.
	URL string `json:"url,omitempty"`
}

// Float is a convenience for building descriptors with an explicit order.
func Float(v float64) *float64 {
	return &v
}
