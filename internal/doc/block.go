package doc

import "strings"

// Tag is one tokenized block tag, e.g. `@param {Object} options.timeout Delay`.
type Tag struct {
	// Tag is the tag name without the leading @ ("param").
	Tag string `json:"tag" yaml:"tag" msgpack:"tag"`
	// Name is the raw documented name; it may be dotted and padded.
	Name string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	// Type is the text between the curly brackets, empty when absent.
	Type        string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
	// Line is the 1-based source line the tag starts on.
	Line int `json:"line" yaml:"line" msgpack:"line"`
}

// TrimmedName is Name without surrounding whitespace.
func (t Tag) TrimmedName() string {
	return strings.TrimSpace(t.Name)
}

// IsPath reports whether the tag documents a nested property.
func (t Tag) IsPath() bool {
	return IsPath(t.Name)
}

// Block is the tag list of one documentation comment.
type Block struct {
	Line        int    `json:"line" yaml:"line" msgpack:"line"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
	Tags        []Tag  `json:"tags" yaml:"tags" msgpack:"tags"`
}

// Indexed pairs a tag with its position in Block.Tags.
type Indexed struct {
	Index int
	Tag   Tag
}

// Filter returns the tags named tagName, keeping their block positions.
func (b Block) Filter(tagName string) []Indexed {
	var out []Indexed
	for i, t := range b.Tags {
		if t.Tag == tagName {
			out = append(out, Indexed{Index: i, Tag: t})
		}
	}
	return out
}

// Has reports whether any tag is named tagName.
func (b Block) Has(tagName string) bool {
	for _, t := range b.Tags {
		if t.Tag == tagName {
			return true
		}
	}
	return false
}

// Without returns a copy of the block minus the tag at index.
func (b Block) Without(index int) Block {
	if index < 0 || index >= len(b.Tags) {
		return b
	}
	tags := make([]Tag, 0, len(b.Tags)-1)
	tags = append(tags, b.Tags[:index]...)
	tags = append(tags, b.Tags[index+1:]...)
	b.Tags = tags
	return b
}
