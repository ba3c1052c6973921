package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ContentBlockType string

const (
	BlockTitle       ContentBlockType = "title"
	BlockSquareImage ContentBlockType = "square_image"
	BlockBanner      ContentBlockType = "banner"
	BlockImageText   ContentBlockType = "image_text"
	BlockParagraph   ContentBlockType = "paragraph"
)

// Valid reports whether the value is a known block type.
func (t ContentBlockType) Valid() bool {
	switch t {
	case BlockTitle, BlockSquareImage, BlockBanner, BlockImageText, BlockParagraph:
		return true
	}
	return false
}

// ContentBlock is one unit of rich marketing content in a user-ordered list.
// The union is closed over the five block types; which fields are meaningful
// depends on Type. ID is minted once at creation and must survive reorders
// and edits, since the editor targets blocks by id.
type ContentBlock struct {
	ID   string           `json:"id"`
	Type ContentBlockType `json:"type"`

	// title, image_text, paragraph
	Text string `json:"text,omitempty"`
	// title: small, medium, large
	Size string `json:"size,omitempty"`
	// square_image, banner, image_text
	ImageURL string `json:"imageUrl,omitempty"`
	Alt      string `json:"alt,omitempty"`
	// image_text: left, right
	ImagePosition string `json:"imagePosition,omitempty"`
}

// ContentBlockList is an ordered list of content blocks stored as a JSON
// column. Decoding is defensive: null, malformed, or non-array values read
// as the empty list, and blocks with an unknown type are dropped. Stored
// data is never trusted to be well-shaped.
type ContentBlockList []ContentBlock

func (l ContentBlockList) Value() (driver.Value, error) {
	if l == nil {
		l = ContentBlockList{}
	}
	return json.Marshal(l)
}

func (l *ContentBlockList) Scan(value interface{}) error {
	*l = ContentBlockList{}
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported content block column type %T", value)
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		// Not list-shaped: treat as empty rather than failing the read.
		return nil
	}

	kept := make(ContentBlockList, 0, len(blocks))
	for _, b := range blocks {
		if b.Type.Valid() {
			kept = append(kept, b)
		}
	}
	*l = kept
	return nil
}

// FeatureList is an ordered list of feature strings stored as a JSON column,
// with the same defensive decoding as ContentBlockList.
type FeatureList []string

func (l FeatureList) Value() (driver.Value, error) {
	if l == nil {
		l = FeatureList{}
	}
	return json.Marshal(l)
}

func (l *FeatureList) Scan(value interface{}) error {
	*l = FeatureList{}
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported feature column type %T", value)
	}

	var features []string
	if err := json.Unmarshal(data, &features); err != nil {
		return nil
	}
	*l = features
	return nil
}
