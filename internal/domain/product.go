package domain

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, matching the catalog file format.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product categories used by the seed catalog and the category classifier
const (
	CategorySports      = "sports"
	CategoryClothing    = "clothing"
	CategoryElectronics = "electronics"
	CategoryHome        = "home"
	CategoryBooks       = "books"
)

// Product represents a single catalog entry
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ImageURL    string          `json:"image_url"`
	Tags        []string        `json:"tags"`
}

// Clone returns a copy of the product that shares no slices with the receiver
func (p Product) Clone() Product {
	p.Tags = copyTags(p.Tags)
	return p
}

// copyTags copies tags, keeping nil as nil and empty as empty
func copyTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	copied := make([]string, len(tags))
	copy(copied, tags)
	return copied
}

// SearchText is the document text used for similarity ranking: name, description and tags
func (p Product) SearchText() string {
	text := p.Name + " " + p.Description
	for _, tag := range p.Tags {
		text += " " + tag
	}
	return text
}

// KeywordText is the document text used for keyword matching: name and description
func (p Product) KeywordText() string {
	return p.Name + " " + p.Description
}

// ProductUpdate carries the fields of a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
}

// IsEmpty reports whether the update carries no fields
func (u ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil &&
		u.Category == nil && u.Brand == nil && u.ImageURL == nil && u.Tags == nil
}

// Apply merges the update into p (shallow field overwrite)
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Brand != nil {
		p.Brand = *u.Brand
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Tags != nil {
		p.Tags = copyTags(*u.Tags)
	}
}

// ProductFeatures are the coarse features extracted from a free-text description
type ProductFeatures struct {
	Category   string   `json:"category,omitempty"`
	Attributes []string `json:"attributes"`
}
