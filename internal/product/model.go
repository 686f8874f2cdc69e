package product

import "time"

// Collection is the record store collection backing products.
const Collection = "products"

// Preparation holds the brewing guidance shown on a tea's detail page.
type Preparation struct {
	Amount      string `json:"amount,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	Time        string `json:"time,omitempty"`
	Taste       string `json:"taste,omitempty"`
}

type Product struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription string       `json:"short_description,omitempty"`
	LongDescription  string       `json:"long_description,omitempty"`
	Price            float64      `json:"price"`
	SalePrice        float64      `json:"sale_price,omitempty"`
	Stock            int          `json:"stock"`
	InStock          bool         `json:"in_stock"`
	Images           []string     `json:"images,omitempty"`
	HoverImage       string       `json:"hover_image,omitempty"`
	DisplayOrder     int          `json:"display_order"`
	Preparation      *Preparation `json:"preparation,omitempty"`
	Hidden           bool         `json:"hidden"`
	Created          time.Time    `json:"created"`
	Updated          time.Time    `json:"updated"`
}

// EffectivePrice is the sale price when one is set and strictly lower than
// the list price, otherwise the list price.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}

// Visible reports whether the product belongs in the storefront catalog.
func (p Product) Visible() bool {
	return !p.Hidden
}

type NewProduct struct {
	Name             string       `json:"name"`
	ShortDescription string       `json:"short_description,omitempty"`
	LongDescription  string       `json:"long_description,omitempty"`
	Price            float64      `json:"price"`
	SalePrice        float64      `json:"sale_price,omitempty"`
	Stock            int          `json:"stock"`
	Images           []string     `json:"images,omitempty"`
	HoverImage       string       `json:"hover_image,omitempty"`
	DisplayOrder     int          `json:"display_order"`
	Preparation      *Preparation `json:"preparation,omitempty"`
	Hidden           bool         `json:"hidden"`
}

// UpdateProduct is a partial update; nil fields are left untouched.
type UpdateProduct struct {
	Name             *string      `json:"name,omitempty"`
	ShortDescription *string      `json:"short_description,omitempty"`
	LongDescription  *string      `json:"long_description,omitempty"`
	Price            *float64     `json:"price,omitempty"`
	SalePrice        *float64     `json:"sale_price,omitempty"`
	Stock            *int         `json:"stock,omitempty"`
	Images           []string     `json:"images,omitempty"`
	HoverImage       *string      `json:"hover_image,omitempty"`
	DisplayOrder     *int         `json:"display_order,omitempty"`
	Preparation      *Preparation `json:"preparation,omitempty"`
	Hidden           *bool        `json:"hidden,omitempty"`
}

// HasAnyField reports whether the update touches at least one field.
func (u UpdateProduct) HasAnyField() bool {
	return u.Name != nil ||
		u.ShortDescription != nil ||
		u.LongDescription != nil ||
		u.Price != nil ||
		u.SalePrice != nil ||
		u.Stock != nil ||
		u.Images != nil ||
		u.HoverImage != nil ||
		u.DisplayOrder != nil ||
		u.Preparation != nil ||
		u.Hidden != nil
}
