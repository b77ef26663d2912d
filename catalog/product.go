package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Attributes holds the free-form detail mapping of a product record. The
// feed is scraped, so values arrive as strings, numbers, or booleans; all
// scalars are coerced to strings and nested values are dropped.
type Attributes map[string]string

func (a *Attributes) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Attributes, len(raw))
	for key, value := range raw {
		if s, ok := coerceScalar(value); ok {
			out[key] = s
		}
	}
	*a = out
	return nil
}

// coerceScalar converts a scalar JSON value to its string form. Objects,
// arrays, and null report ok=false.
func coerceScalar(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	return "", false
}

// Product is one catalog record as loaded from the JSONL feed. Records are
// value data: once loaded they are never mutated, and the Link field is
// always synthesized rather than read from the feed.
type Product struct {
	ID        string     `json:"id"`
	Categoria string     `json:"categoria"`
	Nombre    string     `json:"nombre"`
	Marca     string     `json:"marca"`
	Modelo    string     `json:"modelo"`
	Tipo      string     `json:"tipo"`
	Precio    string     `json:"precio"`
	Detalles  Attributes `json:"detalles"`
	Link      string     `json:"link,omitempty"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		Categoria string          `json:"categoria"`
		Nombre    string          `json:"nombre"`
		Marca     string          `json:"marca"`
		Modelo    string          `json:"modelo"`
		Tipo      string          `json:"tipo"`
		Precio    json.RawMessage `json:"precio"`
		Detalles  Attributes      `json:"detalles"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID, _ = coerceScalar(raw.ID)
	p.Categoria = raw.Categoria
	p.Nombre = raw.Nombre
	p.Marca = raw.Marca
	p.Modelo = raw.Modelo
	p.Tipo = raw.Tipo
	p.Precio, _ = coerceScalar(raw.Precio)
	if raw.Detalles == nil {
		raw.Detalles = Attributes{}
	}
	p.Detalles = raw.Detalles
	p.Link = ""
	return nil
}

// ProductID returns the marketplace identifier, preferring the top-level
// field over the conventional upper-case detail key the feed uses.
func (p Product) ProductID() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Detalles["ID"]
}

// Title returns the listing title of the record.
func (p Product) Title() string {
	if title := p.Detalles["TITLE"]; title != "" {
		return title
	}
	return p.Nombre
}

// BrandName returns the product brand.
func (p Product) BrandName() string {
	if p.Marca != "" {
		return p.Marca
	}
	return p.Detalles["BRAND"]
}

// ModelName returns the product model designation.
func (p Product) ModelName() string {
	if p.Modelo != "" {
		return p.Modelo
	}
	return p.Detalles["MODEL"]
}

// SearchText builds the document text the embedding index stores for this
// record: title, category, brand, and model up front for weight, then the
// full detail mapping as JSON so attribute values stay searchable.
func (p Product) SearchText() string {
	parts := []string{
		p.Title(),
		p.Categoria,
		p.BrandName(),
		p.ModelName(),
	}
	if len(p.Detalles) > 0 {
		if encoded, err := json.Marshal(p.Detalles); err == nil {
			parts = append(parts, string(encoded))
		}
	}
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " \n ")
}

// WithLink returns a copy of the record with its marketplace link
// synthesized from the product ID. The receiver is never mutated.
func (p Product) WithLink() Product {
	p.Link = MercadoLibreLink(p.ProductID())
	return p
}
