package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProductUnmarshalCoercion(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantID     string
		wantPrecio string
	}{
		{
			name:       "string fields",
			line:       `{"id": "MLM123", "precio": "15999.00"}`,
			wantID:     "MLM123",
			wantPrecio: "15999.00",
		},
		{
			name:       "numeric fields coerced",
			line:       `{"id": 123, "precio": 15999.5}`,
			wantID:     "123",
			wantPrecio: "15999.5",
		},
		{
			name:       "null fields dropped",
			line:       `{"id": null, "precio": null}`,
			wantID:     "",
			wantPrecio: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tt.line), &p); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if p.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", p.ID, tt.wantID)
			}
			if p.Precio != tt.wantPrecio {
				t.Errorf("Precio = %q, want %q", p.Precio, tt.wantPrecio)
			}
		})
	}
}

func TestAttributesUnmarshal(t *testing.T) {
	raw := `{"POWER": "100W", "WEIGHT": 85, "IMPORTED": true, "SPECS": {"x": 1}, "TAGS": [1,2], "EMPTY": null}`

	var attrs Attributes
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := Attributes{
		"POWER":    "100W",
		"WEIGHT":   "85",
		"IMPORTED": "true",
	}
	if len(attrs) != len(want) {
		t.Fatalf("got %d attributes, want %d: %v", len(attrs), len(want), attrs)
	}
	for key, value := range want {
		if attrs[key] != value {
			t.Errorf("attrs[%q] = %q, want %q", key, attrs[key], value)
		}
	}
}

func TestProductAccessors(t *testing.T) {
	p := Product{
		Nombre:   "Cortadora generica",
		Detalles: Attributes{"ID": "MLM999", "TITLE": "Cortadora Laser CO2 100W", "BRAND": "Reci"},
	}

	if got := p.ProductID(); got != "MLM999" {
		t.Errorf("ProductID() = %q, want %q", got, "MLM999")
	}
	if got := p.Title(); got != "Cortadora Laser CO2 100W" {
		t.Errorf("Title() = %q, want %q", got, "Cortadora Laser CO2 100W")
	}
	if got := p.BrandName(); got != "Reci" {
		t.Errorf("BrandName() = %q, want %q", got, "Reci")
	}

	// Top-level fields win over detail keys.
	p.ID = "MLM111"
	p.Marca = "Puri"
	if got := p.ProductID(); got != "MLM111" {
		t.Errorf("ProductID() with top-level ID = %q, want %q", got, "MLM111")
	}
	if got := p.BrandName(); got != "Puri" {
		t.Errorf("BrandName() with top-level Marca = %q, want %q", got, "Puri")
	}
}

func TestSearchTextIncludesDetails(t *testing.T) {
	p := Product{
		Categoria: "Maquinas Laser",
		Detalles:  Attributes{"TITLE": "Tubo Laser Reci W2", "POWER": "90W"},
	}
	text := p.SearchText()
	for _, fragment := range []string{"Tubo Laser Reci W2", "Maquinas Laser", "POWER", "90W"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("SearchText() missing %q: %q", fragment, text)
		}
	}
}

func TestWithLinkDoesNotMutateReceiver(t *testing.T) {
	p := Product{ID: "MLM42"}
	linked := p.WithLink()

	if linked.Link != "https://articulo.mercadolibre.com.mx/MLM-42" {
		t.Errorf("WithLink().Link = %q", linked.Link)
	}
	if p.Link != "" {
		t.Errorf("receiver mutated: Link = %q", p.Link)
	}
}
