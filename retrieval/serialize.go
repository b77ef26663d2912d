package retrieval

import (
	"encoding/json"
	"strings"

	"sales-agent/catalog"
)

// Section labels. The downstream prompt references these literally, so
// they are part of the external interface.
const (
	labelStoreInfo  = "Informacion de la tienda"
	labelProducts   = "Productos relevantes"
	labelSummary    = "Resumen de productos"
	labelCategories = "Categorias recomendadas"
)

type section struct {
	label string
	text  string
}

// renderSections joins non-empty sections with one blank line, each under
// its [Label] header, in append order. No re-sorting happens here: the
// orchestrator owns the order.
func renderSections(sections []section) string {
	var parts []string
	for _, s := range sections {
		text := strings.TrimSpace(s.text)
		if text == "" {
			continue
		}
		parts = append(parts, "["+s.label+"]\n"+text)
	}
	return strings.Join(parts, "\n\n")
}

type productLine struct {
	Titulo    string `json:"titulo,omitempty"`
	Categoria string `json:"categoria,omitempty"`
	Marca     string `json:"marca,omitempty"`
	Modelo    string `json:"modelo,omitempty"`
	Precio    string `json:"precio,omitempty"`
	Link      string `json:"link,omitempty"`
}

// productSection renders one compact JSON record per line. One line per
// product keeps the context cheap to scan for the model and for humans
// reading logs.
func productSection(products []catalog.Product) section {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		line := productLine{
			Titulo:    p.Title(),
			Categoria: p.Categoria,
			Marca:     p.BrandName(),
			Modelo:    p.ModelName(),
			Precio:    p.Precio,
			Link:      p.Link,
		}
		if encoded, err := json.Marshal(line); err == nil {
			lines = append(lines, string(encoded))
		}
	}
	return section{label: labelProducts, text: strings.Join(lines, "\n")}
}

// summarySection renders the short name/price listing used by the default
// fallback.
func summarySection(products []catalog.Product) section {
	type summaryLine struct {
		Titulo string `json:"titulo,omitempty"`
		Precio string `json:"precio,omitempty"`
	}
	limit := len(products)
	if limit > maxSummaryProducts {
		limit = maxSummaryProducts
	}
	lines := make([]string, 0, limit)
	for _, p := range products[:limit] {
		if encoded, err := json.Marshal(summaryLine{Titulo: p.Title(), Precio: p.Precio}); err == nil {
			lines = append(lines, string(encoded))
		}
	}
	return section{label: labelSummary, text: strings.Join(lines, "\n")}
}

// categorySection renders the recommendations as one JSON array.
func categorySection(links []catalog.CategoryLink) section {
	if len(links) == 0 {
		return section{label: labelCategories}
	}
	encoded, err := json.Marshal(links)
	if err != nil {
		return section{label: labelCategories}
	}
	return section{label: labelCategories, text: string(encoded)}
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
