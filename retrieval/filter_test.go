package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"sales-agent/catalog"
	"sales-agent/config"

	"go.uber.org/zap"
)

type fakeStore struct {
	products []catalog.Product
	info     string
	err      error
}

func (s fakeStore) Products(ctx context.Context) ([]catalog.Product, error) {
	return s.products, s.err
}

func (s fakeStore) StoreInfo(ctx context.Context) (string, error) {
	return s.info, s.err
}

func newTestFilter(store catalog.Store) *Filter {
	index := NewProductIndex(&config.Config{}, nil, zap.NewNop())
	return NewFilter(store, index, 7, zap.NewNop())
}

const testPolicy = "Envios a todo Mexico en 3 dias.\n" +
	"Categoria: Laser CO2\n" +
	"Link: https://example.com/co2\n" +
	"Categoria: Routers CNC\n" +
	"Link: https://example.com/cnc\n"

func TestBuildContextGenericShowsOnlyCategories(t *testing.T) {
	store := fakeStore{
		products: []catalog.Product{
			{ID: "MLM1", Categoria: "Maquinas Laser CO2", Detalles: catalog.Attributes{"TITLE": "Cortadora 60W"}},
		},
		info: testPolicy,
	}
	f := newTestFilter(store)

	got := f.BuildContext(context.Background(), "Hola, qué venden?")

	if !strings.Contains(got, "[Categorias recomendadas]") {
		t.Errorf("missing category section: %q", got)
	}
	if strings.Contains(got, "[Productos relevantes]") {
		t.Errorf("generic query must not list products: %q", got)
	}
	if strings.Contains(got, "Cortadora 60W") {
		t.Errorf("generic query leaked product data: %q", got)
	}
}

func TestBuildContextGenericFilterNarrowsCategories(t *testing.T) {
	f := newTestFilter(fakeStore{info: testPolicy})

	got := f.BuildContext(context.Background(), "tienen co2?")

	if !strings.Contains(got, "https://example.com/co2") {
		t.Errorf("missing co2 category: %q", got)
	}
	if strings.Contains(got, "https://example.com/cnc") {
		t.Errorf("cnc category should be filtered out: %q", got)
	}
}

func TestBuildContextStoreInfoVerbatim(t *testing.T) {
	store := fakeStore{
		products: []catalog.Product{
			{ID: "MLM1", Categoria: "Refacciones", Detalles: catalog.Attributes{"TITLE": "Lente de enfoque"}},
		},
		info: testPolicy,
	}
	f := newTestFilter(store)

	got := f.BuildContext(context.Background(), "hacen envios a Monterrey?")

	if !strings.Contains(got, "[Informacion de la tienda]") {
		t.Errorf("missing store info section: %q", got)
	}
	if !strings.Contains(got, "Envios a todo Mexico en 3 dias.") {
		t.Errorf("store info not verbatim: %q", got)
	}
	if strings.Contains(got, "[Productos relevantes]") {
		t.Errorf("no product should match: %q", got)
	}
}

func TestBuildContextKeywordMatchWithoutIndex(t *testing.T) {
	store := fakeStore{
		products: []catalog.Product{
			{ID: "MLM1", Categoria: "Tubos Laser", Detalles: catalog.Attributes{"TITLE": "Tubo Laser Reci 90W"}},
			{ID: "MLM2", Categoria: "Refacciones", Detalles: catalog.Attributes{"TITLE": "Lente de enfoque"}},
		},
	}
	f := newTestFilter(store)

	got := f.BuildContext(context.Background(), "me interesa el tubo reci de 90w")

	if !strings.Contains(got, "[Productos relevantes]") {
		t.Fatalf("missing products section: %q", got)
	}
	if !strings.Contains(got, "Tubo Laser Reci 90W") {
		t.Errorf("matched product missing: %q", got)
	}
	if !strings.Contains(got, "https://articulo.mercadolibre.com.mx/MLM-1") {
		t.Errorf("product link missing: %q", got)
	}
	if strings.Contains(got, "Lente de enfoque") {
		t.Errorf("unrelated product leaked: %q", got)
	}
}

func TestBuildContextCrossSellAppends(t *testing.T) {
	store := fakeStore{
		products: []catalog.Product{
			{ID: "MLM1", Categoria: "Tubos Laser", Detalles: catalog.Attributes{"TITLE": "Tubo Laser 60W"}},
			{ID: "MLM2", Categoria: "Maquinas Laser CO2", Detalles: catalog.Attributes{"TITLE": "Cortadora 80W con chiller"}},
		},
	}
	f := newTestFilter(store)

	got := f.BuildContext(context.Background(), "el tubo de 60w necesita chiller?")

	if !strings.Contains(got, "Tubo Laser 60W") {
		t.Errorf("primary match missing: %q", got)
	}
	if !strings.Contains(got, "Cortadora 80W con chiller") {
		t.Errorf("chiller cross-sell missing: %q", got)
	}
}

func TestBuildContextDeduplicates(t *testing.T) {
	store := fakeStore{
		products: []catalog.Product{
			{ID: "MLM1", Categoria: "Accesorios", Detalles: catalog.Attributes{"TITLE": "Eje rotativo para tubo"}},
		},
	}
	f := newTestFilter(store)

	// Matches both the tube primary strategy and the rotary cross-sell.
	got := f.BuildContext(context.Background(), "tubo con eje rotativo")

	if count := strings.Count(got, "Eje rotativo para tubo"); count != 1 {
		t.Errorf("product rendered %d times, want 1: %q", count, got)
	}
}

func TestRecommendCategoriesFallbackCap(t *testing.T) {
	var links []catalog.CategoryLink
	for i := 0; i < 8; i++ {
		links = append(links, catalog.CategoryLink{
			Categoria: fmt.Sprintf("Seccion %d", i),
			Link:      fmt.Sprintf("https://example.com/%d", i),
		})
	}

	// No keyword group matches a greeting, so the first-N fallback applies.
	q := ClassifyQuery("hola")
	got := recommendCategories(q, links)

	if len(got) != maxCategoryFallback {
		t.Fatalf("got %d recommendations, want cap %d", len(got), maxCategoryFallback)
	}
	for i, link := range got {
		if link.Categoria != links[i].Categoria {
			t.Errorf("recommendation[%d] = %q, want %q", i, link.Categoria, links[i].Categoria)
		}
	}
}

func TestRecommendCategoriesMatchedNotCapped(t *testing.T) {
	var links []catalog.CategoryLink
	for i := 0; i < 7; i++ {
		links = append(links, catalog.CategoryLink{
			Categoria: fmt.Sprintf("Laser CO2 serie %d", i),
			Link:      fmt.Sprintf("https://example.com/co2-%d", i),
		})
	}

	q := ClassifyQuery("que tienen de co2?")
	got := recommendCategories(q, links)

	if len(got) != len(links) {
		t.Errorf("got %d recommendations, want all %d keyword-matched links", len(got), len(links))
	}
}

func TestBuildContextEmptyEverything(t *testing.T) {
	f := newTestFilter(fakeStore{})

	if got := f.BuildContext(context.Background(), "vendes drones?"); got != "" {
		t.Errorf("BuildContext() = %q, want empty", got)
	}
}

func TestBuildContextFallback(t *testing.T) {
	store := fakeStore{
		products: []catalog.Product{
			{ID: "MLM1", Categoria: "Refacciones", Precio: "500", Detalles: catalog.Attributes{"TITLE": "Lente de enfoque"}},
		},
		info: testPolicy,
	}
	f := newTestFilter(store)

	got := f.BuildContext(context.Background(), "aceptan devoluciones de drones?")

	if !strings.Contains(got, "[Informacion de la tienda]") {
		t.Errorf("fallback missing store excerpt: %q", got)
	}
	if !strings.Contains(got, "[Resumen de productos]") {
		t.Errorf("fallback missing summary: %q", got)
	}
	if !strings.Contains(got, "[Categorias recomendadas]") {
		t.Errorf("fallback missing categories: %q", got)
	}
}

func TestBuildContextStoreErrorDegrades(t *testing.T) {
	f := newTestFilter(fakeStore{err: errors.New("disk gone")})

	if got := f.BuildContext(context.Background(), "tienen cortadoras laser?"); got != "" {
		t.Errorf("BuildContext() = %q, want empty on store failure", got)
	}
}

func TestSearchUnloadedIndexReturnsNil(t *testing.T) {
	index := NewProductIndex(&config.Config{IndexPath: t.TempDir()}, nil, zap.NewNop())

	if got := index.Search(context.Background(), "cortadora", nil, 5); got != nil {
		t.Errorf("Search() = %v, want nil before Load", got)
	}
	if index.State() != StateUnloaded {
		t.Errorf("State() = %v, want StateUnloaded", index.State())
	}
}
