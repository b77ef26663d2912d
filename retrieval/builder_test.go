package retrieval

import (
	"context"
	"testing"

	"sales-agent/catalog"

	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"
)

func stubEmbedder() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
}

func TestBuildIndexDedupesAndSkips(t *testing.T) {
	dir := t.TempDir()
	store := fakeStore{products: []catalog.Product{
		{ID: "MLM1", Categoria: "Maquinas Laser CO2", Detalles: catalog.Attributes{"TITLE": "Cortadora 60W"}},
		{ID: "MLM1", Categoria: "Maquinas Laser CO2", Detalles: catalog.Attributes{"TITLE": "Cortadora 60W duplicada"}},
		{Categoria: "Sin identificador", Detalles: catalog.Attributes{"TITLE": "Registro sin ID"}},
		{ID: "MLM2", Categoria: "Tubos Laser", Detalles: catalog.Attributes{"TITLE": "Tubo Reci 90W"}},
	}}

	count, err := BuildIndex(context.Background(), store, dir, stubEmbedder(), zap.NewNop())
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if count != 2 {
		t.Errorf("BuildIndex() = %d documents, want 2", count)
	}

	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		t.Fatalf("NewPersistentDB() error = %v", err)
	}
	collection := db.GetCollection(CollectionName, stubEmbedder())
	if collection == nil {
		t.Fatal("persisted collection not found")
	}
	if got := collection.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestBuildIndexEmptyCatalog(t *testing.T) {
	count, err := BuildIndex(context.Background(), fakeStore{}, t.TempDir(), stubEmbedder(), zap.NewNop())
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if count != 0 {
		t.Errorf("BuildIndex() = %d, want 0", count)
	}
}

func TestIndexMetadata(t *testing.T) {
	p := catalog.Product{
		Categoria: "Tubos Laser",
		Precio:    "8999",
		Detalles: catalog.Attributes{
			"ID":     "MLM7",
			"TITLE":  "Tubo Laser Reci W2",
			"BRAND":  "Reci",
			"POWER":  "90W",
			"precio": "should not shadow",
		},
	}

	meta := indexMetadata("MLM7", p)

	if meta["id"] != "MLM7" {
		t.Errorf("meta[id] = %q", meta["id"])
	}
	if meta["titulo"] != "Tubo Laser Reci W2" {
		t.Errorf("meta[titulo] = %q", meta["titulo"])
	}
	if meta["link_mercadolibre"] != "https://articulo.mercadolibre.com.mx/MLM-7" {
		t.Errorf("meta[link_mercadolibre] = %q", meta["link_mercadolibre"])
	}
	if meta["precio"] != "8999" {
		t.Errorf("detail key shadowed base field: meta[precio] = %q", meta["precio"])
	}
	if meta["POWER"] != "90W" {
		t.Errorf("detail key missing: meta[POWER] = %q", meta["POWER"])
	}
}
