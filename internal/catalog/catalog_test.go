package catalog

import (
	"testing"

	"github.com/ivmish/teremok/internal/domain/model"
)

func TestCatalogPreservesOrderAndSkipsDuplicates(t *testing.T) {
	c := New([]model.CatalogItem{
		{Name: "a", Price: 100},
		{Name: "b", Price: 200},
		{Name: "a", Price: 999},
	})

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "a" || items[1].Name != "b" {
		t.Fatalf("unexpected order: %v", items)
	}
	if items[0].Price != 100 {
		t.Fatal("first definition must win")
	}
}

func TestCatalogGet(t *testing.T) {
	c := Default()

	item, ok := c.Get("Кружка «Теремок»")
	if !ok {
		t.Fatal("expected mug in default catalog")
	}
	if item.Price != 35000 {
		t.Fatalf("unexpected price: %d", item.Price)
	}

	if _, ok := c.Get("нет такого"); ok {
		t.Fatal("unknown item must not resolve")
	}
}
