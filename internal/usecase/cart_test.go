package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ivmish/teremok/internal/catalog"
	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
	"github.com/ivmish/teremok/internal/domain/model"
	"github.com/ivmish/teremok/internal/test"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]model.CatalogItem{
		{Name: "Кружка", Price: 30000},
		{Name: "Футболка", Price: 80000},
	})
}

func TestCartAddCapturesUnitPrice(t *testing.T) {
	repo := test.NewCartRepositoryStub()
	uc := NewCartUseCase(repo, testCatalog())

	line, err := uc.Add(context.Background(), 10, "Кружка", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.UnitPrice != 30000 {
		t.Fatalf("unit price not captured: %d", line.UnitPrice)
	}
	if line.LineTotal() != 60000 {
		t.Fatalf("unexpected line total: %d", line.LineTotal())
	}
}

func TestCartAddRejectsUnknownItem(t *testing.T) {
	uc := NewCartUseCase(test.NewCartRepositoryStub(), testCatalog())

	if _, err := uc.Add(context.Background(), 10, "Самовар", 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartAddRejectsBadQuantity(t *testing.T) {
	uc := NewCartUseCase(test.NewCartRepositoryStub(), testCatalog())

	for _, qty := range []int32{0, -1} {
		if _, err := uc.Add(context.Background(), 10, "Кружка", qty); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestCartRepeatedAddsProduceSeparateLines(t *testing.T) {
	repo := test.NewCartRepositoryStub()
	uc := NewCartUseCase(repo, testCatalog())
	ctx := context.Background()

	if _, err := uc.Add(ctx, 10, "Кружка", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Add(ctx, 10, "Кружка", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines, err := uc.List(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 separate lines, got %d", len(lines))
	}

	total, err := uc.Total(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 120000 {
		t.Fatalf("unexpected total: %d", total)
	}
}

func TestCartClearIsIdempotent(t *testing.T) {
	repo := test.NewCartRepositoryStub()
	uc := NewCartUseCase(repo, testCatalog())
	ctx := context.Background()

	if err := uc.Clear(ctx, 10); err != nil {
		t.Fatalf("clearing an empty cart must succeed: %v", err)
	}

	if _, err := uc.Add(ctx, 10, "Кружка", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.Clear(ctx, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := uc.Total(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Fatalf("cleared cart total must be 0, got %d", total)
	}
}
