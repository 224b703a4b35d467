package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

// stub backend implementing Backend; it counts calls so tests can assert
// validation happens before any round trip.
type stubBackend struct {
	product  Product
	category Category
	err      error
	calls    int
}

func (b *stubBackend) AddProduct(ctx context.Context, form ProductForm, images []ImageUpload) (Product, error) {
	b.calls++
	if b.err != nil {
		return Product{}, b.err
	}
	return b.product, nil
}

func (b *stubBackend) AddCategory(ctx context.Context, name string) (Category, error) {
	b.calls++
	if b.err != nil {
		return Category{}, b.err
	}
	return b.category, nil
}

func (b *stubBackend) AddSubcategory(ctx context.Context, categoryID, name string) (Category, error) {
	b.calls++
	if b.err != nil {
		return Category{}, b.err
	}
	return b.category, nil
}

var _ Backend = (*stubBackend)(nil)

func validForm() ProductForm {
	return ProductForm{
		Title:    "HP AMD Ryzen 3",
		Price:    529.99,
		Category: "Laptops",
		Variants: []ProductVariant{{RAM: "8 GB", Price: 629.99, Quantity: 5}},
	}
}

func TestAddProductAppendsBackendResult(t *testing.T) {
	backend := &stubBackend{product: Product{ID: "p1", Title: "HP AMD Ryzen 3"}}
	store := NewStore(backend, zerolog.Nop())

	created, err := store.AddProduct(context.Background(), validForm(), nil)
	if err != nil {
		t.Fatalf("AddProduct failed: %v", err)
	}
	if created.ID != "p1" {
		t.Fatalf("unexpected product: %+v", created)
	}

	products := store.Products()
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("product not appended, collection: %+v", products)
	}
	if store.IsLoading() {
		t.Fatal("loading flag stuck")
	}
}

func TestAddProductRejectsBadFormBeforeNetwork(t *testing.T) {
	cases := []struct {
		name string
		form ProductForm
		want error
	}{
		{"blank title", ProductForm{Title: "  ", Price: 10, Category: "Laptops"}, ErrTitleRequired},
		{"zero price", ProductForm{Title: "X", Price: 0, Category: "Laptops"}, ErrInvalidPrice},
		{"negative price", ProductForm{Title: "X", Price: -5, Category: "Laptops"}, ErrInvalidPrice},
		{"no category", ProductForm{Title: "X", Price: 10}, ErrCategoryRequired},
	}

	for _, tc := range cases {
		backend := &stubBackend{}
		store := NewStore(backend, zerolog.Nop())

		_, err := store.AddProduct(context.Background(), tc.form, nil)
		if err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if backend.calls != 0 {
			t.Fatalf("%s: backend reached despite invalid form", tc.name)
		}
		if len(store.Products()) != 0 {
			t.Fatalf("%s: collection changed despite invalid form", tc.name)
		}
		if store.Err() == "" {
			t.Fatalf("%s: error message not recorded", tc.name)
		}
	}
}

func TestAddProductBackendFailureLeavesCollection(t *testing.T) {
	backend := &stubBackend{err: errors.New("boom")}
	store := NewStore(backend, zerolog.Nop())

	if _, err := store.AddProduct(context.Background(), validForm(), nil); err == nil {
		t.Fatal("expected error")
	}
	if len(store.Products()) != 0 {
		t.Fatal("collection must be untouched on backend failure")
	}
	if store.Err() != "boom" {
		t.Fatalf("expected backend message, got %q", store.Err())
	}
}

func TestUpdateProductMergesFields(t *testing.T) {
	store := NewStore(&stubBackend{}, zerolog.Nop())
	store.Load([]Product{{ID: "p1", Title: "Old", Price: 100, Category: "Laptops", Image: "old.jpg"}}, nil)

	form := ProductForm{Title: "New", Price: 200, Category: "Laptops", Subcategory: "HP"}
	updated, err := store.UpdateProduct("p1", form)
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Title != "New" || updated.Price != 200 || updated.Subcategory != "HP" {
		t.Fatalf("fields not merged: %+v", updated)
	}
	if updated.Image != "old.jpg" {
		t.Fatalf("empty form image should not overwrite, got %q", updated.Image)
	}
}

func TestUpdateProductUnknownIDIsNotFound(t *testing.T) {
	store := NewStore(&stubBackend{}, zerolog.Nop())
	store.Load([]Product{{ID: "p1", Title: "Old", Price: 100, Category: "Laptops"}}, nil)

	if _, err := store.UpdateProduct("missing", validForm()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	store := NewStore(&stubBackend{}, zerolog.Nop())
	store.Load([]Product{{ID: "p1"}, {ID: "p2"}}, nil)

	store.DeleteProduct("p1")
	if len(store.Products()) != 1 {
		t.Fatalf("expected 1 product, got %d", len(store.Products()))
	}
	store.DeleteProduct("p1")
	if len(store.Products()) != 1 {
		t.Fatalf("second delete changed the collection")
	}
}

func TestAddCategoryRejectsBlankName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t"} {
		backend := &stubBackend{}
		store := NewStore(backend, zerolog.Nop())

		if _, err := store.AddCategory(context.Background(), name); err != ErrNameRequired {
			t.Fatalf("name %q: expected ErrNameRequired, got %v", name, err)
		}
		if backend.calls != 0 {
			t.Fatalf("name %q: backend reached despite blank name", name)
		}
	}
}

func TestAddCategoryTrimsAndAppends(t *testing.T) {
	backend := &stubBackend{category: Category{ID: "c9", Name: "Monitors"}}
	store := NewStore(backend, zerolog.Nop())

	created, err := store.AddCategory(context.Background(), "  Monitors  ")
	if err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if created.ID != "c9" {
		t.Fatalf("unexpected category: %+v", created)
	}
	if cats := store.Categories(); len(cats) != 1 || cats[0].ID != "c9" {
		t.Fatalf("category not appended: %+v", cats)
	}
}

func TestAddSubcategoryReplacesCategory(t *testing.T) {
	backend := &stubBackend{category: Category{ID: "c1", Name: "Laptops", Subcategories: []string{"HP", "Asus"}}}
	store := NewStore(backend, zerolog.Nop())
	store.Load(nil, []Category{{ID: "c1", Name: "Laptops", Subcategories: []string{"HP"}}})

	updated, err := store.AddSubcategory(context.Background(), "c1", "Asus")
	if err != nil {
		t.Fatalf("AddSubcategory failed: %v", err)
	}
	if len(updated.Subcategories) != 2 {
		t.Fatalf("unexpected result: %+v", updated)
	}
	if cats := store.Categories(); len(cats[0].Subcategories) != 2 {
		t.Fatalf("stored category not replaced: %+v", cats)
	}
}

func TestAddSubcategoryValidation(t *testing.T) {
	backend := &stubBackend{}
	store := NewStore(backend, zerolog.Nop())
	store.Load(nil, []Category{{ID: "c1", Name: "Laptops", Subcategories: []string{"HP"}}})

	if _, err := store.AddSubcategory(context.Background(), "c1", "  "); err != ErrSubNameRequired {
		t.Fatalf("expected ErrSubNameRequired, got %v", err)
	}
	if _, err := store.AddSubcategory(context.Background(), "c1", "HP"); err != ErrDuplicateSubcategory {
		t.Fatalf("expected ErrDuplicateSubcategory, got %v", err)
	}
	if _, err := store.AddSubcategory(context.Background(), "missing", "Asus"); err != ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if backend.calls != 0 {
		t.Fatalf("backend reached despite invalid input, %d calls", backend.calls)
	}
}

func TestProductByID(t *testing.T) {
	store := NewStore(&stubBackend{}, zerolog.Nop())
	store.Load(SeedProducts(), SeedCategories())

	p, err := store.ProductByID("2")
	if err != nil {
		t.Fatalf("ProductByID failed: %v", err)
	}
	if p.ID != "2" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if _, err := store.ProductByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
