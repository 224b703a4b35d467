package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound             = errors.New("product not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTitleRequired        = errors.New("product title is required")
	ErrInvalidPrice         = errors.New("price must be greater than 0")
	ErrCategoryRequired     = errors.New("category is required")
	ErrNameRequired         = errors.New("category name is required")
	ErrSubNameRequired      = errors.New("subcategory name is required")
	ErrDuplicateSubcategory = errors.New("subcategory already exists")
)

// Backend is the slice of the shop API the catalog store needs. Products and
// categories are owned by the backend; the store mirrors what it returns.
type Backend interface {
	AddProduct(ctx context.Context, form ProductForm, images []ImageUpload) (Product, error)
	AddCategory(ctx context.Context, name string) (Category, error)
	AddSubcategory(ctx context.Context, categoryID, name string) (Category, error)
}

// Store holds the product and category collections plus the cart. All state
// is guarded by mu; read accessors return copies.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	log     zerolog.Logger

	products   []Product
	categories []Category
	cart       []CartItem
	loading    bool
	lastErr    string
}

func NewStore(backend Backend, log zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log,
	}
}

// Load replaces the product and category collections. Used by the composition
// root to seed demo data before the first render.
func (s *Store) Load(products []Product, categories []Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make([]Product, len(products))
	copy(s.products, products)
	s.categories = make([]Category, len(categories))
	copy(s.categories, categories)
}

// Products returns a snapshot of the product collection, unfiltered.
// Category/subcategory filtering is a presentation concern.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]Product, len(s.products))
	copy(products, s.products)
	return products
}

func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]Category, len(s.categories))
	copy(categories, s.categories)
	return categories
}

func (s *Store) ProductByID(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the message of the last failed operation. It sticks until
// ClearError is called; a newer failure replaces it.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// AddProduct validates the form, persists it through the backend and appends
// the returned product. The collection is untouched on any failure.
func (s *Store) AddProduct(ctx context.Context, form ProductForm, images []ImageUpload) (Product, error) {
	if err := validateProductForm(form); err != nil {
		s.fail(err)
		return Product{}, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.backend.AddProduct(ctx, form, images)
	if err != nil {
		s.fail(err)
		return Product{}, err
	}

	s.mu.Lock()
	s.products = append(s.products, created)
	s.mu.Unlock()

	s.log.Info().Str("productId", created.ID).Str("title", created.Title).Msg("product added")
	return created, nil
}

// UpdateProduct merges the form fields into the product with this id and
// returns the updated product, or ErrNotFound when the id is absent.
func (s *Store) UpdateProduct(id string, form ProductForm) (Product, error) {
	if err := validateProductForm(form); err != nil {
		s.fail(err)
		return Product{}, err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID != id {
			continue
		}
		p.Title = form.Title
		p.Price = form.Price
		p.Description = form.Description
		p.Category = form.Category
		p.Subcategory = form.Subcategory
		if form.Variants != nil {
			p.Variants = form.Variants
		}
		if form.Image != "" {
			p.Image = form.Image
		}
		s.products[i] = p
		return p, nil
	}

	s.lastErr = ErrNotFound.Error()
	return Product{}, ErrNotFound
}

// DeleteProduct removes the product with this id. Deleting an absent id is a
// no-op.
func (s *Store) DeleteProduct(id string) {
	s.setLoading(true)
	defer s.setLoading(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// AddCategory creates a category through the backend and appends the result.
func (s *Store) AddCategory(ctx context.Context, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.fail(ErrNameRequired)
		return Category{}, ErrNameRequired
	}

	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.backend.AddCategory(ctx, name)
	if err != nil {
		s.fail(err)
		return Category{}, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, created)
	s.mu.Unlock()

	s.log.Info().Str("categoryId", created.ID).Str("name", created.Name).Msg("category added")
	return created, nil
}

// AddSubcategory appends a subcategory name through the backend and replaces
// the stored category with the server-returned one. Duplicate names within
// the category are rejected before the network call.
func (s *Store) AddSubcategory(ctx context.Context, categoryID, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.fail(ErrSubNameRequired)
		return Category{}, ErrSubNameRequired
	}

	s.mu.RLock()
	var found bool
	for _, c := range s.categories {
		if c.ID != categoryID {
			continue
		}
		found = true
		for _, sub := range c.Subcategories {
			if sub == name {
				s.mu.RUnlock()
				s.fail(ErrDuplicateSubcategory)
				return Category{}, ErrDuplicateSubcategory
			}
		}
	}
	s.mu.RUnlock()
	if !found {
		s.fail(ErrCategoryNotFound)
		return Category{}, ErrCategoryNotFound
	}

	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.backend.AddSubcategory(ctx, categoryID, name)
	if err != nil {
		s.fail(err)
		return Category{}, err
	}

	s.mu.Lock()
	for i, c := range s.categories {
		if c.ID == categoryID {
			s.categories[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.log.Info().Str("categoryId", categoryID).Str("name", name).Msg("subcategory added")
	return updated, nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Store) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
}

func validateProductForm(form ProductForm) error {
	if strings.TrimSpace(form.Title) == "" {
		return ErrTitleRequired
	}
	if form.Price <= 0 {
		return ErrInvalidPrice
	}
	if strings.TrimSpace(form.Category) == "" {
		return ErrCategoryRequired
	}
	return nil
}
