package dashboard

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/wichananm65/gadget-shop-dashboard/internal/auth"
	"github.com/wichananm65/gadget-shop-dashboard/internal/catalog"
)

// Handler renders store state as JSON and dispatches page actions to the
// stores. It owns no state of its own.
type Handler struct {
	auth    *auth.Store
	catalog *catalog.Store
	log     zerolog.Logger
}

func NewHandler(authStore *auth.Store, catalogStore *catalog.Store, log zerolog.Logger) *Handler {
	return &Handler{auth: authStore, catalog: catalogStore, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-in", h.signIn)
	app.Post("/api/v1/sign-up", h.signUp)
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
	app.Get("/api/v1/categories", h.getCategories)
}

// RegisterProtectedRoutes registers the routes that require a signed-in
// session. Install RequireSession as middleware before calling this.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/sign-out", h.signOut)
	app.Get("/api/v1/profile", h.getProfile)

	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart", h.addToCart)
	app.Delete("/api/v1/cart/:id", h.removeFromCart)

	app.Post("/api/v1/admin/product", h.addProduct)
	app.Put("/api/v1/admin/product/:id", h.updateProduct)
	app.Delete("/api/v1/admin/product/:id", h.deleteProduct)
	app.Post("/api/v1/admin/category", h.addCategory)
	app.Post("/api/v1/admin/category/:id/subcategory", h.addSubcategory)
}

// RequireSession rejects requests while no user is signed in.
func (h *Handler) RequireSession(c *fiber.Ctx) error {
	if _, ok := h.auth.CurrentUser(); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": auth.ErrNotSignedIn.Error()})
	}
	return c.Next()
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signIn(c *fiber.Ctx) error {
	payload := new(signInRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	creds := auth.Credentials{Email: payload.Email, Password: payload.Password}
	if err := h.auth.SignIn(c.Context(), creds); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	user, _ := h.auth.CurrentUser()
	return c.JSON(fiber.Map{"user": user})
}

func (h *Handler) signUp(c *fiber.Ctx) error {
	payload := new(signUpRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	creds := auth.Credentials{Name: payload.Name, Email: payload.Email, Password: payload.Password}
	if err := h.auth.SignUp(c.Context(), creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, _ := h.auth.CurrentUser()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (h *Handler) signOut(c *fiber.Ctx) error {
	h.auth.SignOut()
	return c.JSON(fiber.Map{"message": "signed out"})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	user, ok := h.auth.CurrentUser()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": auth.ErrNotSignedIn.Error()})
	}
	return c.JSON(fiber.Map{"user": user})
}

// getProducts lists products, optionally narrowed by the category and
// subcategory query params. Filtering by equality lives here, not in the
// store.
func (h *Handler) getProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	subcategory := c.Query("subcategory")

	products := h.catalog.Products()
	if category == "" && subcategory == "" {
		return c.JSON(products)
	}

	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if subcategory != "" && p.Subcategory != subcategory {
			continue
		}
		filtered = append(filtered, p)
	}
	return c.JSON(filtered)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	product, err := h.catalog.ProductByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	return c.JSON(product)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Categories())
}

type cartRequest struct {
	ProductID string `json:"productId"`
	RAM       string `json:"ram"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.catalog.Cart(),
		"count": h.catalog.CartCount(),
		"total": h.catalog.CartTotal(),
	})
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	product, err := h.catalog.ProductByID(payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}

	var variant *catalog.ProductVariant
	for i := range product.Variants {
		if product.Variants[i].RAM == payload.RAM {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "variant not found"})
	}

	if err := h.catalog.AddToCart(product, *variant, payload.Quantity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return h.getCart(c)
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	// composite keys contain the variant RAM label, e.g. "1-8 GB"
	id, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		id = c.Params("id")
	}
	h.catalog.RemoveFromCart(id)
	return h.getCart(c)
}

// addProduct accepts the admin product form as multipart/form-data: the text
// fields plus any number of `images` file parts, variants as a JSON string.
func (h *Handler) addProduct(c *fiber.Ctx) error {
	form, images, err := parseProductForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.catalog.AddProduct(c.Context(), form, images)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	payload := new(catalog.ProductForm)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.catalog.UpdateProduct(c.Params("id"), *payload)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return h.storeError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	h.catalog.DeleteProduct(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) addCategory(c *fiber.Ctx) error {
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.catalog.AddCategory(c.Context(), payload.Name)
	if err != nil {
		return h.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) addSubcategory(c *fiber.Ctx) error {
	payload := new(categoryRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.catalog.AddSubcategory(c.Context(), c.Params("id"), payload.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		}
		return h.storeError(c, err)
	}
	return c.JSON(updated)
}

// storeError maps a store failure onto a status: validation errors are the
// caller's fault, everything else means the backend round trip failed.
func (h *Handler) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrTitleRequired),
		errors.Is(err, catalog.ErrInvalidPrice),
		errors.Is(err, catalog.ErrCategoryRequired),
		errors.Is(err, catalog.ErrNameRequired),
		errors.Is(err, catalog.ErrSubNameRequired),
		errors.Is(err, catalog.ErrDuplicateSubcategory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		h.log.Warn().Err(err).Str("path", c.Path()).Msg("backend round trip failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
}
