package catalog

// Product represents a storefront product as the backend returns it.
// JSON tags follow the camelCase convention used elsewhere in the project.
type Product struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Price       float64          `json:"price"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
	Subcategory string           `json:"subcategory"`
	Variants    []ProductVariant `json:"variants"`
	InStock     bool             `json:"inStock"`
	Rating      float64          `json:"rating"`
}

// ProductVariant is a purchasable configuration of a product. It has no
// identity of its own and only ever lives inside a Product.
type ProductVariant struct {
	RAM      string  `json:"ram"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Category groups products; Subcategories keeps insertion order.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// CartItem is one cart line. ID is the composite key productID-variantRAM so
// the same (product, variant) pair never occupies two lines.
type CartItem struct {
	ID       string         `json:"id"`
	Product  Product        `json:"product"`
	Variant  ProductVariant `json:"variant"`
	Quantity int            `json:"quantity"`
}

// CartItemID derives the composite cart key for a product/variant pair.
func CartItemID(productID, ram string) string {
	return productID + "-" + ram
}

// ProductForm carries the admin add/update product form fields.
type ProductForm struct {
	Title       string           `json:"title"`
	Price       float64          `json:"price"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Subcategory string           `json:"subcategory"`
	Variants    []ProductVariant `json:"variants"`
	Image       string           `json:"image"`
}

// ImageUpload is one image file attached to the product form.
type ImageUpload struct {
	Filename string
	Data     []byte
}
