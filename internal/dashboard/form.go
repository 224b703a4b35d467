package dashboard

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/gadget-shop-dashboard/internal/catalog"
)

// parseProductForm reads the admin product form from a multipart request.
// Variants arrive as a JSON string in the `variants` field, images as
// repeated `images` file parts.
func parseProductForm(c *fiber.Ctx) (catalog.ProductForm, []catalog.ImageUpload, error) {
	form := catalog.ProductForm{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Subcategory: c.FormValue("subcategory"),
		Image:       c.FormValue("image"),
	}

	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return catalog.ProductForm{}, nil, errors.New("invalid price")
		}
		form.Price = price
	}

	if raw := c.FormValue("variants"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.Variants); err != nil {
			return catalog.ProductForm{}, nil, errors.New("invalid variants")
		}
	}

	mf, err := c.MultipartForm()
	if err != nil {
		// no file parts; the text fields alone are a valid form
		return form, nil, nil
	}

	var images []catalog.ImageUpload
	for _, fh := range mf.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return catalog.ProductForm{}, nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return catalog.ProductForm{}, nil, err
		}
		images = append(images, catalog.ImageUpload{Filename: fh.Filename, Data: data})
	}
	return form, images, nil
}
