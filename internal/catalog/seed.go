package catalog

// SeedProducts returns the demo catalog shown before any admin has created
// real products.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Title:       "HP AMD Ryzen 3",
			Price:       529.99,
			Description: "The Ryzen 3 is a more high-end processor that compares to the Intel Core i3.",
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400",
			Category:    "Laptops",
			Subcategory: "HP",
			Variants: []ProductVariant{
				{RAM: "4 GB", Price: 529.99, Quantity: 10},
				{RAM: "8 GB", Price: 629.99, Quantity: 5},
				{RAM: "16 GB", Price: 729.99, Quantity: 3},
			},
			InStock: true,
			Rating:  4.5,
		},
		{
			ID:          "2",
			Title:       "HP AMD Ryzen 3",
			Price:       529.99,
			Description: "The Ryzen 3 is a more high-end processor that compares to the Intel Core i3.",
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400",
			Category:    "Laptops",
			Subcategory: "HP",
			Variants: []ProductVariant{
				{RAM: "4 GB", Price: 529.99, Quantity: 8},
				{RAM: "8 GB", Price: 629.99, Quantity: 4},
			},
			InStock: true,
			Rating:  4.5,
		},
		{
			ID:          "3",
			Title:       "HP AMD Ryzen 3",
			Price:       529.99,
			Description: "The Ryzen 3 is a more high-end processor that compares to the Intel Core i3.",
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400",
			Category:    "Laptops",
			Subcategory: "HP",
			Variants: []ProductVariant{
				{RAM: "4 GB", Price: 529.99, Quantity: 15},
				{RAM: "8 GB", Price: 629.99, Quantity: 7},
			},
			InStock: true,
			Rating:  4.5,
		},
	}
}

// SeedCategories returns the demo category tree.
func SeedCategories() []Category {
	return []Category{
		{ID: "1", Name: "Laptops", Subcategories: []string{"HP", "Dell", "Lenovo"}},
		{ID: "2", Name: "Tablets", Subcategories: []string{"iPad", "Samsung", "Microsoft"}},
		{ID: "3", Name: "Headphones", Subcategories: []string{"Sony", "Bose", "Apple"}},
	}
}
