package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/shopassist/backend/internal/domain"
)

// SeedProducts returns the sample catalog used when no catalog file can be loaded
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Nike Air Max Running Shoes",
			Description: "Premium running shoes with advanced cushioning technology, perfect for long-distance running and daily workouts. Features breathable mesh upper and responsive foam midsole.",
			Price:       decimal.RequireFromString("129.99"),
			Category:    domain.CategorySports,
			Brand:       "Nike",
			ImageURL:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400",
			Tags:        []string{"running", "athletic", "shoes", "sports", "workout"},
		},
		{
			ID:          2,
			Name:        "Adidas Performance T-Shirt",
			Description: "High-performance sports t-shirt made from moisture-wicking fabric. Ideal for gym workouts, running, and athletic activities. Available in multiple colors.",
			Price:       decimal.RequireFromString("34.99"),
			Category:    domain.CategoryClothing,
			Brand:       "Adidas",
			ImageURL:    "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
			Tags:        []string{"t-shirt", "sports", "athletic", "workout", "gym"},
		},
		{
			ID:          3,
			Name:        "Premium Yoga Mat",
			Description: "Non-slip yoga mat with excellent grip and cushioning. Perfect for yoga, pilates, and meditation. Made from eco-friendly materials.",
			Price:       decimal.RequireFromString("49.99"),
			Category:    domain.CategorySports,
			Brand:       "Lululemon",
			ImageURL:    "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400",
			Tags:        []string{"yoga", "mat", "fitness", "meditation", "pilates"},
		},
		{
			ID:          4,
			Name:        "Wireless Bluetooth Headphones",
			Description: "High-quality wireless headphones with noise cancellation. Perfect for workouts, commuting, and music listening. Long battery life and comfortable fit.",
			Price:       decimal.RequireFromString("89.99"),
			Category:    domain.CategoryElectronics,
			Brand:       "Sony",
			ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400",
			Tags:        []string{"headphones", "wireless", "bluetooth", "music", "audio"},
		},
		{
			ID:          5,
			Name:        "Casual Denim Jacket",
			Description: "Classic denim jacket with modern styling. Versatile design suitable for casual and semi-formal occasions. Comfortable fit with multiple pockets.",
			Price:       decimal.RequireFromString("79.99"),
			Category:    domain.CategoryClothing,
			Brand:       "Levi's",
			ImageURL:    "https://images.unsplash.com/photo-1576995853123-5a10305d93c0?w=400",
			Tags:        []string{"jacket", "denim", "casual", "fashion", "outerwear"},
		},
		{
			ID:          6,
			Name:        "Smart Fitness Watch",
			Description: "Advanced fitness tracking watch with heart rate monitoring, GPS, and sleep tracking. Water-resistant and compatible with smartphones.",
			Price:       decimal.RequireFromString("199.99"),
			Category:    domain.CategoryElectronics,
			Brand:       "Fitbit",
			ImageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400",
			Tags:        []string{"watch", "fitness", "smartwatch", "tracking", "health"},
		},
		{
			ID:          7,
			Name:        "Organic Cotton Hoodie",
			Description: "Comfortable hoodie made from 100% organic cotton. Perfect for casual wear and light outdoor activities. Sustainable and eco-friendly.",
			Price:       decimal.RequireFromString("59.99"),
			Category:    domain.CategoryClothing,
			Brand:       "Patagonia",
			ImageURL:    "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=400",
			Tags:        []string{"hoodie", "cotton", "casual", "organic", "sustainable"},
		},
		{
			ID:          8,
			Name:        "Portable Bluetooth Speaker",
			Description: "Compact wireless speaker with impressive sound quality. Waterproof design perfect for outdoor activities, parties, and travel.",
			Price:       decimal.RequireFromString("69.99"),
			Category:    domain.CategoryElectronics,
			Brand:       "JBL",
			ImageURL:    "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=400",
			Tags:        []string{"speaker", "bluetooth", "portable", "wireless", "audio"},
		},
		{
			ID:          9,
			Name:        "Professional Camera Lens",
			Description: "High-quality camera lens for professional photography. Excellent image quality with wide aperture for beautiful bokeh effects.",
			Price:       decimal.RequireFromString("299.99"),
			Category:    domain.CategoryElectronics,
			Brand:       "Canon",
			ImageURL:    "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?w=400",
			Tags:        []string{"camera", "lens", "photography", "professional", "optical"},
		},
		{
			ID:          10,
			Name:        "Eco-Friendly Water Bottle",
			Description: "Reusable water bottle made from sustainable materials. Keeps drinks cold for 24 hours and hot for 12 hours. Perfect for daily use.",
			Price:       decimal.RequireFromString("24.99"),
			Category:    domain.CategoryHome,
			Brand:       "Hydro Flask",
			ImageURL:    "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=400",
			Tags:        []string{"water bottle", "reusable", "eco-friendly", "sustainable", "insulated"},
		},
	}
}
