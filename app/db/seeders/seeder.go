package seeders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopstreet/shopstreet/app/models"
)

type seedProduct struct {
	Name             string
	Description      string
	ShortDescription string
	Category         string
	Price            string
	ComparePrice     string
	Sku              string
	StockQuantity    int
	IsFeatured       bool
}

var seedCategories = []models.Category{
	{Name: "Electronics", Slug: "electronics", Description: "Latest gadgets and electronic devices"},
	{Name: "Clothing", Slug: "clothing", Description: "Fashion and apparel for everyone"},
	{Name: "Home & Garden", Slug: "home-garden", Description: "Everything for your home and garden"},
	{Name: "Sports & Outdoors", Slug: "sports-outdoors", Description: "Sports equipment and outdoor gear"},
	{Name: "Books", Slug: "books", Description: "Books across all genres"},
	{Name: "Health & Beauty", Slug: "health-beauty", Description: "Health and beauty products"},
}

var seedProducts = []seedProduct{
	{
		Name:             "Wireless Bluetooth Headphones",
		Description:      "High-quality wireless headphones with noise cancellation and long battery life.",
		ShortDescription: "Premium wireless headphones with excellent sound quality.",
		Category:         "Electronics",
		Price:            "99.99",
		ComparePrice:     "129.99",
		Sku:              "WBH-001",
		StockQuantity:    50,
		IsFeatured:       true,
	},
	{
		Name:             "Smartphone Case",
		Description:      "Durable protective case for smartphones with shock absorption.",
		ShortDescription: "Protective smartphone case with premium materials.",
		Category:         "Electronics",
		Price:            "24.99",
		Sku:              "SPC-001",
		StockQuantity:    100,
	},
	{
		Name:             "4K Webcam",
		Description:      "Ultra HD webcam perfect for streaming and video calls.",
		ShortDescription: "4K resolution webcam with auto-focus.",
		Category:         "Electronics",
		Price:            "79.99",
		ComparePrice:     "99.99",
		Sku:              "WC4K-001",
		StockQuantity:    25,
		IsFeatured:       true,
	},
	{
		Name:             "Cotton T-Shirt",
		Description:      "Comfortable 100% cotton t-shirt available in multiple colors.",
		ShortDescription: "Classic cotton t-shirt for everyday wear.",
		Category:         "Clothing",
		Price:            "19.99",
		Sku:              "CT-001",
		StockQuantity:    200,
	},
	{
		Name:             "Denim Jeans",
		Description:      "Classic fit denim jeans made from premium denim fabric.",
		ShortDescription: "Comfortable and stylish denim jeans.",
		Category:         "Clothing",
		Price:            "59.99",
		ComparePrice:     "79.99",
		Sku:              "DJ-001",
		StockQuantity:    75,
		IsFeatured:       true,
	},
	{
		Name:             "LED Desk Lamp",
		Description:      "Adjustable LED desk lamp with multiple brightness levels and USB charging port.",
		ShortDescription: "Modern LED desk lamp with USB charging.",
		Category:         "Home & Garden",
		Price:            "39.99",
		Sku:              "LDL-001",
		StockQuantity:    60,
	},
	{
		Name:             "Indoor Plant Pot",
		Description:      "Ceramic plant pot perfect for indoor plants and herbs.",
		ShortDescription: "Stylish ceramic pot for indoor plants.",
		Category:         "Home & Garden",
		Price:            "14.99",
		Sku:              "IPP-001",
		StockQuantity:    120,
	},
	{
		Name:             "Yoga Mat",
		Description:      "Non-slip yoga mat made from eco-friendly materials.",
		ShortDescription: "Premium eco-friendly yoga mat.",
		Category:         "Sports & Outdoors",
		Price:            "29.99",
		Sku:              "YM-001",
		StockQuantity:    80,
		IsFeatured:       true,
	},
	{
		Name:             "Programming Guide",
		Description:      "Comprehensive guide to modern programming languages and techniques.",
		ShortDescription: "Essential programming guide for developers.",
		Category:         "Books",
		Price:            "34.99",
		Sku:              "PG-001",
		StockQuantity:    40,
	},
	{
		Name:             "Organic Face Cream",
		Description:      "Natural organic face cream with anti-aging properties.",
		ShortDescription: "Organic anti-aging face cream.",
		Category:         "Health & Beauty",
		Price:            "49.99",
		ComparePrice:     "64.99",
		Sku:              "OFC-001",
		StockQuantity:    30,
	},
}

// Run loads the sample catalog. It is idempotent: existing categories,
// products and coupons are matched by their natural keys and left alone.
func Run(db *gorm.DB) error {
	byName := make(map[string]string, len(seedCategories))

	for _, c := range seedCategories {
		category := c
		if err := db.Where(models.Category{Slug: category.Slug}).FirstOrCreate(&category).Error; err != nil {
			return err
		}
		byName[category.Name] = category.ID
	}

	for _, p := range seedProducts {
		categoryID, ok := byName[p.Category]
		if !ok {
			continue
		}

		product := models.Product{
			Name:             p.Name,
			Slug:             slugify(p.Name),
			Sku:              p.Sku,
			Description:      p.Description,
			ShortDescription: p.ShortDescription,
			CategoryID:       categoryID,
			Price:            decimal.RequireFromString(p.Price),
			StockQuantity:    p.StockQuantity,
			IsActive:         true,
			IsFeatured:       p.IsFeatured,
		}
		if p.ComparePrice != "" {
			cp := decimal.RequireFromString(p.ComparePrice)
			product.ComparePrice = &cp
		}

		if err := db.Where(models.Product{Sku: product.Sku}).FirstOrCreate(&product).Error; err != nil {
			return err
		}
	}

	return seedCoupons(db)
}

func seedCoupons(db *gorm.DB) error {
	now := time.Now()
	coupons := []models.Coupon{
		{
			Code:          "WELCOME10",
			DiscountType:  models.CouponTypePercentage,
			DiscountValue: decimal.NewFromInt(10),
			MinimumAmount: decimal.NewFromInt(50),
			UsageLimit:    100,
			ValidFrom:     now,
			ValidUntil:    now.AddDate(0, 0, 30),
			IsActive:      true,
		},
		{
			Code:          "SAVE20",
			DiscountType:  models.CouponTypeFixed,
			DiscountValue: decimal.NewFromInt(20),
			MinimumAmount: decimal.NewFromInt(100),
			UsageLimit:    50,
			ValidFrom:     now,
			ValidUntil:    now.AddDate(0, 0, 15),
			IsActive:      true,
		},
	}

	for _, c := range coupons {
		coupon := c
		if err := db.Where(models.Coupon{Code: coupon.Code}).FirstOrCreate(&coupon).Error; err != nil {
			return err
		}
	}
	return nil
}

func slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.Join(strings.Fields(s), "-")
	return s
}
