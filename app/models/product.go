package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID               string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name             string           `gorm:"size:200;not null" json:"name"`
	Slug             string           `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	Sku              string           `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Description      string           `gorm:"type:text" json:"description"`
	ShortDescription string           `gorm:"size:255" json:"short_description"`
	CategoryID       string           `gorm:"size:36;not null;index" json:"category_id"`
	Category         Category         `gorm:"foreignKey:CategoryID" json:"-"`
	Price            decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	ComparePrice     *decimal.Decimal `gorm:"type:decimal(16,2)" json:"compare_price,omitempty"`
	StockQuantity    int              `gorm:"not null;default:0" json:"stock_quantity"`
	Weight           decimal.Decimal  `gorm:"type:decimal(10,2);default:0.00" json:"weight"`
	Dimensions       string           `gorm:"size:100" json:"dimensions"`
	IsActive         bool             `gorm:"default:true" json:"is_active"`
	IsFeatured       bool             `gorm:"default:false" json:"is_featured"`
	Images           []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Variants         []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Reviews          []Review         `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// IsOnSale reports whether a strike-through compare price applies.
func (p *Product) IsOnSale() bool {
	return p.ComparePrice != nil && p.ComparePrice.GreaterThan(p.Price)
}

// DiscountPercentage is the whole-number markdown from the compare price.
func (p *Product) DiscountPercentage() int {
	if !p.IsOnSale() {
		return 0
	}
	diff := p.ComparePrice.Sub(p.Price)
	return int(diff.Div(*p.ComparePrice).Mul(decimal.NewFromInt(100)).IntPart())
}

func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

type ProductImage struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string    `gorm:"size:36;not null;index" json:"product_id"`
	URL       string    `gorm:"size:255;not null" json:"url"`
	AltText   string    `gorm:"size:200" json:"alt_text"`
	IsMain    bool      `gorm:"default:false" json:"is_main"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}

type ProductVariant struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID       string          `gorm:"size:36;not null;index;uniqueIndex:idx_variant_option" json:"product_id"`
	Name            string          `gorm:"size:100;not null;uniqueIndex:idx_variant_option" json:"name"`
	Value           string          `gorm:"size:100;not null;uniqueIndex:idx_variant_option" json:"value"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"price_adjustment"`
	StockQuantity   int             `gorm:"not null;default:0" json:"stock_quantity"`
	Sku             string          `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (pv *ProductVariant) BeforeCreate(tx *gorm.DB) (err error) {
	if pv.ID == "" {
		pv.ID = uuid.New().String()
	}
	return
}

type Review struct {
	ID         string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID  string    `gorm:"size:36;not null;index;uniqueIndex:idx_review_user" json:"product_id"`
	UserID     string    `gorm:"size:36;not null;uniqueIndex:idx_review_user" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	Rating     int       `gorm:"not null" json:"rating"`
	Title      string    `gorm:"size:200" json:"title"`
	Comment    string    `gorm:"type:text" json:"comment"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
