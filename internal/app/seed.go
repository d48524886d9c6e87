package app

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sameerdev7/sneakhub/internal/domain"
)

// MigrateAndSeed creates the schema and, on an empty products table, loads
// the starter inventory. No-op when no store is configured.
func (a *App) MigrateAndSeed() error {
	if a.DB == nil {
		return nil
	}
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.Order{}, &domain.OrderItem{}, &domain.Customer{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)").Error

	var count int64
	if err := a.DB.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Info().Msg("seeding starter inventory")
	for i := range seedProducts {
		p := seedProducts[i]
		p.ID = uuid.New()
		if err := a.DB.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

var seedProducts = []domain.Product{
	{Title: "Air Zoom Court Low", Category: "Sneakers", PriceUSD: 120, Rating: 4.6, Reviews: 214, Premium: true,
		ImageURL: "/public/img/seed/air-zoom-court.jpg", Sizes: []string{"US 7", "US 8", "US 9", "US 10", "US 11"},
		Description: "Court-ready low top with a zoom unit under the heel."},
	{Title: "Retro Runner 88", Category: "Sneakers", PriceUSD: 95, Rating: 4.4, Reviews: 156,
		ImageURL: "/public/img/seed/retro-runner.jpg", Sizes: []string{"US 7", "US 8", "US 9", "US 10", "US 11", "US 12"},
		Description: "Suede and mesh throwback in faded volt."},
	{Title: "High-Top Canvas Classic", Category: "Sneakers", PriceUSD: 65, Rating: 4.2, Reviews: 341,
		ImageURL: "/public/img/seed/hightop-canvas.jpg", Sizes: []string{"US 7", "US 8", "US 9", "US 10"},
		Description: "The one that goes with everything."},
	{Title: "Oversized Graphic Hoodie", Category: "Hoodie", PriceUSD: 60, Rating: 4.7, Reviews: 98, Premium: true,
		ImageURL: "/public/img/seed/graphic-hoodie.jpg", Sizes: []string{"S", "M", "L", "XL", "XXL"},
		Description: "Heavyweight fleece, dropped shoulders, puff print."},
	{Title: "Boxy Heavyweight Tee", Category: "T-Shirt", PriceUSD: 25, Rating: 4.5, Reviews: 412,
		ImageURL: "/public/img/seed/boxy-tee.jpg", Sizes: []string{"S", "M", "L", "XL"},
		Description: "240gsm cotton, boxy cut, no shrink."},
	{Title: "Cargo Track Pants", Category: "Joggers", PriceUSD: 55, Rating: 4.3, Reviews: 187,
		ImageURL: "/public/img/seed/cargo-track.jpg", Sizes: []string{"S", "M", "L", "XL"},
		Description: "Nylon cargos with taped seams and zip pockets."},
	{Title: "Snapback Cap Blackout", Category: "Snapback Cap", PriceUSD: 30, Rating: 4.1, Reviews: 76,
		ImageURL: "/public/img/seed/snapback.jpg", Sizes: []string{"One Size"},
		Description: "Matte black, flat brim, embroidered logo."},
	{Title: "Crossbody Utility Bag", Category: "Crossbody Bag", PriceUSD: 40, Rating: 4.0, Reviews: 64,
		ImageURL: "/public/img/seed/crossbody.jpg", Sizes: []string{"One Size"},
		Description: "Three compartments, water resistant shell."},
	{Title: "Leather Boots Storm", Category: "Leather Boots", PriceUSD: 180, Rating: 4.8, Reviews: 52, Premium: true,
		ImageURL: "/public/img/seed/leather-boots.jpg", Sizes: []string{"US 7", "US 8", "US 9", "US 10", "US 11", "US 12"},
		Description: "Full-grain leather, lugged sole, storm welt."},
	{Title: "Varsity Jacket Navy", Category: "Varsity Jacket", PriceUSD: 110, Rating: 4.6, Reviews: 89, Premium: true,
		ImageURL: "/public/img/seed/varsity.jpg", Sizes: []string{"S", "M", "L", "XL"},
		Description: "Wool body, leather sleeves, chenille patch."},
	{Title: "Everyday Crew Socks 3-pack", Category: "Ankle Socks", PriceUSD: 10, Rating: 4.2, Reviews: 233,
		ImageURL: "/public/img/seed/crew-socks.jpg", Sizes: []string{"One Size"},
		Description: "Cushioned sole, ribbed cuff."},
	{Title: "Slide Sandals Cloud", Category: "Slides", PriceUSD: 35, Rating: 4.3, Reviews: 145,
		ImageURL: "/public/img/seed/slides.jpg", Sizes: []string{"US 7", "US 8", "US 9", "US 10", "US 11"},
		Description: "One-piece foam slide, wet or dry."},
}
