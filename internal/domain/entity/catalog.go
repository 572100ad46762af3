package entity

import "github.com/shopspring/decimal"

type catalogRow struct {
	code, name, category, unit string
	price, stock, tax          int64
}

var defaultCatalog = []catalogRow{
	{"GRO001", "Toor Dal (1kg)", "Grocery", "Kg", 140, 100, 0},
	{"GRO002", "Moong Dal (1kg)", "Grocery", "Kg", 120, 80, 0},
	{"GRO009", "Wheat Flour (Atta) (5kg)", "Grocery", "Packet", 220, 150, 0},
	{"GRO012", "Besan (1kg)", "Grocery", "Kg", 80, 90, 5},
	{"GRO015", "Basmati Rice (Premium) (1kg)", "Grocery", "Kg", 180, 120, 0},
	{"GRO020", "Sunflower Oil (1L)", "Grocery", "L", 150, 200, 5},
	{"GRO024", "Cow Ghee (500ml)", "Grocery", "Bottle", 380, 100, 5},
	{"GRO025", "Turmeric Powder (200g)", "Grocery", "Packet", 60, 150, 5},
	{"GRO037", "Iodized Salt (1kg)", "Grocery", "Packet", 25, 250, 0},
	{"GRO039", "Sugar (1kg)", "Grocery", "Kg", 45, 300, 5},
	{"GRO041", "Almonds (250g)", "Grocery", "Packet", 250, 80, 5},
	{"GRO048", "Maggi Noodles (Pack of 4)", "Grocery", "Packet", 56, 200, 18},
	{"DAI001", "Toned Milk (500ml)", "Dairy", "Packet", 30, 100, 0},
	{"DAI003", "Butter (100g)", "Dairy", "Piece", 60, 60, 12},
	{"DAI004", "Paneer (200g)", "Dairy", "Packet", 90, 40, 5},
	{"PER001", "Bathing Soap (100g)", "Personal Care", "Piece", 45, 120, 18},
	{"PER003", "Toothpaste (150g)", "Personal Care", "Tube", 95, 100, 18},
	{"BEV001", "Tea Powder (500g)", "Beverages", "Packet", 250, 80, 5},
	{"BEV003", "Fruit Juice (1L)", "Beverages", "Tetra Pack", 110, 70, 12},
	{"BEV004", "Cola Drink (2L)", "Beverages", "Bottle", 90, 100, 18},
	{"HOU001", "Detergent Powder (1kg)", "Household", "Packet", 110, 80, 18},
	{"HOU002", "Dish Wash Bar (250g)", "Household", "Piece", 20, 150, 18},
	{"SNK001", "Glucose Biscuits", "Snacks", "Packet", 10, 200, 18},
	{"SNK005", "Chocolate Bar (50g)", "Snacks", "Piece", 40, 150, 18},
}

// DefaultCatalog returns the starter catalog used by the seed and by the admin reset
func DefaultCatalog() []Product {
	products := make([]Product, 0, len(defaultCatalog))
	for _, row := range defaultCatalog {
		products = append(products, Product{
			Name:            row.name,
			Code:            row.code,
			Category:        row.category,
			Unit:            row.unit,
			Price:           decimal.NewFromInt(row.price),
			Stock:           int(row.stock),
			DiscountPercent: decimal.Zero,
			TaxPercent:      decimal.NewFromInt(row.tax),
		})
	}
	return products
}
