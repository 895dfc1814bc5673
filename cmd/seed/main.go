package main

import (
	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/models"

	"github.com/joho/godotenv"
)

type seedCategory struct {
	Slug      string
	Name      string
	Icon      string
	SortOrder int
}

type seedMenuItem struct {
	Category    string
	Slug        string
	Name        string
	Description string
	Price       string
	Attributes  []string
	IsFeatured  bool
	SortOrder   int
}

type seedInventoryItem struct {
	Name         string
	SKU          string
	Unit         string
	Quantity     string
	ReorderLevel string
	Supplier     string
}

var seedCategories = []seedCategory{
	{Slug: "beverages", Name: "Beverages", Icon: "cup", SortOrder: 40},
	{Slug: "starters", Name: "Starters", Icon: "samosa", SortOrder: 30},
	{Slug: "mains", Name: "Mains", Icon: "thali", SortOrder: 20},
	{Slug: "desserts", Name: "Desserts", Icon: "kulfi", SortOrder: 10},
}

var seedMenuItems = []seedMenuItem{
	{Category: "beverages", Slug: "traditional-shikanji", Name: "Traditional Shikanji", Description: "Chilled lemon cooler with roasted cumin and black salt.", Price: "80", Attributes: []string{"veg", "bestseller"}, IsFeatured: true, SortOrder: 10},
	{Category: "beverages", Slug: "masala-chaas", Name: "Masala Chaas", Description: "Spiced buttermilk with fresh coriander.", Price: "60", Attributes: []string{"veg"}},
	{Category: "beverages", Slug: "mango-lassi", Name: "Mango Lassi", Description: "Thick yoghurt blended with Alphonso mango.", Price: "110", Attributes: []string{"veg"}},
	{Category: "starters", Slug: "paneer-tikka", Name: "Paneer Tikka", Description: "Tandoor-charred cottage cheese with peppers.", Price: "220", Attributes: []string{"veg", "spicy"}, SortOrder: 10},
	{Category: "starters", Slug: "chicken-65", Name: "Chicken 65", Description: "Crisp curry-leaf fried chicken.", Price: "240", Attributes: []string{"non-veg", "spicy"}},
	{Category: "mains", Slug: "royal-thali", Name: "Royal Thali", Description: "Dal, two sabzis, rice, roti, raita and a sweet.", Price: "150", Attributes: []string{"veg", "bestseller"}, IsFeatured: true, SortOrder: 10},
	{Category: "mains", Slug: "hyderabadi-biryani", Name: "Hyderabadi Biryani", Description: "Dum-cooked basmati with marinated chicken.", Price: "320", Attributes: []string{"non-veg", "spicy", "bestseller"}, IsFeatured: true},
	{Category: "mains", Slug: "dal-makhani", Name: "Dal Makhani", Description: "Slow-cooked black lentils finished with butter.", Price: "190", Attributes: []string{"veg"}},
	{Category: "desserts", Slug: "gulab-jamun", Name: "Gulab Jamun", Description: "Two warm dumplings in rose syrup.", Price: "70", Attributes: []string{"veg"}},
	{Category: "desserts", Slug: "kesar-kulfi", Name: "Kesar Kulfi", Description: "Saffron and pistachio frozen dessert.", Price: "90", Attributes: []string{"veg"}},
}

var seedInventory = []seedInventoryItem{
	{Name: "Basmati Rice", SKU: "RICE-BAS", Unit: "kg", Quantity: "40", ReorderLevel: "10", Supplier: "Annapurna Traders"},
	{Name: "Paneer", SKU: "DAIRY-PNR", Unit: "kg", Quantity: "8", ReorderLevel: "5", Supplier: "Gokul Dairy"},
	{Name: "Lemons", SKU: "VEG-LMN", Unit: "pcs", Quantity: "120", ReorderLevel: "50", Supplier: "Azadpur Mandi"},
	{Name: "Black Lentils", SKU: "DAL-URD", Unit: "kg", Quantity: "3", ReorderLevel: "6", Supplier: "Annapurna Traders"},
}

func main() {
	_ = godotenv.Load()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categoryIDs := map[string]uint{}
	for _, seed := range seedCategories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", seed.Slug).First(&existing).Error; err == nil {
			categoryIDs[seed.Slug] = existing.ID
			stdLog.Printf("Category already exists: %s", seed.Slug)
			continue
		}
		category := models.Category{
			Slug:      seed.Slug,
			Name:      seed.Name,
			Icon:      seed.Icon,
			SortOrder: seed.SortOrder,
			IsActive:  true,
		}
		if err := models.DB.Create(&category).Error; err != nil {
			stdLog.Printf("Failed to create category %s: %v", seed.Slug, err)
			continue
		}
		categoryIDs[seed.Slug] = category.ID
		stdLog.Printf("Created category: %s", seed.Slug)
	}

	// 添加菜品
	for _, seed := range seedMenuItems {
		categoryID, ok := categoryIDs[seed.Category]
		if !ok {
			stdLog.Printf("Category missing for menu item %s", seed.Slug)
			continue
		}
		var count int64
		if err := models.DB.Model(&models.MenuItem{}).Where("slug = ?", seed.Slug).Count(&count).Error; err != nil {
			stdLog.Printf("Failed to check menu item %s: %v", seed.Slug, err)
			continue
		}
		if count > 0 {
			stdLog.Printf("Menu item already exists: %s", seed.Slug)
			continue
		}
		price, err := models.ParseMoney(seed.Price)
		if err != nil {
			stdLog.Printf("Invalid price for %s: %v", seed.Slug, err)
			continue
		}
		item := models.MenuItem{
			CategoryID:  categoryID,
			Slug:        seed.Slug,
			Name:        seed.Name,
			Description: seed.Description,
			Price:       price,
			Attributes:  models.StringArray(seed.Attributes).NormalizeSet(),
			IsActive:    true,
			IsFeatured:  seed.IsFeatured,
			SortOrder:   seed.SortOrder,
		}
		if err := models.DB.Create(&item).Error; err != nil {
			stdLog.Printf("Failed to create menu item %s: %v", seed.Slug, err)
			continue
		}
		stdLog.Printf("Created menu item: %s (%s)", seed.Name, price.String())
	}

	// 添加库存物料
	for _, seed := range seedInventory {
		var count int64
		if err := models.DB.Model(&models.InventoryItem{}).Where("sku = ?", seed.SKU).Count(&count).Error; err != nil || count > 0 {
			continue
		}
		quantity, err := models.ParseMoney(seed.Quantity)
		if err != nil {
			continue
		}
		reorder, err := models.ParseMoney(seed.ReorderLevel)
		if err != nil {
			continue
		}
		item := models.InventoryItem{
			Name:         seed.Name,
			SKU:          seed.SKU,
			Unit:         seed.Unit,
			Quantity:     quantity,
			ReorderLevel: reorder,
			Supplier:     seed.Supplier,
		}
		if err := models.DB.Create(&item).Error; err != nil {
			stdLog.Printf("Failed to create inventory item %s: %v", seed.SKU, err)
			continue
		}
		stdLog.Printf("Created inventory item: %s", seed.SKU)
	}

	stdLog.Printf("Seed completed")
}
