package main

import (
	"github.com/shopcart-api/internal/config"
	"github.com/shopcart-api/internal/constants"
	"github.com/shopcart-api/internal/logger"
	"github.com/shopcart-api/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
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
	categories := []models.Category{
		{Slug: "electronics", Name: "电子产品", SortOrder: 30},
		{Slug: "lifestyle", Name: "生活用品", SortOrder: 20},
		{Slug: "accessories", Name: "数码配件", SortOrder: 10},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "lifestyle", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	items := []models.Item{
		{
			CategoryID:  categoryIDs["electronics"],
			Name:        "无线降噪耳机",
			Description: "40 小时续航，支持主动降噪",
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("299.00")),
			Stock:       120,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["electronics"],
			Name:        "便携蓝牙音箱",
			Description: "IPX7 防水，立体声配对",
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("159.00")),
			Stock:       80,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["lifestyle"],
			Name:        "保温杯 500ml",
			Description: "316 不锈钢内胆，12 小时保温",
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("89.00")),
			Stock:       200,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["accessories"],
			Name:        "USB-C 充电线 2m",
			Description: "100W 快充，编织线身",
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("29.90")),
			Stock:       500,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["accessories"],
			Name:        "笔记本支架",
			Description: "铝合金材质，六档调节",
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("119.00")),
			Stock:       0,
			IsActive:    true,
		},
	}

	for _, item := range items {
		var existing models.Item
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create item %s: %v", item.Name, err)
			} else {
				stdLog.Printf("Created item: %s", item.Name)
			}
		} else {
			stdLog.Printf("Item already exists: %s", item.Name)
		}
	}

	// 添加演示用户
	demoEmail := "demo@example.com"
	var existingUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&existingUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Fatalf("Failed to hash demo password: %v", hashErr)
		}
		user := models.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			DisplayName:  "Demo",
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Created demo user: %s", demoEmail)
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	stdLog.Println("Seed finished")
}
