package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/modiatoukalord/kheops-sub000/internal/catalog/domain"
	"gorm.io/gorm"
)

type defaultCategory struct {
	Name      string
	PointCost int64
	UnitPrice int64
	Icon      string
	Color     string
}

// The studio's stock offering. Prices in XOF, point costs per unit.
var defaultCategories = []defaultCategory{
	{Name: "Réservation Studio", PointCost: 10, UnitPrice: 50000, Icon: "studio", Color: "purple"},
	{Name: "Shooting Photo", PointCost: 8, UnitPrice: 35000, Icon: "camera", Color: "blue"},
	{Name: "Clip Vidéo", PointCost: 25, UnitPrice: 150000, Icon: "video", Color: "red"},
	{Name: "Mixage", PointCost: 6, UnitPrice: 25000, Icon: "sliders", Color: "green"},
	{Name: "Mastering", PointCost: 6, UnitPrice: 30000, Icon: "disc", Color: "orange"},
}

// EnsureDefaultCategories seeds the category catalog on first startup.
// Existing categories are left as configured.
func EnsureDefaultCategories(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, category := range defaultCategories {
			var existing catalogdomain.ActivityCategory
			err := tx.WithContext(ctx).
				Where("name = ?", category.Name).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			record := catalogdomain.ActivityCategory{
				ID:        node.Generate(),
				Name:      category.Name,
				PointCost: category.PointCost,
				UnitPrice: category.UnitPrice,
				Icon:      category.Icon,
				Color:     category.Color,
			}
			if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
