package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"Recipe-Share-Backend/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CookingSession{}); err != nil {
		log.Fatalf("Error migrating cooking session database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
