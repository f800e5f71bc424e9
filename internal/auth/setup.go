package auth

import (
	"log"

	"github.com/TripleGChat/TG-Backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&User{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
