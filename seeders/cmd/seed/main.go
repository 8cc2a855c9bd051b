package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"profico-inventory/pkg/config"
	"profico-inventory/pkg/database/postgresql"
	"profico-inventory/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)")
	log.Println("======================================================")

	runUsers := flag.Bool("users", false, "Создать администратора и демо-пользователей")
	runInventory := flag.Bool("inventory", false, "Наполнить демо-оборудование и метки")
	runBilling := flag.Bool("billing", false, "Наполнить демо-подписки")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runUsers && !*runInventory && !*runBilling && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -users")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}
	cfg := config.New()

	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if *runAll || *runUsers {
		seeders.SeedUsers(db)
	}
	if *runAll || *runInventory {
		seeders.SeedInventory(db)
	}
	if *runAll || *runBilling {
		seeders.SeedBilling(db)
	}

	log.Println("======================================================")
	log.Println("✅ Все выбранные сидеры отработали.")
	log.Println("======================================================")
}
