package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUsers создаёт администратора и демо-сотрудников.
func SeedUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения пользователей...")

	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	if err := seedDemoUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания демо-пользователей: %v", err)
	}
	log.Println("✅ Наполнение пользователей завершено!")
}

// SeedInventory наполняет демо-оборудование и метки.
func SeedInventory(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения оборудования...")

	if err := seedTags(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения меток: %v", err)
	}
	if err := seedEquipment(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения оборудования: %v", err)
	}
	log.Println("✅ Наполнение оборудования завершено!")
}

// SeedBilling наполняет демо-подписки.
func SeedBilling(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения биллинга...")

	if err := seedSubscriptions(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения подписок: %v", err)
	}
	log.Println("✅ Наполнение биллинга завершено!")
}
