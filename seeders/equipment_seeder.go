package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedTags(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение меток...")

	tags := []string{"office", "remote", "dev", "design", "loaner"}
	for _, name := range tags {
		_, err := db.Exec(ctx,
			"INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
		if err != nil {
			return fmt.Errorf("не удалось вставить метку %s: %w", name, err)
		}
	}
	return nil
}

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение демо-оборудования...")

	items := []struct {
		serial, name, brand, model, category, status, condition, location string
	}{
		{"MBP-2024-001", "MacBook Pro 14", "Apple", "M3 Pro", "laptop", "available", "excellent", "Офис, склад"},
		{"MBP-2024-002", "MacBook Pro 16", "Apple", "M3 Max", "laptop", "available", "good", "Офис, склад"},
		{"DELL-U27-001", "Монитор Dell 27", "Dell", "U2723QE", "monitor", "available", "good", "Офис, склад"},
		{"IPH-15-001", "iPhone 15", "Apple", "A3090", "phone", "pending", "excellent", "Офис, склад"},
		{"LEN-T14-001", "ThinkPad T14", "Lenovo", "Gen 4", "laptop", "maintenance", "poor", "Сервис"},
	}
	for _, item := range items {
		var exists bool
		err := db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM equipments WHERE serial_number = $1)", item.serial).Scan(&exists)
		if err != nil {
			return fmt.Errorf("ошибка проверки оборудования %s: %w", item.serial, err)
		}
		if exists {
			log.Printf("    - Оборудование %s уже существует. Пропускаем.", item.serial)
			continue
		}

		_, err = db.Exec(ctx, `
			INSERT INTO equipments (serial_number, name, brand, model, category, status, condition, location)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.serial, item.name, item.brand, item.model, item.category, item.status, item.condition, item.location)
		if err != nil {
			return fmt.Errorf("не удалось вставить оборудование %s: %w", item.serial, err)
		}
		log.Printf("    - Создано оборудование %s", item.serial)
	}
	return nil
}
