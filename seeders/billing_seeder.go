package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedSubscriptions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение демо-подписок...")

	subs := []struct {
		name, vendor  string
		seats         int
		pricePerMonth float64
	}{
		{"Google Workspace", "Google", 50, 450.00},
		{"Figma Organization", "Figma", 12, 540.00},
		{"GitHub Team", "GitHub", 30, 120.00},
	}
	for _, s := range subs {
		var exists bool
		err := db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM subscriptions WHERE name = $1 AND vendor = $2)",
			s.name, s.vendor).Scan(&exists)
		if err != nil {
			return fmt.Errorf("ошибка проверки подписки %s: %w", s.name, err)
		}
		if exists {
			log.Printf("    - Подписка %s уже существует. Пропускаем.", s.name)
			continue
		}

		_, err = db.Exec(ctx, `
			INSERT INTO subscriptions (name, vendor, seats, price_per_month, status)
			VALUES ($1, $2, $3, $4, 'active')`,
			s.name, s.vendor, s.seats, s.pricePerMonth)
		if err != nil {
			return fmt.Errorf("не удалось вставить подписку %s: %w", s.name, err)
		}
		log.Printf("    - Создана подписка %s", s.name)
	}
	return nil
}
