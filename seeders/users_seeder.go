package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func insertUserIfMissing(ctx context.Context, db *pgxpool.Pool, fio, email, password, role string) error {
	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	if err == nil {
		log.Printf("    - Пользователь %s уже существует. Пропускаем.", email)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль: %w", err)
	}

	_, err = db.Exec(ctx,
		"INSERT INTO users (fio, email, password, role) VALUES ($1, $2, $3, $4)",
		fio, email, string(hash), role)
	if err != nil {
		return fmt.Errorf("не удалось вставить пользователя %s: %w", email, err)
	}
	log.Printf("    - Создан пользователь %s (%s)", email, role)
	return nil
}

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание администратора...")

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("    - ADMIN_PASSWORD не задан, используется пароль по умолчанию")
	}
	return insertUserIfMissing(ctx, db, "Администратор системы", "admin@profico.local", password, "admin")
}

func seedDemoUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание демо-пользователей...")

	demo := []struct {
		fio, email, role string
	}{
		{"Мария Тимлидова", "teamlead@profico.local", "team_lead"},
		{"Иван Сотрудников", "ivan@profico.local", "user"},
		{"Пётр Разработчиков", "petr@profico.local", "user"},
	}
	for _, u := range demo {
		if err := insertUserIfMissing(ctx, db, u.fio, u.email, "password123", u.role); err != nil {
			return err
		}
	}
	return nil
}
