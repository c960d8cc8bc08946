package main

import (
	"context"
	"errors"
	"flag"

	"licensestore/internal/app/dsn"
	"licensestore/internal/app/repository"
	"licensestore/internal/app/role"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	adminLogin := flag.String("admin-login", "", "create an admin user with this login")
	adminPassword := flag.String("admin-password", "", "password for -admin-login")
	flag.Parse()

	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}

	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	logrus.Info("Connected to database successfully")

	if err := repository.Migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}
	logrus.Info("Database migration completed successfully")

	if *adminLogin == "" {
		return
	}
	if len(*adminPassword) < 6 {
		logrus.Fatal("-admin-password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("Failed to hash password: %v", err)
	}

	repo := repository.NewWithDB(db)
	user, err := repo.CreateUser(context.Background(), *adminLogin, string(hash), role.Admin)
	if errors.Is(err, repository.ErrDuplicate) {
		logrus.Warnf("User %s already exists, skipping", *adminLogin)
		return
	}
	if err != nil {
		logrus.Fatalf("Failed to create admin: %v", err)
	}
	logrus.Infof("Admin %s created with id %d", user.Login, user.ID)
}
