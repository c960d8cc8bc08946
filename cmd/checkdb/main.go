package main

import (
	"context"
	"fmt"

	"licensestore/internal/app/dsn"
	"licensestore/internal/app/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Печатает каталог пакетов - быстрая проверка подключения к БД
func main() {
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}

	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	packages, err := repo.ListPackages(context.Background())
	if err != nil {
		logrus.Fatal("Failed to get packages:", err)
	}

	fmt.Println("Packages in database:")
	for _, p := range packages {
		artifact := "NULL"
		if p.ArtifactObject != nil {
			artifact = *p.ArtifactObject
		}
		fmt.Printf("ID: %d, Name: %s, Base: %t, Price: %d, Deprecated: %t, Artifact: %s\n",
			p.ID, p.Name, p.IsBase, p.Price, p.IsDeprecated, artifact)
	}
}
