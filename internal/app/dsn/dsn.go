package dsn

import (
	"fmt"

	"github.com/spf13/viper"
)

// FromEnv собирает строку подключения к postgres из переменных окружения.
// DATABASE_DSN, если задан, используется как есть.
func FromEnv() string {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_sslmode", "disable")

	if dsn := v.GetString("database_dsn"); dsn != "" {
		return dsn
	}

	host := v.GetString("db_host")
	if host == "" {
		return ""
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host,
		v.GetString("db_port"),
		v.GetString("db_user"),
		v.GetString("db_pass"),
		v.GetString("db_name"),
		v.GetString("db_sslmode"),
	)
}
