package main

import (
	"context"
	"log"
	"time"

	"github.com/drew18-it/watchbuy/cmd/server"
	"github.com/drew18-it/watchbuy/internal/auth"
	"github.com/drew18-it/watchbuy/internal/config"
	"github.com/drew18-it/watchbuy/internal/notification"
	"github.com/drew18-it/watchbuy/internal/receipt"
	"github.com/drew18-it/watchbuy/internal/storage"
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	db, err := storage.NewPostgresDB(config.Env.PostgresConnStr)
	if err != nil {
		log.Fatal(err)
	}

	migrateCtx, cancel := context.WithTimeout(
		context.Background(),
		(30 * time.Second),
	)
	defer cancel()

	if err := storage.Migrate(migrateCtx, db); err != nil {
		log.Fatal(err)
	}

	receipts, err := receipt.NewRenderer(config.Env.ReceiptsDir)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr: config.Env.ServerAddr,
		DB:   db,
		TokenManager: auth.NewTokenService(
			config.Env.AccessTokenSecret,
			config.Env.RefreshTokenSecret,
			config.Env.AccessTokenExpiryInSecs,
			config.Env.RefreshTokenExpiryInSecs,
		),
		Mailer: notification.NewMailer(
			config.Env.SMTPHost,
			config.Env.SMTPPort,
			config.Env.SMTPUser,
			config.Env.SMTPPassword,
			config.Env.SMTPFrom,
		),
		Receipts: receipts,
	},
	)
	srv.Run()
}
