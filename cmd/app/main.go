package main

import (
	"context"
	"os"

	"github.com/heironeous/microblog/internal/handler"
	"github.com/heironeous/microblog/internal/rabbitmq"
	"github.com/heironeous/microblog/internal/repository"
	"github.com/heironeous/microblog/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := initEnv(); err != nil {
		logger.Sugar().Fatalf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}

	db, err := pgxpool.New(ctx, os.Getenv("POSTGRES_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to postgres: %s", err.Error())
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Fatalf("failed to ping postgres: %s", err.Error())
	}

	rdbOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to parse redis url: %s", err.Error())
	}
	rdb := redis.NewClient(rdbOpts)
	defer rdb.Close()

	mq, err := rabbitmq.New(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to rabbitmq: %s", err.Error())
	}
	defer mq.Close()

	repo := repository.New(db, rdb)
	services := service.New(logger, repo, mq)
	handlers := handler.New(services)

	addr := viper.GetString("server.addr")
	logger.Sugar().Infof("starting server on %s", addr)
	if err := handlers.InitRoutes().Run(addr); err != nil {
		logger.Sugar().Fatalf("failed to run server: %s", err.Error())
	}
}

func initEnv() error {
	return godotenv.Load(".env")
}

func initConfig() error {
	viper.AddConfigPath("./")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
