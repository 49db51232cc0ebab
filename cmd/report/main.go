package main

import (
	"context"
	"errors"
	stdLog "log"
	"os"

	"github.com/Astemirdum/library-catalog/catalog/app"
	"github.com/Astemirdum/library-catalog/catalog/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	// keep stdout for the report itself
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.ErrorLevel),
	)

	if err := app.Report(context.Background(), cfg, os.Stdout); err != nil {
		stdLog.Fatal("app.Report ", err)
	}
}
