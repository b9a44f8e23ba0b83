package config

import (
	"log"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

func InitLogger() {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	Log = l.Sugar()
}
