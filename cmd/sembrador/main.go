package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"sembrador-pos/internal/pos"
	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/xpkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	mylog, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	if err := pos.Execute(context.Background(), mylog, os.Args[1:]); err != nil {
		if errors.Is(err, core.ErrHelp) {
			return
		}
		os.Exit(1)
	}
}
