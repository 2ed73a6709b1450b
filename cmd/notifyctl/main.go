package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/medeiros-dev/notification-validator/cmd/notifyctl/cmd"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
)

func main() {
	err := cmd.NewRootCmd().ExecuteContext(context.Background())
	_ = logger.Sync()
	if err != nil {
		if !errors.Is(err, cmd.ErrInvalidPayloads) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
