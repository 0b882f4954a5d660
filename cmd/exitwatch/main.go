package main

import (
	"fmt"
	"os"

	"github.com/exitwatch/exitwatch/internal/logger"
)

func main() {
	if err := buildRoot().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, logger.ErrorText("error: "+err.Error(), useColor))
		os.Exit(1)
	}
}
