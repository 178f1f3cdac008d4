// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/ik5/romple/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.RootCommand(afero.NewOsFs()).ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
