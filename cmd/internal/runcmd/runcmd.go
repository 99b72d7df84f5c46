// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package runcmd runs a cobra command and maps its outcome to an exit code.
package runcmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Run executes cmd until it completes or the process is interrupted, and
// returns the exit code the process should use.
func Run(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, cmd, color.Error)
}

func run(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	// SilenceErrors lets the error be printed exactly once, here.
	cmd.SilenceErrors = true
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, color.RedString("Error: %v", err))
		return 1
	}
	return 0
}
