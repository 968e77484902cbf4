package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"gecko/board"
	"gecko/host/serial"
	"gecko/host/term"
)

var (
	termOpts = struct {
		device    string
		baud      int
		newlineCR bool
	}{}

	termCmd = &cobra.Command{
		Use:   "term",
		Short: "Open a serial console to the board UART",
		Long:  "Relay the terminal to the board console. Ctrl-] ends the session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := serial.DefaultConfig(termOpts.device)
			cfg.ReadTimeout = 0
			if cmd.Flags().Changed("baud") {
				cfg.Baud = termOpts.baud
			} else if p, err := board.Lookup(boardName); err == nil {
				cfg.Baud = int(p.UART.Baud)
			}

			port, err := serial.Open(cfg)
			if err != nil {
				return err
			}
			defer port.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "Connected to %s at %d baud, Ctrl-] to quit\n", cfg.Device, cfg.Baud)
			relay := &term.Relay{
				Port:      port,
				In:        cmd.InOrStdin(),
				Out:       cmd.OutOrStdout(),
				NewlineCR: termOpts.newlineCR,
			}
			if err := relay.Run(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}
)

func init() {
	termCmd.Flags().StringVarP(&termOpts.device, "device", "d", "/dev/ttyACM0", "serial device path")
	termCmd.Flags().IntVar(&termOpts.baud, "baud", serial.DefaultBaud, "baud rate (default from board)")
	termCmd.Flags().BoolVar(&termOpts.newlineCR, "cr", false, "send CR for every LF typed")
}
