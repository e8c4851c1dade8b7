package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/bot"
	"github.com/RaghavSood/bridgeswap/registry"
	"github.com/RaghavSood/bridgeswap/server"
	"github.com/RaghavSood/bridgeswap/wallet"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, if configured, the Telegram bot",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.cfg.Port, server.Deps{
		Registry:   registry.Default,
		Aggregator: a.manager,
		Executor:   a.executor,
		Store:      a.store,
		Balances:   a.balances,
		Session:    a.sessionConfig(),
	}, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if a.cfg.TelegramToken != "" {
		wallets, err := a.wallets()
		if err != nil {
			return err
		}
		b, err := bot.New(a.cfg.TelegramToken, bot.Deps{
			Registry:    registry.Default,
			Aggregator:  a.manager,
			Executor:    a.executor,
			Store:       a.store,
			Balances:    a.balances,
			Wallets:     wallets,
			Session:     a.sessionConfig(),
			IdleTimeout: a.cfg.BotIdleTimeout,
		}, a.logger)
		if err != nil {
			return err
		}
		defer b.Stop()
		go func() {
			if err := b.Run(ctx); err != nil {
				a.logger.Error("bot stopped", zap.Error(err))
			}
		}()
		a.logger.Info("Telegram bot started")
	}

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// wallets builds the bot's wallet set. The mnemonic wallet is presented as
// MetaMask, the default EVM provider.
func (a *app) wallets() (*wallet.Set, error) {
	set := wallet.NewSet()
	if a.cfg.Mnemonic == "" {
		return set, nil
	}

	provider, err := wallet.FindProvider("metamask")
	if err != nil {
		return nil, err
	}
	connector, err := wallet.NewMnemonicConnector(provider, a.cfg.Mnemonic, 0)
	if err != nil {
		return nil, err
	}
	set.Add(connector)
	return set, nil
}
