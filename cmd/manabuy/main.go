package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/manabuy/internal/app"
	"github.com/vladislavdragonenkov/manabuy/internal/domain"
	"github.com/vladislavdragonenkov/manabuy/internal/resolver"
	"github.com/vladislavdragonenkov/manabuy/internal/service/checkout"
	"github.com/vladislavdragonenkov/manabuy/internal/version"
)

// Коды выхода: 0 — покупка подтверждена либо осознанная остановка на
// котировке, 1 — ошибка, 2 — оператор отказался на одном из чекпоинтов.
const (
	exitOK       = 0
	exitError    = 1
	exitDeclined = 2
)

// setupLogger настраивает формат и уровень логирования для CLI.
func setupLogger(verbose bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		in          resolver.Input
		buy         bool
		verbose     bool
		showVersion bool
	)
	flag.StringVar(&in.DecklistPath, "decklist", "", "path to a decklist file (\"4 Lightning Bolt\" per line)")
	flag.StringVar(&in.SKUList, "skus", "", "comma-separated product SKUs, one copy each")
	flag.StringVar(&in.CardName, "card-name", "", "single card name to buy")
	flag.IntVar(&in.Quantity, "quantity", 0, "number of copies for -card-name (default 1)")
	flag.BoolVar(&buy, "buy", false, "proceed to the interactive purchase after the quote")
	flag.BoolVar(&verbose, "verbose", false, "print the full cart manifest with the quote")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version.String())
		return exitOK
	}

	setupLogger(verbose)
	cfg := app.ReadConfig()

	// Токен проверяем до любой работы: сообщение про переменную
	// окружения полезнее, чем поздний 401 от API.
	if cfg.Token == "" {
		log.Error("MANAPOOL_API_TOKEN is not set; refusing to start (tokens are never accepted as flags)")
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := app.Run(ctx, cfg, in, checkout.Options{Buy: buy, Verbose: verbose})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted")
			return exitError
		}
		logRunError(err)
		return exitError
	}

	if outcome == checkout.OutcomeDeclined {
		return exitDeclined
	}
	return exitOK
}

// logRunError переводит сентинелы домена в понятные оператору сообщения.
func logRunError(err error) {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		log.WithError(err).Error("authentication failed; check MANAPOOL_EMAIL and MANAPOOL_API_TOKEN")
	case errors.Is(err, domain.ErrInvalidInput):
		log.WithError(err).Error("invalid request")
	case errors.Is(err, domain.ErrPaymentDeclined):
		log.WithError(err).Error("payment declined; the reservation was released")
	case errors.Is(err, domain.ErrReservationExpired):
		log.WithError(err).Error("reservation expired before confirmation; no charge was made")
	default:
		log.WithError(err).Error("purchase attempt failed")
	}
}
