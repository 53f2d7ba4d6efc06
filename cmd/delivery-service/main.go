package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"delivery-service/internal/config"
	"delivery-service/internal/console"
	"delivery-service/internal/db"
	"delivery-service/internal/order"
)

const usage = `Usage: delivery-service <command> [flags]

Commands:
  add          add a new order (-customer, -product, -quantity, -price, -date)
  list         print all orders, most recent delivery first
  delete       delete an order by id (-id)
  revenue      print revenue by day (-days, default from STATS_DAYS)
  stats        print general statistics
  export-logs  copy the activity log to a timestamped file
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	log.Info().Msg("Delivery service starting...")

	dbConn, err := db.New(cfg.SQLite)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer dbConn.Close()

	repo := order.NewRepository(dbConn)
	svc := order.NewService(repo)

	if err := run(context.Background(), svc, cfg, os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("Command failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Консоль плюс файл активности — тот же файл потом отдаёт export-logs.
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}}
	logFile, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", cfg.File, err)
	} else {
		writers = append(writers, logFile)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Str("service", "delivery-service").
		Logger()
}

func run(ctx context.Context, svc order.Service, cfg *config.Config, command string, args []string) error {
	switch command {
	case "add":
		return runAdd(ctx, svc, args)
	case "list":
		orders, err := svc.Orders(ctx)
		if err != nil {
			return err
		}
		console.RenderOrders(os.Stdout, orders)
		return nil
	case "delete":
		return runDelete(ctx, svc, args)
	case "revenue":
		return runRevenue(ctx, svc, cfg.App.StatsDays, args)
	case "stats":
		console.RenderGeneralStats(os.Stdout, svc.GeneralStatistics(ctx))
		return nil
	case "export-logs":
		path, err := console.ExportLogs(cfg.Log.File)
		if err != nil {
			return err
		}
		fmt.Println("logs exported to", path)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runAdd(ctx context.Context, svc order.Service, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	customer := fs.String("customer", "", "customer name")
	product := fs.String("product", "", "product name")
	quantity := fs.String("quantity", "", "quantity")
	price := fs.String("price", "", "unit price")
	date := fs.String("date", time.Now().Format(order.DateLayout), "delivery date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	o, err := console.ParseOrderForm(*customer, *product, *quantity, *price, *date)
	if err != nil {
		return err
	}

	id, err := svc.AddOrder(ctx, o)
	if err != nil {
		return err
	}

	fmt.Printf("order #%d added, line total %.2f\n", id, o.LineTotal())
	return nil
}

func runDelete(ctx context.Context, svc order.Service, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "order id")
	_ = fs.Parse(args)

	if *id <= 0 {
		return fmt.Errorf("-id must be a positive order id")
	}

	if err := svc.DeleteOrder(ctx, *id); err != nil {
		return err
	}

	fmt.Printf("order #%d deleted\n", *id)
	return nil
}

func runRevenue(ctx context.Context, svc order.Service, defaultDays int, args []string) error {
	fs := flag.NewFlagSet("revenue", flag.ExitOnError)
	days := fs.Int("days", defaultDays, "window size in days")
	_ = fs.Parse(args)

	console.RenderRevenue(os.Stdout, svc.RevenueStats(ctx, *days))
	return nil
}
