package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Spok95/empresa-pos/internal/config"
	"github.com/Spok95/empresa-pos/internal/infra/logger"
)

const usage = `usage: pos [-config path] <command> [flags]

commands:
  serve                                   загрузить компании и держать /health, /metrics (по умолчанию)
  prices-import [-kind k] file.xlsx       загрузить цены из Excel (k: products | materials)
  export [-kind k] [-name s] [-cost-from x] [-cost-to y] file.xlsx
                                          выгрузить отфильтрованный список в Excel
`

func main() {
	cfgPath := flag.String("config", "config/example.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Error("init failed", "err", err)
		os.Exit(1)
	}
	defer a.close()

	args := flag.Args()
	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		err = a.serve(ctx)
	case "prices-import":
		err = a.importPrices(ctx, args)
	case "export":
		err = a.export(ctx, args)
	default:
		flag.Usage()
		a.close()
		os.Exit(2)
	}
	if err != nil {
		log.Error("command failed", "cmd", cmd, "err", err)
		a.close()
		os.Exit(1)
	}
}
