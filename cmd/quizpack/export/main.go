package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-quizpack/cmd/quizpack/internal/bootstrap"
	transfercmd "github.com/goliatone/go-quizpack/internal/commands/transfer"
)

var (
	moduleBuilder           = bootstrap.BuildModule
	stdout        io.Writer = os.Stdout
)

func main() {
	if err := runExport(os.Args[1:]); err != nil {
		log.Fatalf("quizpack export: %v", err)
	}
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("quizpack-export", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	storage := fs.String("storage", "", "Storage provider: memory, sqlite, postgres or redis")
	dsn := fs.String("dsn", "", "SQL data source name")
	redisURL := fs.String("redis-url", "", "Redis connection URL")
	logLevel := fs.String("log-level", "", "Log level override")
	dir := fs.String("dir", ".", "Directory that receives seen-jeem-export.json")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		Storage:    *storage,
		DSN:        *dsn,
		RedisURL:   *redisURL,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handler := transfercmd.NewExportHandler(module.Service, module.Logger)
	cmd := transfercmd.ExportCommand{
		Directory: *dir,
		ResultCallback: func(path string) {
			fmt.Fprintf(stdout, "exported %s\n", path)
		},
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute export command: %w", err)
	}
	return nil
}
