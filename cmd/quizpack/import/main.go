package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-quizpack/cmd/quizpack/internal/bootstrap"
	transfercmd "github.com/goliatone/go-quizpack/internal/commands/transfer"
	"github.com/goliatone/go-quizpack/internal/transfer"
)

var (
	moduleBuilder           = bootstrap.BuildModule
	stdout        io.Writer = os.Stdout
)

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("quizpack import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("quizpack-import", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	storage := fs.String("storage", "", "Storage provider: memory, sqlite, postgres or redis")
	dsn := fs.String("dsn", "", "SQL data source name")
	redisURL := fs.String("redis-url", "", "Redis connection URL")
	logLevel := fs.String("log-level", "", "Log level override")
	file := fs.String("file", "", "Path to the JSON document to import")
	mode := fs.String("mode", "", "Import mode: merge or replace (defaults to config)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	path := strings.TrimSpace(*file)
	if path == "" && fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if path == "" {
		return fmt.Errorf("file is required")
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

	importMode := strings.TrimSpace(*mode)
	if importMode == "" {
		importMode = module.DefaultMode
	}

	handler := transfercmd.NewImportHandler(module.Service, module.Logger)
	cmd := transfercmd.ImportCommand{
		Path: path,
		Mode: importMode,
		ResultCallback: func(result *transfer.ImportResult) {
			fmt.Fprintf(stdout, "imported %s (%s, %s): packs +%d/%d skipped, questions +%d/%d skipped\n",
				path, result.Dialect, result.Mode,
				result.PacksAdded, result.PacksSkipped,
				result.QuestionsAdded, result.QuestionsSkipped)
		},
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	return nil
}
