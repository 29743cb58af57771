package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GGmuzem/polish-calc/internal/agent"
	"github.com/GGmuzem/polish-calc/internal/config"
	"github.com/GGmuzem/polish-calc/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	serverAddr string
	workers    int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "agent [expression...]",
	Short: "Вычисляет пакет выражений на сервере калькулятора",
	Long: `Агент отправляет выражения в префиксной записи на gRPC сервер.

Выражения берутся из аргументов, а без аргументов читаются из stdin построчно.
Результаты печатаются в исходном порядке.`,
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func init() {
	rootCmd.Flags().StringVar(&serverAddr, "server", "", "Адрес gRPC сервера (по умолчанию GRPC_SERVER)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Число воркеров (по умолчанию COMPUTING_POWER)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Подробное логирование")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.LogLevel = "debug"
	}
	logging.Init(cfg.Logging)

	if serverAddr != "" {
		cfg.Agent.Server = serverAddr
	}
	if workers > 0 {
		cfg.Agent.Workers = workers
	}

	expressions := args
	if len(expressions) == 0 {
		expressions, err = readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	a, err := agent.NewAgent(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := 0
	out := cmd.OutOrStdout()
	for _, result := range a.Run(ctx, expressions) {
		if result.Err != nil {
			failed++
			fmt.Fprintf(out, "%s = %s\n", result.Expression, color.RedString("error: %v", result.Err))
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", result.Expression, color.GreenString(result.Value))
	}

	if failed > 0 {
		return fmt.Errorf("%d из %d выражений не вычислены", failed, len(expressions))
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
