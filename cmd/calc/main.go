package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/GGmuzem/polish-calc/internal/calculate"
	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	showAST  bool
	maxDepth int
)

var rootCmd = &cobra.Command{
	Use:   "calc <expression>",
	Short: "Вычисляет выражение в префиксной записи",
	Long: `Calc вычисляет выражение вида (+ 1 (* 2 3)) локально.

Поддерживаются операторы + - * / и десятичные числа.
Аргументы склеиваются через пробел, поэтому кавычки необязательны.`,
	Example: `  calc "(+ 1 (* 2 3))"
  calc --ast "(/ 10 4)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showAST, "ast", false, "Напечатать дерево разбора")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 256, "Максимальная вложенность скобок, 0 без ограничения")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func run(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")
	calc := calculate.New(calculate.WithMaxDepth(maxDepth))
	out := cmd.OutOrStdout()

	node, err := calc.Parse(input)
	if err != nil {
		return err
	}

	if showAST {
		fmt.Fprintln(out, color.CyanString(node.String()))
		fmt.Fprintln(out, repr.String(node, repr.Indent("  "), repr.OmitEmpty(true)))
	}

	value, err := calculate.Eval(node)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, color.GreenString(calculate.FormatResult(value)))
	return nil
}
