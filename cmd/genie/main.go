package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/genie-sim/genie/internal/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var term = termenv.NewOutput(os.Stdout)

func printBanner() {
	frame := func(s string) termenv.Style { return term.String(s).Foreground(term.Color("6")).Bold() }
	fmt.Println()
	fmt.Println(frame("  ┌───────────────────────────────────────────┐"))
	fmt.Printf("%s%s%s\n", frame("  │"), fmt.Sprintf("%-43s", "              genie  v"+version), frame("│"))
	fmt.Printf("%s%s%s\n", frame("  │"), fmt.Sprintf("%-43s", "     fixed-step simulation director"), frame("│"))
	fmt.Println(frame("  └───────────────────────────────────────────┘"))
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - runewidth.StringWidth(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Println(term.String(fmt.Sprintf("  ── %s %s", title, strings.Repeat("─", lineLen))).Foreground(term.Color("3")))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - runewidth.StringWidth(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s %s %s\n", label,
		term.String(strings.Repeat("·", dotsLen)).Foreground(term.Color("8")),
		term.String(numStr).Foreground(term.Color("2")))
}

func printOK(msg string) {
	fmt.Printf("  %s %s\n", term.String("✓").Foreground(term.Color("2")), msg)
}

func printReady(msg string) {
	fmt.Printf("  %s %s\n", term.String("▶").Foreground(term.Color("2")), msg)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
