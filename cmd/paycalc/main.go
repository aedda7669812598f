package main

import (
	"fmt"
	"os"

	"shift-payroll-bot/internal/app"
	"shift-payroll-bot/internal/config"
	"shift-payroll-bot/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const appVersion = "0.3.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "paycalc",
		Short:        "Shift payroll, KPI and level calculator",
		Version:      appVersion,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	newLog := func() *logrus.Logger {
		if !verbose {
			return logger.Discard()
		}
		return logger.NewWithOutput(os.Stderr, "debug", "development")
	}

	openApp := func() (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		return app.New(cfg, newLog())
	}

	root.AddCommand(
		newSalaryCommand(openApp),
		newImportCommand(openApp),
		newHolidaysCommand(openApp),
		newKPICommand(),
		newLevelCommand(),
		newHoursCommand(),
	)

	return root
}

type appOpener func() (*app.App, error)

func withApp(open appOpener, fn func(a *app.App) error) error {
	a, err := open()
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close database: %v\n", err)
		}
	}()
	return fn(a)
}
