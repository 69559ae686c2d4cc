package main

import (
	"fmt"
	"os"

	"fjacquet/paycheck-planner/cmd/batch"
	"fjacquet/paycheck-planner/cmd/breakdown"
	"fjacquet/paycheck-planner/cmd/dictate"
	"fjacquet/paycheck-planner/cmd/history"
	"fjacquet/paycheck-planner/cmd/normalize"
	"fjacquet/paycheck-planner/cmd/parse"
	"fjacquet/paycheck-planner/cmd/root"
	"fjacquet/paycheck-planner/cmd/stats"
	"fjacquet/paycheck-planner/cmd/suggest"
	"fjacquet/paycheck-planner/internal/config"
	"fjacquet/paycheck-planner/internal/logging"
)

func init() {
	// Messages logged before the configuration is read follow PLANNER_LOG_LEVEL.
	if level := os.Getenv(config.EnvPrefix + "_LOG_LEVEL"); level != "" {
		logging.SetAllLogLevels(level)
	}

	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(normalize.Cmd)
	root.Cmd.AddCommand(dictate.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
	root.Cmd.AddCommand(breakdown.Cmd)
	root.Cmd.AddCommand(stats.Cmd)
	root.Cmd.AddCommand(history.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
