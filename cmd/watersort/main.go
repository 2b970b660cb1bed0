// Command watersort loads a water-sort puzzle board and prints a solved
// plan: solve-json reads a board JSON document, solve-excel reads an xlsx
// workbook laid out with a black border around the tube grid.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/colorsort/watersort"
	"github.com/colorsort/watersort/internal/boardio"
)

var (
	flagMode      string
	flagUndoCount int
	flagVerbose   bool
)

func main() {
	root := &cobra.Command{
		Use:   "watersort",
		Short: "Solve water-sort puzzle boards",
	}
	root.PersistentFlags().StringVar(&flagMode, "mode", "", "override the board's pour mode (NORMAL|NO_COMBO|QUEUE)")
	root.PersistentFlags().IntVar(&flagUndoCount, "undo-count", -1, "override the board's remaining undo budget")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	root.AddCommand(solveJSONCmd(), solveExcelCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureLogging() {
	if flagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func solveJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve-json <puzzle.json>",
		Short: "Load a board JSON document, solve it, and print the plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging()
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			game, err := boardio.DecodeJSON(raw)
			if err != nil {
				return err
			}
			return solveAndPrint(game)
		},
	}
}

func solveExcelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve-excel <workbook.xlsx>",
		Short: "Read a spreadsheet board, solve it, and print the plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging()
			mode := watersort.NORMAL
			if flagMode != "" {
				mode = watersort.ModeFromString(flagMode)
			}
			undo := 5
			if flagUndoCount >= 0 {
				undo = flagUndoCount
			}
			game, err := boardio.ReadSpreadsheet(args[0], mode, undo)
			if err != nil {
				return err
			}
			return solveAndPrint(game)
		},
	}
}

func solveAndPrint(game *watersort.Game) error {
	if flagMode != "" {
		var err error
		game, err = watersort.NewGame(game.Tubes(), game.Capacity(), watersort.ModeFromString(flagMode), game.UndoCount())
		if err != nil {
			return err
		}
	}
	if flagUndoCount >= 0 {
		var err error
		game, err = watersort.NewGame(game.Tubes(), game.Capacity(), game.Mode(), flagUndoCount)
		if err != nil {
			return err
		}
	}

	start := game.AutoComplete()

	solved, err := watersort.Solve(start)
	if err != nil {
		return err
	}

	plan, err := watersort.RenderPlan(start, solved)
	if err != nil {
		return err
	}
	fmt.Print(plan)
	return nil
}
