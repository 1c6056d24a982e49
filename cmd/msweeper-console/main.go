// Command msweeper-console plays one session on a terminal using the same
// command language as the websocket endpoint.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/msweeper/internal/database"
	"github.com/vancomm/msweeper/internal/game"
	"github.com/vancomm/msweeper/internal/repository"
)

const help = `commands:
  o ROW COL   open a cell
  f ROW COL   toggle a flag
  g           show the board
  n           new board, same size
  r           give up
  h           show best results
  q           quit
`

type options struct {
	rows, cols, mines int
	player            string
	dbPath            string
	seed              uint64
}

func main() {
	var opts options
	flag.IntVar(&opts.rows, "rows", 5, "board rows")
	flag.IntVar(&opts.cols, "cols", 10, "board columns")
	flag.IntVar(&opts.mines, "mines", 15, "number of mines")
	flag.StringVar(&opts.player, "player", os.Getenv("USER"), "name recorded with results")
	flag.StringVar(&opts.dbPath, "db", "", "sqlite file to record results in")
	flag.Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := run(context.Background(), opts, log, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options, log *logrus.Logger, in io.Reader, out io.Writer) error {
	var store repository.ResultStore
	if opts.dbPath != "" {
		if _, err := database.MigrateSQLite(opts.dbPath); err != nil {
			return err
		}
		db, err := database.OpenSQLite(opts.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store = repository.NewSQLite(db)
	}

	var managerOpts []game.Option
	if opts.seed != 0 {
		managerOpts = append(managerOpts, game.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed))))
	}
	manager := game.NewManager(log, store, game.Params{
		Rows: opts.rows, Cols: opts.cols, Mines: opts.mines,
	}, managerOpts...)

	view, err := manager.NewGame(opts.player, nil, game.Params{})
	if err != nil {
		return err
	}
	fmt.Fprint(out, help)
	render(out, view)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q":
			return nil
		case "h":
			if err := printBest(ctx, out, store); err != nil {
				return err
			}
			continue
		}

		next, err := manager.Execute(ctx, view.SessionId, nil, line)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		view = next
		render(out, view)
	}
}

func render(out io.Writer, v *game.View) {
	fmt.Fprint(out, v.Grid.String())
	switch v.Status {
	case game.InProgress:
		fmt.Fprintf(out, "%d mines, %ds\n", v.MineCount, v.ElapsedMs/1000)
	case game.Won:
		fmt.Fprintf(out, "solved in %.1fs\n", float64(v.ElapsedMs)/1000)
	case game.Lost:
		fmt.Fprintln(out, "boom")
	case game.GivenUp:
		fmt.Fprintln(out, "given up")
	}
}

func printBest(ctx context.Context, out io.Writer, store repository.ResultStore) error {
	if store == nil {
		fmt.Fprintln(out, "results are not recorded without -db")
		return nil
	}
	results, err := store.FindBestResults(ctx, repository.ResultFilter{}, 10)
	if err != nil {
		return err
	}
	for i, r := range results {
		fmt.Fprintf(out, "%2d. %-16s %-6t %8.1fs %dx%d/%d\n",
			i+1, r.PlayerName, r.Solved, r.Duration.Seconds(), r.Rows, r.Cols, r.MineCount)
	}
	return nil
}
