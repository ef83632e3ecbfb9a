package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/handfollow/measure"
)

type measureFlags struct {
	file        string
	matrix      string
	watch       bool
	progress    bool
	jsonOut     bool
	concurrency int
}

func newMeasureCmd() *cobra.Command {
	var f measureFlags
	cmd := &cobra.Command{
		Use:   "measure [path-data]...",
		Short: "Measure the length of paths",
		Long: `Measure the arc length of each path. Paths come from the arguments or
from --file: a .json file holds a list of {"pathData", "matrix"} items,
any other file one path per line (blank lines and lines starting with #
are skipped).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMeasure(cmd, args, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "read paths from a file")
	fl.StringVar(&f.matrix, "matrix", "", `transform "a,b,c,d,e,f" applied to paths without their own`)
	fl.BoolVarP(&f.watch, "watch", "w", false, "measure again whenever --file changes")
	fl.BoolVar(&f.progress, "progress", false, "report progress on stderr")
	fl.BoolVar(&f.jsonOut, "json", false, "print the result as JSON")
	fl.IntVar(&f.concurrency, "concurrency", 1, "batches measured in parallel")
	return cmd
}

func runMeasure(cmd *cobra.Command, args []string, f measureFlags) error {
	m, err := parseMatrix(f.matrix)
	if err != nil {
		return err
	}
	if f.watch && f.file == "" {
		return fmt.Errorf("--watch needs --file")
	}

	client := measure.NewClient(measure.WithConcurrency(f.concurrency))
	defer client.Close()

	once := func(ctx context.Context) error {
		items, err := loadItems(f.file, args, m)
		if err != nil {
			return err
		}
		var onProgress func(measure.Progress)
		if f.progress {
			onProgress = func(p measure.Progress) {
				fmt.Fprintf(cmd.ErrOrStderr(), "measured %d/%d\n", p.Done, p.Count)
			}
		}
		res, err := client.MeasureBatch(ctx, items, onProgress)
		if err != nil {
			return err
		}
		if f.jsonOut {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		return printBatch(cmd.OutOrStdout(), res)
	}

	if !f.watch {
		return once(cmd.Context())
	}
	ctx := cmd.Context()
	if err := once(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	return watchFile(ctx, f.file, 200*time.Millisecond, func() {
		if err := once(ctx); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	})
}

// loadItems builds the batch from a file or, without one, the arguments.
func loadItems(file string, args []string, m []float64) ([]measure.Item, error) {
	var items []measure.Item
	switch {
	case file == "":
		for _, a := range args {
			items = append(items, measure.Item{PathData: a})
		}
	case strings.EqualFold(filepath.Ext(file), ".json"):
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	default:
		fp, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		sc := bufio.NewScanner(fp)
		sc.Buffer(make([]byte, 64*1024), 16<<20)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			items = append(items, measure.Item{PathData: line})
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
	}
	for i := range items {
		if items[i].Matrix == nil {
			items[i].Matrix = m
		}
	}
	return items, nil
}

// printBatch writes one line per item and a total, grouping digits the
// English way.
func printBatch(w io.Writer, res *measure.BatchResult) error {
	p := message.NewPrinter(language.English)
	failed := make(map[int]string, len(res.Errors))
	for _, e := range res.Errors {
		failed[e.Index] = e.Message
	}
	for i, l := range res.Lens {
		if msg, ok := failed[i]; ok {
			p.Fprintf(w, "#%d\terror: %s\n", i, msg)
			continue
		}
		p.Fprintf(w, "#%d\t%.2f\n", i, l)
	}
	p.Fprintf(w, "total %.2f px over %d paths\n", res.Total, len(res.Lens))
	if n := len(res.Errors); n > 0 {
		return fmt.Errorf("%d of %d paths failed", n, len(res.Lens))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
