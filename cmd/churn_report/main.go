package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"churnlab/db"
)

func main() {
	dbPath := flag.String("db", "./churnlab.db", "results database path")
	runID := flag.String("run", "", "run id to print (default: latest)")
	list := flag.Bool("list", false, "list stored run ids")
	flag.Parse()

	if err := db.InitDB(*dbPath); err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.CloseDB()

	runs, err := db.ListRuns()
	if err != nil {
		log.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) == 0 {
		log.Fatal("no stored runs")
	}

	if *list {
		for _, run := range runs {
			fmt.Println(run)
		}
		return
	}

	target := *runID
	if target == "" {
		target = runs[0]
	}
	rows, err := db.LoadRows(target)
	if err != nil {
		log.Fatalf("failed to load run %s: %v", target, err)
	}
	if len(rows) == 0 {
		log.Fatalf("run %s not found", target)
	}

	fmt.Printf("run %s\n", target)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "model\ttime(s)\tthreshold\taccuracy\tprec0\trec0\tf1_0\tprec1\trec1\tf1_1\ttp\tfp\tparams")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t%.3f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\t%s\n",
			row.Tag, row.ElapsedSeconds, row.Threshold, row.Accuracy,
			row.Precision0, row.Recall0, row.F10,
			row.Precision1, row.Recall1, row.F11,
			row.TP, row.FP, row.Params)
	}
	w.Flush()
}
