package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"distrigestion/config"
	"distrigestion/engine"
	"distrigestion/ingest"
	"distrigestion/models"
	"distrigestion/repository"

	"github.com/olekukonko/tablewriter"
)

// Offline CSV loader. Runs the same decode and reconcile cycle as the HTTP
// import endpoint, so committed dispatch assignments survive a bulk reload
// done from the shell.
func main() {
	var (
		file   = flag.String("file", "", "path to the CSV export to import")
		dbPath = flag.String("db", "distrigestion.db", "path to the SQLite database")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *file, err)
	}

	orders := ingest.Decode(string(raw))
	if len(orders) == 0 {
		log.Fatalf("no valid data rows in %s", *file)
	}

	db, err := config.OpenDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	importer := engine.Importer{Repo: repository.NewGormRepository(db)}
	result, err := importer.Import(context.Background(), orders, time.Now())
	if err != nil {
		log.Fatalf("import failed, database left as it was: %v", err)
	}

	printSummary(orders, result)
}

func printSummary(orders []models.Order, result engine.ImportResult) {
	byStatus := make(map[models.OrderStatus]int)
	for _, o := range orders {
		byStatus[o.Status]++
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Status", "Orders")
	for _, status := range models.AllStatuses {
		if n := byStatus[status]; n > 0 {
			table.Append([]string{string(status), fmt.Sprintf("%d", n)})
		}
	}
	table.Render()

	fmt.Printf("imported %d orders (%d new, %d with dispatch fields preserved)\n",
		result.Total, result.New, result.Protected)
}
