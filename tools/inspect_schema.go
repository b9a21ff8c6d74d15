// Prints the SQLite DDL that GORM generates for the sitebuilder models.
// Compare against data/initdb when changing the models.
//
//	go run tools/inspect_schema.go

package main

import (
	"fmt"
	"log"

	"github.com/localnerve/sitebuilder/internal/database"
)

func main() {
	db, err := database.OpenInMemory()
	if err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&schema)
		fmt.Println(schema)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type='index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, idx := range indexes {
			fmt.Println(idx)
		}
	}
}
