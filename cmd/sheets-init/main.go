// Command sheets-init provisions the tab schema in a spreadsheet without
// starting the server. Useful when setting up a new household spreadsheet
// from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"combine/internal/sheets"
	gsheet "combine/internal/sheets/google"
)

func main() {
	_ = godotenv.Load()

	spreadsheetID := flag.String("spreadsheet", os.Getenv("SPREADSHEET_ID"), "target spreadsheet id")
	token := flag.String("token", os.Getenv("GOOGLE_ACCESS_TOKEN"), "OAuth2 access token with spreadsheets scope")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if *spreadsheetID == "" || *token == "" {
		fmt.Fprintln(os.Stderr, "usage: sheets-init -spreadsheet <id> -token <access token>")
		fmt.Fprintln(os.Stderr, "both values can also come from SPREADSHEET_ID and GOOGLE_ACCESS_TOKEN")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	created, err := gsheet.New().EnsureSchema(ctx, sheets.Credential(*token), *spreadsheetID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ensure schema: %v\n", err)
		os.Exit(1)
	}

	if len(created) == 0 {
		fmt.Println("All tabs already present, nothing to do")
		return
	}
	fmt.Printf("Created %d tabs:\n", len(created))
	for _, tab := range created {
		fmt.Println("  " + tab)
	}
}
