package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"mandalart/internal/client"
	"mandalart/internal/config"
	"mandalart/internal/mandalart"
)

func main() {
	config.LoadConfig()

	serverURL := flag.String("server", config.AppConfig.ServerURL, "mandalart server base URL")
	sessionID := flag.String("session", os.Getenv("MANDALART_SESSION"), "session id cookie value")
	dbPath := flag.String("db", config.AppConfig.ClientDBPath, "path to the local client database")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	local, err := client.OpenLocalStore(*dbPath)
	if err != nil {
		log.Fatalf("failed to open local store: %v", err)
	}
	defer local.Close()

	api := client.NewAPIClient(*serverURL, *sessionID)
	store := client.NewGridStore(api, local, 0)
	defer store.Stop()

	if err := dispatch(store, api, args); err != nil {
		log.Fatalf("%v", err)
	}
}

func dispatch(store *client.GridStore, api *client.APIClient, args []string) error {
	ctx := context.Background()

	switch cmd := args[0]; cmd {
	case "show":
		printDocument(store.Snapshot(), store.ServerID())
		return nil

	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: set <cell-id> <value>")
		}
		if !store.UpdateCell(args[1], args[2]) {
			return fmt.Errorf("no cell with id %q", args[1])
		}
		return nil

	case "set-meta":
		if len(args) != 3 {
			return fmt.Errorf("usage: set-meta <year|title|keyword|commitment> <value>")
		}
		return store.UpdateMetadata(mandalart.MetadataField(args[1]), args[2])

	case "reset-section":
		if len(args) != 2 {
			return fmt.Errorf("usage: reset-section <0-8>")
		}
		sectionIndex, err := strconv.Atoi(args[1])
		if err != nil || sectionIndex < 0 || sectionIndex >= mandalart.SectionCount {
			return fmt.Errorf("section index must be 0-8")
		}
		store.ResetSection(sectionIndex)
		return nil

	case "reset-all":
		store.ResetAll()
		return nil

	case "load":
		return store.LoadFromServer(ctx)

	case "sync":
		store.SyncNow()
		return nil

	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: delete <document-id>")
		}
		return api.DeleteDocument(ctx, args[1])

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printDocument(doc mandalart.Document, serverID string) {
	fmt.Printf("year: %s  title: %s  keyword: %s  commitment: %s\n", doc.Year, doc.Title, doc.Keyword, doc.Commitment)
	if serverID != "" {
		fmt.Printf("server id: %s\n", serverID)
	}
	for _, cell := range doc.Cells {
		if cell.Value != "" {
			fmt.Printf("  [%s] %s\n", cell.ID, cell.Value)
		}
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `mandalart client

commands:
  show                         print the working document
  set <cell-id> <value>        set one cell, e.g. set 4-4 hello
  set-meta <field> <value>     set year, title, keyword or commitment
  reset-section <0-8>          clear one sub-grid
  reset-all                    clear everything and forget the server copy
  load                         replace local state with the server's latest
  sync                         push the working document now
  delete <document-id>         delete a server-side document`)
}
