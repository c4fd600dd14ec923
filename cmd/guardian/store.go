package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/park-guardian/internal/storage"
)

// openStore opens the database named by --db. An empty path yields a nil
// store; callers fall back to memory.
func openStore() (*storage.Store, error) {
	if flagDBPath == "" {
		return nil, nil
	}
	return storage.Open(flagDBPath)
}

// mustOpenStore is openStore for commands that cannot work without a database.
func mustOpenStore() *storage.Store {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening campaign database: %v\n", err)
		os.Exit(1)
	}
	if store == nil {
		fmt.Fprintln(os.Stderr, "Error: --db is empty, nothing is persisted")
		os.Exit(1)
	}
	return store
}

// kvOf returns store as a KV, or a fresh in-memory one when store is nil.
func kvOf(store *storage.Store, logger *log.Logger) storage.KV {
	if store == nil {
		logger.Warn("campaign progress will not be saved")
		return storage.NewMemory()
	}
	return store
}
