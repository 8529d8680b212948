package main

import (
	"log"
)

// Build metadata injected at compile time via ldflags.
var (
	GitCommit string
	GitTag    string
	BuildTime string
)

// @title Bookstore Catalog API
// @version 1.0
// @description CRUD catalog of books backed by a persistent store with a cache-aside layer.
// @BasePath /
func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialized: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
