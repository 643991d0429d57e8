// Command ods-batch validates every ODS container file under a
// directory, concurrently.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ryandw11/ODS"
)

// openFileLimit bounds the number of containers opened at once, the way
// the corpus's directory walkers guard against exhausting file
// descriptors on large trees.
var openFileLimit = 64

func main() {
	if len(os.Args) != 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Printf("Usage: %s DIR\n", filepath.Base(os.Args[0]))
		return
	}

	var files []string
	err := filepath.Walk(os.Args[1], func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		fmt.Printf("failed to walk %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	guard := make(chan struct{}, openFileLimit)
	results := make(chan string, len(files))

	for _, path := range files {
		guard <- struct{}{}
		go func(path string) {
			defer func() { <-guard }()
			results <- inspectOne(path)
		}(path)
	}

	failures := 0
	for range files {
		line := <-results
		fmt.Println(line)
		if line[0] == '!' {
			failures++
		}
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func inspectOne(path string) string {
	container, err := ods.OpenContainer(path)
	if err != nil {
		return fmt.Sprintf("! %s: %v", path, err)
	}
	defer container.Close()

	tags, err := container.GetAll()
	if err != nil {
		return fmt.Sprintf("! %s: %v", path, err)
	}
	return fmt.Sprintf("+ %s: %d top-level tags", path, len(tags))
}
