// Command ods-inspect prints the tag tree of an ODS container file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ryandw11/ODS"
)

func termRed(s string) string    { return fmt.Sprintf("\x1b[31;1m%s\x1b[0m", s) }
func termYellow(s string) string { return fmt.Sprintf("\x1b[33;1m%s\x1b[0m", s) }
func termGreen(s string) string  { return fmt.Sprintf("\x1b[92;1m%s\x1b[0m", s) }

func main() {
	if len(os.Args) != 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Printf("  %s Usage: %s FILE\n", termRed("!!"), filepath.Base(os.Args[0]))
		return
	}

	container, err := ods.OpenContainer(os.Args[1])
	if err != nil {
		fmt.Printf("  %s failed to open '%s': %v\n", termRed("!!"), os.Args[1], err)
		os.Exit(1)
	}
	defer container.Close()

	tags, err := container.GetAll()
	if err != nil {
		fmt.Printf("  %s failed to decode '%s': %v\n", termRed("!!"), os.Args[1], err)
		os.Exit(1)
	}

	for _, t := range tags {
		describe(t, 0)
	}
}

func describe(t ods.Tag, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	name := t.Name()
	if name == "" {
		name = "<unnamed>"
	}
	fmt.Printf("%s%s %s (%s)\n", indent, termGreen("+"), name, termYellow(t.Type().String()))

	switch t.Type() {
	case ods.TypeObject, ods.TypeList:
		children, _ := t.Children()
		for _, c := range children {
			describe(c, depth+1)
		}
	case ods.TypeMap:
		entries, _ := t.MapEntries()
		for _, e := range entries {
			describe(e.Value.WithName(e.Key), depth+1)
		}
	case ods.TypeCompressedObject:
		cv, _ := t.Compressed()
		fmt.Printf("%s  %s compressor=%s\n", indent, termYellow("~"), cv.CompressorName)
		for _, c := range cv.Children {
			describe(c, depth+1)
		}
	}
}
