// Command formatscan detects and decodes nested binary formats in a file
// and renders the result tree as plain text.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = cmdScan(os.Args[2:])
	case "detect":
		err = cmdDetect(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `formatscan — nested binary format decoder

Usage:
  formatscan scan   --in <path> [--pos N] [--debug]   Detect, decode and render a file
  formatscan detect --in <path>                        List candidate formats for a file

`)
}
