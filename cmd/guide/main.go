// Package main renders the English exemption guide.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/garyellow/sookmyung-chatbot-go/internal/guide"
)

var (
	sectionFlag = flag.String("section", "detailed", "Guide to render (info, detailed)")
	outFlag     = flag.String("out", "", "Output file (default: stdout)")
)

func main() {
	flag.Parse()

	var render func(io.Writer, guide.Exemption) error
	switch *sectionFlag {
	case "info":
		render = guide.RenderInfo
	case "detailed":
		render = guide.RenderDetailed
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown section %q (want info or detailed)\n", *sectionFlag)
		os.Exit(2)
	}

	out := os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *outFlag, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	if err := render(w, guide.Default); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
