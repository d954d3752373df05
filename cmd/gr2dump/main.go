// Command gr2dump loads a .gr2 file and either prints its decoded
// element tree as JSON or resolves one dotted path against it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/opengr2/gr2"
)

func main() {
	path := flag.String("path", "", "dotted path to resolve, e.g. ArtToolInfo.FromArtToolName (default: dump the whole tree)")
	optsFile := flag.String("options", "", "path to a YAML options file (default: gr2.DefaultOptions())")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gr2dump [-path DOTTED.PATH] [-options FILE] FILE.gr2")
		os.Exit(2)
	}

	runID := uuid.New()
	file := flag.Arg(0)

	opts := gr2.DefaultOptions()
	if *optsFile != "" {
		var err error
		opts, err = gr2.LoadOptions(*optsFile)
		if err != nil {
			log.Fatalf("gr2dump[%s]: %v", runID, err)
		}
	}

	data, closer, err := gr2.LoadFile(file)
	if err != nil {
		log.Fatalf("gr2dump[%s]: %v", runID, err)
	}
	defer closer()

	decoded, err := gr2.DecodeWithOptions(data, opts)
	if err != nil {
		log.Fatalf("gr2dump[%s]: %v", runID, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *path == "" {
		if err := enc.Encode(decoded.Root); err != nil {
			log.Fatalf("gr2dump[%s]: encode: %v", runID, err)
		}
		return
	}

	value, ok := decoded.Find(*path)
	if !ok {
		log.Fatalf("gr2dump[%s]: path %q did not resolve", runID, *path)
	}
	if err := enc.Encode(value); err != nil {
		log.Fatalf("gr2dump[%s]: encode: %v", runID, err)
	}
}
