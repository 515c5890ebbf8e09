package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	jsonshape "github.com/reoring/jsonshape"
	"github.com/reoring/jsonshape/i18n"
	"github.com/reoring/jsonshape/schemadef"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		os.Exit(validateCmd(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jsonshape CLI\n\nUsage:\n  jsonshape validate -schema schema.yaml [-lang en|ja] [-root label] doc.json\n\nNotes:\n  - The schema document grammar is described in the schemadef package.\n  - Documents ending in .yaml/.yml are decoded as YAML, everything else as JSON.\n  - Exit codes: 0 valid, 1 invalid document, 2 usage or schema defect.")
}

func validateCmd(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath, lang, root string
	fs.StringVar(&schemaPath, "schema", "", "schema document (YAML or JSON)")
	fs.StringVar(&lang, "lang", "en", "message language (en/ja)")
	fs.StringVar(&root, "root", "", "path label for the document root")
	_ = fs.Parse(args)
	if schemaPath == "" || fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(lang)

	sdata, err := os.ReadFile(schemaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	schema, err := schemadef.Compile(sdata)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	docPath := fs.Arg(0)
	ddata, err := os.ReadFile(docPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	var value any
	if strings.HasSuffix(docPath, ".yaml") || strings.HasSuffix(docPath, ".yml") {
		value, err = schemadef.LoadValue(ddata)
	} else {
		value, err = jsonshape.DecodeJSON(ddata)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := jsonshape.Validate(schema, value, jsonshape.ValidateOpt{Root: root}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if jsonshape.IsSchemaDefect(err) {
			return 2
		}
		return 1
	}
	fmt.Printf("%s: ok\n", docPath)
	return 0
}
