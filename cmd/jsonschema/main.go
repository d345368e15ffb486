// Package main implements the jsonschema CLI, a small host binding around
// the core validator: read a schema file and a data file, compile, validate,
// and print a human-readable, color-coded error report.
//
// Usage:
//
//	jsonschema [flags] -schema <file> -data <file>
//
// Flags:
//
//	-schema string         Path to the JSON schema file (required)
//	-data string           Path to the JSON document to validate (required)
//	-draft string          Pin the draft when the schema omits $schema (e.g. "draft4", "latest")
//	-assert-format         Treat format violations as errors, not annotations
//	-verify-metaschema     Run the meta-schema bootstrap check before validating
//	-locale string         Locale for error messages (default: "en")
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	fcolor "github.com/fatih/color"
	gcolor "github.com/gookit/color"
	"github.com/kaptinlin/go-i18n"

	"github.com/polyschema/jsonschema"
)

var (
	schemaPath       = flag.String("schema", "", "Path to the JSON schema file (required)")
	dataPath         = flag.String("data", "", "Path to the JSON document to validate (required)")
	draftTag         = flag.String("draft", "", `Pin the draft when the schema omits "$schema" (e.g. "draft4", "latest")`)
	assertFormat     = flag.Bool("assert-format", false, "Treat format violations as errors, not annotations")
	verifyMetaSchema = flag.Bool("verify-metaschema", false, "Run the meta-schema bootstrap check before validating")
	locale           = flag.String("locale", "en", "Locale for error messages")
	help             = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help || *schemaPath == "" || *dataPath == "" {
		showHelp()
		if *schemaPath == "" || *dataPath == "" {
			os.Exit(2)
		}
		return
	}

	schemaBytes, err := os.ReadFile(*schemaPath)
	if err != nil {
		fatalf("reading schema file: %v", err)
	}
	dataBytes, err := os.ReadFile(*dataPath)
	if err != nil {
		fatalf("reading data file: %v", err)
	}

	compiler := jsonschema.NewCompiler().
		SetAssertFormat(*assertFormat).
		SetVerifyMetaSchema(*verifyMetaSchema)
	if *draftTag != "" {
		compiler.SetDraft(*draftTag)
	}

	schema, err := compiler.Compile(schemaBytes)
	if err != nil {
		fatalf("compiling schema: %v", err)
	}

	var data any
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		fatalf("parsing data file: %v", err)
	}
	result := schema.Validate(data)

	localizer, err := localizerFor(*locale)
	if err != nil {
		fatalf("loading locale catalogs: %v", err)
	}

	printReport(result, localizer)

	if !result.IsValid() {
		os.Exit(1)
	}
}

func localizerFor(locale string) (*i18n.Localizer, error) {
	bundle, err := jsonschema.GetI18n()
	if err != nil {
		return nil, err
	}
	return bundle.NewLocalizer(locale), nil
}

// printReport renders the evaluation tree: a color-coded banner for the
// top-level verdict (fatih/color), then one indented, keyword-highlighted
// line per error (gookit/color).
func printReport(result *jsonschema.EvaluationResult, localizer *i18n.Localizer) {
	if result.IsValid() {
		fcolor.New(fcolor.FgGreen, fcolor.Bold).Println("VALID")
		return
	}

	fcolor.New(fcolor.FgRed, fcolor.Bold).Println("INVALID")
	list := result.ToLocalizeList(localizer, true)
	printList(list, 0)
}

func printList(list *jsonschema.List, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	for keyword, message := range list.Errors {
		location := list.InstanceLocation
		if location == "" {
			location = "#"
		}
		gcolor.Printf(
			"%s<cyan>%s</> <red>%s</>: %s\n",
			indent, location, keyword, message,
		)
	}

	for _, detail := range list.Details {
		printList(&detail, depth+1)
	}
}

func fatalf(format string, args ...any) {
	fcolor.New(fcolor.FgRed, fcolor.Bold).Fprintf(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func showHelp() {
	fmt.Println(`jsonschema - validate a JSON document against a JSON Schema

USAGE:
    jsonschema [flags] -schema <file> -data <file>

FLAGS:`)
	flag.PrintDefaults()
	fmt.Println(`
EXAMPLES:
    jsonschema -schema user.schema.json -data user.json

    jsonschema -draft draft4 -schema legacy.schema.json -data payload.json

    jsonschema -verify-metaschema -locale zh-Hans -schema s.json -data d.json`)
}
