package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/modql/modql"
	"github.com/modql/modql/internal/discover"
	"github.com/modql/modql/internal/eventbus"
	"github.com/modql/modql/internal/events"
	"github.com/modql/modql/internal/language"
	"github.com/modql/modql/internal/opid"
	"github.com/modql/modql/internal/otel"
)

const rootUsage = `modql — compose schema modules into a single GraphQL schema

USAGE:
  modql <command> [flags]

COMMANDS:
  bundle    Compose module directories into one SDL schema
  check     Compose module directories and validate the resulting schema
  help      Show help for any command
`

const bundleUsage = `bundle FLAGS:
  -module <dir>              Module directory. Repeatable; at least one required.
                             Subdirectories are loaded as dependency modules.
  -out <file>                Write composed SDL to file (default: stdout)
  -root.query <name>         Root query type name (default: Query)
  -root.mutation <name>      Root mutation type name (default: Mutation)
  -root.subscription <name>  Root subscription type name (default: Subscription)
  -otel.endpoint <addr>      OTLP collector endpoint
  -otel.service <name>       OpenTelemetry service name (default: modql)
`

const checkUsage = `check FLAGS:
  -module <dir>              Module directory. Repeatable; at least one required
  -format                    Print the normalized schema on success
  -root.query <name>         Root query type name (default: Query)
  -root.mutation <name>      Root mutation type name (default: Mutation)
  -root.subscription <name>  Root subscription type name (default: Subscription)
  -otel.endpoint <addr>      OTLP collector endpoint
  -otel.service <name>       OpenTelemetry service name (default: modql)
  (Validation always runs; exits non-zero on errors)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("modql", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "bundle":
		return cmdBundle(cmdArgs)
	case "check":
		return cmdCheck(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "bundle":
		fmt.Print(bundleUsage)
	case "check":
		fmt.Print(checkUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// commonFlags holds the flags shared by bundle and check.
type commonFlags struct {
	modules      stringListFlag
	rootKeys     modql.RootKeys
	otelEndpoint string
	otelService  string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.Var(&c.modules, "module", "Module directory")
	fs.StringVar(&c.rootKeys.Query, "root.query", "", "Root query type name")
	fs.StringVar(&c.rootKeys.Mutation, "root.mutation", "", "Root mutation type name")
	fs.StringVar(&c.rootKeys.Subscription, "root.subscription", "", "Root subscription type name")
	fs.StringVar(&c.otelEndpoint, "otel.endpoint", "", "OTLP collector endpoint")
	fs.StringVar(&c.otelService, "otel.service", "modql", "OpenTelemetry service name")
}

// compose loads every module directory and bundles the result, publishing
// bundle events around the operation.
func compose(ctx context.Context, cf *commonFlags) (modql.Result, error) {
	start := time.Now()
	eventbus.Publish(ctx, events.BundleStart{Modules: len(cf.modules)})

	var mods []modql.Module
	for _, dir := range cf.modules {
		rec, err := discover.LoadDir(ctx, dir)
		if err != nil {
			return modql.Result{}, fmt.Errorf("load module %q: %w", dir, err)
		}
		mods = append(mods, rec)
	}

	result := modql.Bundle(mods, &modql.Options{RootKeys: cf.rootKeys})
	eventbus.Publish(ctx, events.BundleFinish{
		TypeDefsBytes: len(result.TypeDefs),
		ResolverTypes: len(result.Resolvers),
		Duration:      time.Since(start),
	})
	return result, nil
}

func cmdBundle(args []string) error {
	var cf commonFlags
	outFile := ""
	fs := flag.NewFlagSet("bundle", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	cf.register(fs)
	fs.StringVar(&outFile, "out", outFile, "Write composed SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, bundleUsage)
		return err
	}
	if len(cf.modules) == 0 {
		fmt.Fprint(os.Stderr, bundleUsage)
		return fmt.Errorf("at least one -module is required")
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(cf.otelEndpoint, cf.otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	ctx, _ := opid.NewContext(context.Background())
	result, err := compose(ctx, &cf)
	if err != nil {
		return err
	}

	if outFile == "" {
		fmt.Print(result.TypeDefs)
		return nil
	}
	return os.WriteFile(outFile, []byte(result.TypeDefs), 0644)
}

func cmdCheck(args []string) error {
	var cf commonFlags
	format := false
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	cf.register(fs)
	fs.BoolVar(&format, "format", format, "Print the normalized schema on success")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}
	if len(cf.modules) == 0 {
		fmt.Fprint(os.Stderr, checkUsage)
		return fmt.Errorf("at least one -module is required")
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(cf.otelEndpoint, cf.otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	ctx, _ := opid.NewContext(context.Background())
	result, err := compose(ctx, &cf)
	if err != nil {
		return err
	}

	start := time.Now()
	eventbus.Publish(ctx, events.CheckStart{Name: "bundle"})
	_, verr := language.LoadSchema("bundle", result.TypeDefs)
	eventbus.Publish(ctx, events.CheckFinish{Name: "bundle", Err: verr, Duration: time.Since(start)})
	if verr != nil {
		return fmt.Errorf("invalid schema: %w", verr)
	}

	if format {
		doc, err := language.ParseSchema("bundle", result.TypeDefs)
		if err != nil {
			return fmt.Errorf("parse schema: %w", err)
		}
		fmt.Print(language.Format(doc))
	}
	return nil
}
