package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robottwo/tabby/internal/history"
	"github.com/robottwo/tabby/internal/schema"
	"github.com/robottwo/tabby/pkg/tabby"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

var cursor = flag.Int("cursor", -1, "cursor position in the line (default: end of line)")
var dir = flag.String("dir", "", "working directory for path completion (default: current directory)")
var limit = flag.Int("limit", 0, "maximum number of candidates to print")
var historyPath = flag.String("history", "", "path to a history database for history suggestions")
var debug = flag.Bool("debug", false, "log pipeline details to stderr")

var helpFlag bool
var versionFlag bool

func init() {
	flag.BoolVar(&helpFlag, "h", false, "display help information")
	flag.BoolVar(&helpFlag, "help", false, "display help information")

	flag.BoolVar(&versionFlag, "v", false, "display build version")
	flag.BoolVar(&versionFlag, "version", false, "display build version")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] <line>\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(os.Stderr, "Prints one completion candidate per line as <text>\\t<description>.\n\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if helpFlag {
		usage()
		return
	}
	if versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	os.Exit(run(flag.Arg(0)))
}

func run(line string) int {
	logger := zap.NewNop()
	if *debug {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "tabby: %v\n", err)
			return 1
		}
		defer func() {
			_ = logger.Sync()
		}()
	}

	workDir := *dir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "tabby: %v\n", err)
			return 1
		}
	}

	pos := *cursor
	if pos < 0 || pos > len(line) {
		pos = len(line)
	}

	opts := []tabby.Option{tabby.WithLogger(logger)}
	if *historyPath != "" {
		store, err := history.Open(*historyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tabby: %v\n", err)
			return 1
		}
		defer func() {
			_ = store.Close()
		}()
		opts = append(opts, tabby.WithHistory(store))
	}
	if *limit > 0 {
		opts = append(opts, tabby.WithMaxResults(*limit))
	}

	engine := tabby.New(schema.Default(logger), opts...)
	candidates := engine.Complete(context.Background(), tabby.Request{
		Input:  line,
		Cursor: pos,
		Dir:    workDir,
	})

	for _, c := range candidates {
		fmt.Printf("%s\t%s\n", c.Text, c.Description)
	}
	return 0
}
