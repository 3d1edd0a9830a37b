package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	_ "github.com/marcboeker/go-duckdb"

	nfchat "github.com/h4x0r/nfchat-sub002"
	"github.com/h4x0r/nfchat-sub002/store/duck"
	"github.com/h4x0r/nfchat-sub002/util"
)

const (
	layoutFile = "layout.yaml"
	logFile    = "nfchat.log"
)

//go:embed layout.yaml
var sampleLayout []byte

func main() {

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <flows.csv>\n", os.Args[0])
		os.Exit(1)
	}
	flowFile := os.Args[1]

	// log to file, the terminal belongs to bt
	file := util.OpenLog(logFile, 0644)
	defer util.CloseLog(file)

	lgr := &sabot.Sabot{Writer: file, MaxLen: 999}
	ctx := lgr.WithFields(context.Background(), "app", "nfchat")

	err := util.SampleConfig(sampleLayout, layoutFile, 0644)
	if err != nil {
		fail(err)
	}

	layout, err := nfchat.LoadLayout(layoutFile)
	if err != nil {
		fail(err)
	}

	store, err := duck.New(lgr)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	count, err := store.Ingest(flowFile)
	if err != nil {
		var resErr *duck.ResolutionError
		if errors.As(err, &resErr) {
			fmt.Fprintf(os.Stderr, "cannot load %s:\n", flowFile)
			fmt.Fprintf(os.Stderr, "  missing columns: %s\n", strings.Join(resErr.Resolution.MissingColumns, ", "))
			fmt.Fprintf(os.Stderr, "  found headers:   %s\n", strings.Join(resErr.Resolution.FoundHeaders, ", "))
			os.Exit(1)
		}
		fail(err)
	}
	lgr.Info(ctx, "ingested", "path", flowFile, "count", count)

	model, err := nfchat.NewModel(ctx, store, layout, lgr)
	if err != nil {
		fail(err)
	}

	program := tea.NewProgram(model)
	_, err = program.Run()
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %+v\n", err)
	os.Exit(1)
}
