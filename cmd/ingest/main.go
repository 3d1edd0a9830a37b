package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clarktrimble/sabot"
	_ "github.com/marcboeker/go-duckdb"

	nt "github.com/h4x0r/nfchat-sub002/entity"
	"github.com/h4x0r/nfchat-sub002/store/duck"
)

// ingest loads a flow csv headlessly and reports on what it finds, handy for
// checking a capture's headers before pointing the browser at it.

func main() {

	var (
		where  = flag.String("where", "", "predicate to apply before counting")
		bucket = flag.Int64("bucket", 60_000, "timeline bucket width in ms")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <flows.csv>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	flowFile := flag.Arg(0)

	lgr := &sabot.Sabot{Writer: os.Stderr, MaxLen: 999}
	ctx := lgr.WithFields(context.Background(), "app", "ingest")

	store, err := duck.New(lgr)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	start := time.Now()
	count, err := store.Ingest(flowFile)
	if err != nil {
		var resErr *duck.ResolutionError
		if errors.As(err, &resErr) {
			fmt.Printf("cannot resolve schema of %s\n", flowFile)
			fmt.Printf("  missing columns: %s\n", strings.Join(resErr.Resolution.MissingColumns, ", "))
			fmt.Printf("  found headers:   %s\n", strings.Join(resErr.Resolution.FoundHeaders, ", "))
			os.Exit(1)
		}
		fail(err)
	}
	fmt.Printf("loaded %d flows in %v\n\n", count, time.Since(start))

	fmt.Println("resolved columns:")
	mapping := store.Mapping()
	for canonical, header := range mapping {
		fmt.Printf("  %-26s <- %s\n", canonical, header)
	}

	if *where != "" {
		err = store.SetPredicate(*where)
		if err != nil {
			fail(err)
		}
	}

	fields, filtered, err := store.GetView()
	if err != nil {
		fail(err)
	}
	lgr.Info(ctx, "view", "fields", len(fields), "count", filtered)

	fmt.Printf("\nfields:\n")
	for _, field := range fields {
		fmt.Printf("  %-26s %s\n", field.Name, field.Type)
	}
	fmt.Printf("\n%d of %d flows match %q\n", filtered, count, store.Predicate())

	counts, err := store.AttackCounts()
	if err != nil {
		fail(err)
	}
	if len(counts) > 0 {
		fmt.Printf("\nattack labels:\n")
		for _, lc := range counts {
			fmt.Printf("  %-20s %8d\n", lc.Label, lc.Count)
		}
	}

	buckets, err := store.Timeline(*bucket)
	if err != nil {
		fail(err)
	}
	if len(buckets) > 0 {
		fmt.Printf("\ntimeline (%dms buckets):\n", *bucket)
		for _, bkt := range buckets {
			stamp := time.UnixMilli(bkt.StartMillis).UTC().Format("2006-01-02 15:04:05")
			fmt.Printf("  %s %8d %s\n", stamp, bkt.Count, bar(bkt.Count, buckets))
		}
	}
}

// bar scales a count against the busiest bucket
func bar(count int64, buckets []nt.Bucket) string {
	var max int64
	for _, bkt := range buckets {
		if bkt.Count > max {
			max = bkt.Count
		}
	}
	if max == 0 {
		return ""
	}

	width := int(count * 40 / max)
	return strings.Repeat("#", width)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %+v\n", err)
	os.Exit(1)
}
