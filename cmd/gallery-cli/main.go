// gallery-cli lists catalog models from the command line, the same way the
// gallery grid queries them.
//
// Usage:
//
//	gallery-cli -backend http://127.0.0.1:9090 -category robot -page 2 -size 16
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/client"
)

func main() {
	backend := flag.String("backend", "http://127.0.0.1:9090", "catalog backend URL")
	page := flag.Int("page", client.DefaultPage, "page number")
	size := flag.Int("size", client.DefaultPageSize, "page size")
	cat := flag.String("category", "", "category code")
	keyword := flag.String("keyword", "", "search keyword")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := gz.NewLogger("gallery-cli", true, gz.VerbosityWarning)
	c := client.NewClient(*backend, client.WithLogger(logger))
	q := client.Query{Page: *page, PageSize: *size, Category: *cat, Keyword: *keyword}
	if err := list(ctx, os.Stdout, c, q, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, "gallery-cli:", err)
		os.Exit(1)
	}
}

// list runs q and prints the page to w.
func list(ctx context.Context, w io.Writer, c *client.Client, q client.Query, asJSON bool) error {
	res := c.List(ctx, q)
	if res.Err != nil {
		return res.Err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSIZE\tVIEWS\tDOWNLOADS")
	for _, m := range res.Models {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\n", m.ID, m.Name, m.Type, m.Size, m.ViewCount, m.DownloadCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d/%d, %d models\n", res.Page, res.TotalPages, res.Total)
	return err
}
