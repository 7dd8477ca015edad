package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/andyeko/memkv/store"
)

// bulkKeys sizes the load portion of the walkthrough.
const bulkKeys = 10_000

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "walk through every store operation on a small dataset",
		Action: func(c *cli.Context) error {
			runDemo(os.Stdout)
			return nil
		},
	}
}

// runDemo exercises the full store surface step by step: inserts,
// reads, an update, a delete that hands back the removed value, the
// miss paths, and a bulk load.
func runDemo(w io.Writer) {
	m := store.New()

	fmt.Fprintf(w, "fresh store: len=%d empty=%t\n\n", m.Len(), m.IsEmpty())

	m.Set("name", "Alice")
	m.Set("city", "Seattle")
	fmt.Fprintf(w, "inserted name and city: len=%d\n", m.Len())

	if value, ok := m.Get("name"); ok {
		fmt.Fprintf(w, "name = %s\n", value)
	}

	if value, ok := m.Get("city"); ok {
		fmt.Fprintf(w, "city = %s\n", value)
	}

	m.Set("city", "Portland")

	if value, ok := m.Get("city"); ok {
		fmt.Fprintf(w, "city = %s after update\n", value)
	}

	if removed, ok := m.Delete("city"); ok {
		fmt.Fprintf(w, "deleted city and kept its value: %s\n", removed)
	}

	fmt.Fprintf(w, "after delete: len=%d\n\n", m.Len())

	if _, ok := m.Get("city"); !ok {
		fmt.Fprintln(w, "reading city now misses")
	}

	if _, ok := m.Delete("city"); !ok {
		fmt.Fprintln(w, "deleting city again finds nothing")
	}

	m.Set("language", "Go")
	m.Set("since", "2009")
	m.Set("mascot", "gopher")

	fmt.Fprintln(w)
	writeEntryTable(w, m, []string{"name", "language", "since", "mascot"})

	runBulkDemo(w, m)
}

// writeEntryTable renders the entries behind the given keys. The store
// does not enumerate its contents, so the caller names the keys.
func writeEntryTable(w io.Writer, st store.Store, keys []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"KEY", "VALUE"})

	for _, key := range keys {
		if value, ok := st.Get(key); ok {
			table.Append([]string{key, value})
		}
	}

	table.Render()
}

// runBulkDemo loads a block of entries, updates half, and deletes the
// other half, verifying the returned values along the way.
func runBulkDemo(w io.Writer, st store.Store) {
	fmt.Fprintf(w, "\nbulk load of %s entries\n", humanize.Comma(int64(bulkKeys)))

	for i := range bulkKeys {
		st.Set(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
	}

	lenAfterLoad := st.Len()
	fmt.Fprintf(w, "after load: len=%s\n", humanize.Comma(int64(lenAfterLoad)))

	for i := 0; i < bulkKeys; i += 2 {
		st.Set(fmt.Sprintf("key%d", i), fmt.Sprintf("updated%d", i))
	}

	lenAfterUpdate := st.Len()

	// The odd keys were never updated, so each delete must hand back
	// the value the load phase stored.
	reclaimed := 0

	for i := 1; i < bulkKeys; i += 2 {
		if removed, ok := st.Delete(fmt.Sprintf("key%d", i)); ok && removed == fmt.Sprintf("value%d", i) {
			reclaimed++
		}
	}

	fmt.Fprintf(w, "updated the even keys, deleted the odd ones (%s values reclaimed)\n\n",
		humanize.Comma(int64(reclaimed)))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PHASE", "OPS", "LEN AFTER"})
	table.Append([]string{"load", humanize.Comma(int64(bulkKeys)), humanize.Comma(int64(lenAfterLoad))})
	table.Append([]string{"update evens", humanize.Comma(int64(bulkKeys / 2)), humanize.Comma(int64(lenAfterUpdate))})
	table.Append([]string{"delete odds", humanize.Comma(int64(bulkKeys / 2)), humanize.Comma(int64(st.Len()))})
	table.Render()

	fmt.Fprintf(w, "final: len=%s empty=%t\n", humanize.Comma(int64(st.Len())), st.IsEmpty())
}
