package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"listings-console/internal/domain/filter"
	"listings-console/internal/domain/listing"
	"listings-console/internal/domain/pagination"
	"listings-console/internal/usecase"

	"github.com/spf13/cobra"
)

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Show one page of listings",
	Long:  "Fetch one page of listings for the given filters and print it as a table.",
	RunE:  runListings,
}

var markCmd = &cobra.Command{
	Use:   "mark <id> viewed|applied",
	Short: "Mark a listing as viewed or applied",
	Args:  cobra.ExactArgs(2),
	RunE:  runMark,
}

var (
	listRemote    bool
	listProviders []string
	listTags      []string
	listLocations []string
	listPerPage   int
	listPage      int
	listJSON      bool
)

func init() {
	f := listingsCmd.Flags()
	f.BoolVar(&listRemote, "remote", false, "Only remote listings")
	f.StringSliceVar(&listProviders, "providers", nil, "Providers, comma separated")
	f.StringSliceVar(&listTags, "tags", nil, "Tags, comma separated")
	f.StringSliceVar(&listLocations, "locations", nil, "Locations, comma separated")
	f.IntVar(&listPerPage, "per-page", pagination.DefaultPerPage, "Page size (10, 20, 30, 40 or 50)")
	f.IntVar(&listPage, "page", 1, "Page number")
	f.BoolVar(&listJSON, "json", false, "Print the view model as JSON")

	listingsCmd.AddCommand(markCmd)
	rootCmd.AddCommand(listingsCmd)
}

func selectedFilters() filter.State {
	return filter.Default().
		WithOnlyRemote(listRemote).
		WithProviders(listProviders...).
		WithTags(listTags...).
		WithLocations(listLocations...)
}

func runListings(cmd *cobra.Command, _ []string) error {
	if !pagination.IsPageSize(listPerPage) {
		return fmt.Errorf("--per-page must be one of %v", pagination.PageSizes())
	}
	e, err := newEnv()
	if err != nil {
		return err
	}

	view := usecase.NewListingsView(selectedFilters(), listPerPage, listPage)
	res := view.Load(cmd.Context(), e.listings)
	if res.Err != nil {
		return fmt.Errorf("%s: %w", usecase.FetchErrorMessage, res.Err)
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view.Model())
	}
	printListings(cmd.OutOrStdout(), view.Model())
	return nil
}

func runMark(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid listing id %q", args[0])
	}
	st, err := listing.ParseStatus(args[1])
	if err != nil || st == listing.StatusNew {
		return fmt.Errorf("status must be viewed or applied")
	}

	e, err := newEnv()
	if err != nil {
		return err
	}

	var row listing.Listing
	if st == listing.StatusApplied {
		row, err = e.listings.MarkApplied(cmd.Context(), "", id)
	} else {
		row, err = e.listings.MarkViewed(cmd.Context(), "", id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "listing %d marked %s\n", row.ID, row.Status.String())
	return nil
}

func printListings(w io.Writer, m usecase.ListingsViewModel) {
	fmt.Fprintln(w, m.Heading)
	if len(m.Badges) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(m.Badges, " | "))
	}
	fmt.Fprintln(w)

	if m.Error != "" {
		fmt.Fprintln(w, m.Error)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := []string{"ID"}
	for _, c := range m.Columns {
		headers = append(headers, strings.ToUpper(c.Header))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range m.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, truncate(r.Title, 48), r.SalaryRange, r.Provider, r.CreatedAt, truncate(r.Tags, 32), r.Location, r.Status)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%s (%d per page, %d total)\n", m.Pagination.Label, m.Pagination.PerPage, m.Pagination.Total)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
