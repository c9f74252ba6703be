package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"listings-console/internal/domain/filter"
	"listings-console/internal/domain/listing"
	"listings-console/internal/usecase"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse listings interactively",
	Long: `Browse listings page by page. Filter edits are pending until "apply".

Commands:
  n, p, first, last, goto <page>   move between pages
  size <10|20|30|40|50>            change the page size
  remote                           toggle only-remote
  provider|tag|location <value>    toggle a pending filter value
  apply, reset                     commit or clear the filters
  viewed <id>, applied <id>        mark a listing on this page
  show                             print the current page again
  quit                             leave`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	b := &browser{
		ctx:      cmd.Context(),
		out:      cmd.OutOrStdout(),
		listings: e.listings,
		view:     usecase.NewListingsView(filter.Default(), 10, 1),
	}
	b.load()
	return b.loop(cmd.InOrStdin())
}

type browser struct {
	ctx      context.Context
	out      io.Writer
	listings usecase.ListingsUsecase
	view     *usecase.ListingsView
}

func (b *browser) load() {
	b.view.Load(b.ctx, b.listings)
	printListings(b.out, b.view.Model())
}

func (b *browser) loop(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, arg := fields[0], strings.Join(fields[1:], " ")
		if cmd == "quit" || cmd == "q" {
			return nil
		}
		if err := b.exec(cmd, arg); err != nil {
			fmt.Fprintln(b.out, err)
		}
		if b.ctx.Err() != nil {
			return b.ctx.Err()
		}
	}
}

func (b *browser) exec(cmd, arg string) error {
	var moved bool
	switch cmd {
	case "n", "next":
		_, moved = b.view.Next()
	case "p", "prev":
		_, moved = b.view.Previous()
	case "first":
		_, moved = b.view.First()
	case "last":
		_, moved = b.view.Last()
	case "goto":
		page, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("goto needs a page number")
		}
		_, moved = b.view.Goto(page)
	case "size":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("size needs a number")
		}
		_, moved = b.view.SetPerPage(n)
	case "remote":
		b.view.Edit(filter.State.ToggleOnlyRemote)
		return b.pending()
	case "provider":
		b.view.Edit(func(s filter.State) filter.State { return s.ToggleProvider(arg) })
		return b.pending()
	case "tag":
		b.view.Edit(func(s filter.State) filter.State { return s.ToggleTag(arg) })
		return b.pending()
	case "location":
		b.view.Edit(func(s filter.State) filter.State { return s.ToggleLocation(arg) })
		return b.pending()
	case "apply":
		_, moved = b.view.Apply()
	case "reset":
		_, moved = b.view.Reset()
	case "viewed", "applied":
		return b.mark(cmd, arg)
	case "show":
		printListings(b.out, b.view.Model())
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	if moved {
		b.load()
	}
	return nil
}

func (b *browser) pending() error {
	m := b.view.Model()
	badges := filter.Badges(m.Panel.Pending)
	if len(badges) == 0 {
		badges = []string{"no filters"}
	}
	fmt.Fprintf(b.out, "pending: %s (apply to load)\n", strings.Join(badges, " | "))
	return nil
}

func (b *browser) mark(cmd, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("%s needs a listing id", cmd)
	}

	key := b.view.Request().Key
	var row listing.Listing
	if cmd == "applied" {
		row, err = b.listings.MarkApplied(b.ctx, key, id)
	} else {
		row, err = b.listings.MarkViewed(b.ctx, key, id)
	}
	if err != nil {
		return err
	}
	b.view.PatchRow(row.ID, row.Status)
	fmt.Fprintf(b.out, "listing %d marked %s\n", row.ID, row.Status.String())
	return nil
}
