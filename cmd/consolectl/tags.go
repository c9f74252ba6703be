package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"listings-console/internal/domain/pagination"
	"listings-console/internal/domain/tag"
	"listings-console/internal/pkg/validation"
	"listings-console/internal/usecase"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List and manage tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Search tags with their aliases",
	RunE:  runTagsList,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a tag",
	RunE:  runTagsAdd,
}

var tagsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsEdit,
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsDelete,
}

var (
	tagsSearch  string
	tagsPerPage int
	tagsPage    int

	tagName    string
	tagType    string
	tagAliases []string
)

func init() {
	tagsListCmd.Flags().StringVar(&tagsSearch, "search", "", "Filter by name, type or alias")
	tagsListCmd.Flags().IntVar(&tagsPerPage, "per-page", pagination.DefaultPerPage, "Page size")
	tagsListCmd.Flags().IntVar(&tagsPage, "page", 1, "Page number")

	for _, c := range []*cobra.Command{tagsAddCmd, tagsEditCmd} {
		c.Flags().StringVar(&tagName, "name", "", "Tag name")
		c.Flags().StringVar(&tagType, "type", "", "Tag type")
		c.Flags().StringSliceVar(&tagAliases, "alias", nil, "Alias (repeatable)")
	}

	tagsCmd.AddCommand(tagsListCmd, tagsAddCmd, tagsEditCmd, tagsDeleteCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsList(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	table, err := e.tags.Table(cmd.Context(), tagsSearch, tagsPerPage, tagsPage)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tALIASES")
	for _, r := range table.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Type, r.Aliases)
	}
	_ = tw.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", table.Pagination.Label)
	return nil
}

func tagForm(id int64) tag.Form {
	f := tag.Form{ID: id, Name: tagName, Type: tagType}
	for _, a := range tagAliases {
		f.Aliases = append(f.Aliases, tag.Alias{Alias: a})
	}
	return f
}

func runTagsAdd(cmd *cobra.Command, _ []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	res, err := e.tags.Create(cmd.Context(), tagForm(0))
	return reportMutation(cmd, res, err)
}

func runTagsEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tag id %q", args[0])
	}
	e, err := newEnv()
	if err != nil {
		return err
	}
	res, err := e.tags.Update(cmd.Context(), tagForm(id))
	return reportMutation(cmd, res, err)
}

func runTagsDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tag id %q", args[0])
	}
	e, err := newEnv()
	if err != nil {
		return err
	}
	res, err := e.tags.Delete(cmd.Context(), id)
	return reportMutation(cmd, res, err)
}

func reportMutation(cmd *cobra.Command, res usecase.TagMutation, err error) error {
	if errs, ok := validation.AsErrors(err); ok {
		for field, msg := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
		}
		return fmt.Errorf("invalid tag")
	}
	if err != nil {
		if res.Message != "" {
			return fmt.Errorf("%s", res.Message)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}
