package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sicko7947/grocer"
	"github.com/sicko7947/grocer/builder"
	"github.com/sicko7947/grocer/service"
	"github.com/sicko7947/grocer/store"
	"github.com/spf13/cobra"
)

var (
	listsOwned  bool
	listsShared bool

	itemInput service.ItemInput
	itemTags  []int

	tableWait time.Duration
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show all lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lists, err := svc.Lists(cmd.Context(), grocer.ListFilter{
			OwnedOnly:  listsOwned,
			SharedOnly: listsShared,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tOWNER\tITEMS\tINVITE")
		for _, list := range lists {
			fmt.Fprintf(w, "%d\t%s\t%t\t%d\t%s\n", list.ID, list.Name, list.IsOwner, len(list.Items), list.InviteCode)
		}
		return w.Flush()
	},
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := svc.Perform(cmd.Context(), grocer.ActionCreate, 0, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created list %d %q (invite code %s)\n", list.ID, list.Name, list.InviteCode)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename LIST_ID NAME",
	Short: "Rename a list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		list, err := svc.Perform(cmd.Context(), grocer.ActionEdit, listID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed list %d to %q\n", list.ID, list.Name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete LIST_ID",
	Short: "Delete a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		if _, err := svc.Perform(cmd.Context(), grocer.ActionDelete, listID, ""); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %d\n", listID)
		return nil
	},
}

var inviteCmd = &cobra.Command{
	Use:   "invite LIST_ID",
	Short: "Show the invite code of an owned list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		code, err := svc.InviteCode(cmd.Context(), listID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}

var joinCmd = &cobra.Command{
	Use:   "join INVITE_CODE",
	Short: "Join someone else's list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := svc.Perform(cmd.Context(), grocer.ActionJoin, 0, args[0])
		return err
	},
}

var addCmd = &cobra.Command{
	Use:   "add LIST_ID NAME",
	Short: "Add an item to a list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		input := itemInput
		input.Name = strings.Join(args[1:], " ")

		item, err := svc.AddItem(cmd.Context(), listID, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added item %d %q\n", item.ID, item.Name)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update LIST_ID ITEM_ID NAME",
	Short: "Replace the fields of an item",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		itemID, err := parseID("item", args[1])
		if err != nil {
			return err
		}
		input := itemInput
		input.Name = strings.Join(args[2:], " ")

		item, err := svc.UpdateItem(cmd.Context(), listID, itemID, input)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated item %d %q\n", item.ID, item.Name)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove LIST_ID ITEM_ID",
	Short: "Remove an item from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		itemID, err := parseID("item", args[1])
		if err != nil {
			return err
		}
		if err := svc.DeleteItem(cmd.Context(), listID, itemID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d\n", itemID)
		return nil
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items LIST_ID",
	Short: "Show the items of a list, optionally filtered by tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		items, err := svc.Items(cmd.Context(), listID, itemTags)
		if err != nil {
			return err
		}
		return printItems(cmd.OutOrStdout(), items)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags LIST_ID",
	Short: "Show the tags of a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		tags, err := svc.Tags(cmd.Context(), listID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOLOUR")
		for _, tag := range tags {
			fmt.Fprintf(w, "%d\t%s\t%s\n", tag.ID, tag.Name, tag.Colour)
		}
		return w.Flush()
	},
}

var recolourCmd = &cobra.Command{
	Use:   "recolour LIST_ID TAG_ID COLOUR",
	Short: "Change the colour of a tag",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		tagID, err := parseID("tag", args[1])
		if err != nil {
			return err
		}
		tag, err := svc.RecolourTag(cmd.Context(), listID, tagID, args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tag %q is now %s\n", tag.Name, tag.Colour)
		return nil
	},
}

var untagCmd = &cobra.Command{
	Use:   "untag LIST_ID TAG_ID",
	Short: "Delete a tag from a list and all of its items",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		tagID, err := parseID("tag", args[1])
		if err != nil {
			return err
		}
		if err := svc.RemoveTag(cmd.Context(), listID, tagID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed tag %d\n", tagID)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store the sample lists, skipping IDs that already exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created := 0
		for _, list := range builder.SampleLists() {
			err := listStore.CreateList(cmd.Context(), list)
			if grocer.ErrorCode(err) == grocer.ErrCodeConflict {
				logger.Debug().Int("list_id", list.ID).Msg("Sample list already present")
				continue
			}
			if err != nil {
				return err
			}
			created++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d lists\n", created)
		return nil
	},
}

var initTableCmd = &cobra.Command{
	Use:   "init-table",
	Short: "Create the DynamoDB table used by the dynamodb backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Storage.Backend != BackendDynamoDB {
			return fmt.Errorf("init-table requires the dynamodb backend, got %s", cfg.Storage.Backend)
		}
		client, err := newDynamoDBClient(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := store.CreateTable(cmd.Context(), client, cfg.Storage.TableName, tableWait); err != nil {
			return err
		}
		logger.Info().Str("table", cfg.Storage.TableName).Msg("DynamoDB table ready")
		return nil
	},
}

func init() {
	listsCmd.Flags().BoolVar(&listsOwned, "owned", false, "only lists you own")
	listsCmd.Flags().BoolVar(&listsShared, "shared", false, "only lists shared with you")

	for _, cmd := range []*cobra.Command{addCmd, updateCmd} {
		cmd.Flags().StringVar(&itemInput.Price, "price", "", "price, e.g. 3.49")
		cmd.Flags().StringVar(&itemInput.AdditionalNotes, "notes", "", "additional notes")
		cmd.Flags().StringSliceVar(&itemInput.Tags, "tag", nil, "tag name (repeatable)")
		cmd.Flags().BoolVar(&itemInput.OnSale, "on-sale", false, "mark the item as on sale")
	}

	itemsCmd.Flags().IntSliceVar(&itemTags, "tag", nil, "only items with any of these tag IDs (repeatable)")

	initTableCmd.Flags().DurationVar(&tableWait, "wait", 2*time.Minute, "how long to wait for the table to become active")

	rootCmd.AddCommand(
		listsCmd, createCmd, renameCmd, deleteCmd, inviteCmd, joinCmd,
		addCmd, updateCmd, removeCmd, itemsCmd,
		tagsCmd, recolourCmd, untagCmd,
		seedCmd, initTableCmd,
	)
}

func parseID(kind, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, grocer.NewValidationError(kind, fmt.Sprintf("invalid %s ID %q", kind, raw))
	}
	return id, nil
}

func printItems(out io.Writer, items []grocer.ListItem) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tTAGS\tNOTES")
	for _, item := range items {
		names := make([]string, len(item.Tags))
		for i, tag := range item.Tags {
			names[i] = tag.Name
		}
		price := item.Price
		if price != "" {
			price = "$" + price
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", item.ID, item.Name, price, strings.Join(names, ", "), item.AdditionalNotes)
	}
	return w.Flush()
}
