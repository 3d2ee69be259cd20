package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/pocket-ledger/internal/store"
	"github.com/example/pocket-ledger/pkg/transaction"
)

type configPathFunc func() string

func newInitCmd(configPath configPathFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed the account and category catalogs from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, configPath(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			accounts, err := a.port.LoadAccounts(ctx)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				accounts = a.cfg.SeedAccounts()
				if err := a.port.SaveAccounts(ctx, accounts); err != nil {
					return err
				}
			}
			categories, err := a.port.LoadCategories(ctx)
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				categories = a.cfg.SeedCategories()
				if err := a.port.SaveCategories(ctx, categories); err != nil {
					return err
				}
			}
			txs, err := a.port.LoadTransactions(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d accounts, %d categories, %d transactions\n",
				len(accounts), len(categories), len(txs))
			return nil
		},
	}
}

type txFlags struct {
	amount      float64
	typ         string
	from        string
	to          string
	category    string
	description string
	note        string
	attachments []string
	at          string
	clearFrom   bool
	clearTo     bool
}

func (f *txFlags) register(cmd *cobra.Command, update bool) {
	fs := cmd.Flags()
	fs.Float64VarP(&f.amount, "amount", "a", 0, "positive amount")
	fs.StringVarP(&f.typ, "type", "t", "", "income, expense or transfer")
	fs.StringVar(&f.from, "from", "", "source account id")
	fs.StringVar(&f.to, "to", "", "destination account id")
	fs.StringVar(&f.category, "category", "", "category id")
	fs.StringVarP(&f.description, "description", "d", "", "free text description")
	fs.StringVar(&f.note, "note", "", "free text note")
	fs.StringArrayVar(&f.attachments, "attach", nil, "attachment reference, repeatable, order is kept")
	fs.StringVar(&f.at, "at", "", "business date, RFC 3339 or YYYY-MM-DD")
	if update {
		fs.BoolVar(&f.clearFrom, "clear-from", false, "remove the source account")
		fs.BoolVar(&f.clearTo, "clear-to", false, "remove the destination account")
	}
}

func newAddCmd(configPath configPathFunc) *cobra.Command {
	var f txFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := transaction.ParseType(f.typ)
			if err != nil {
				return err
			}
			ts := time.Now()
			if f.at != "" {
				if ts, err = parseTimestamp(f.at); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			category := f.category
			if category == "" {
				categorizer, err := transaction.NewCategorizer(a.cfg.Rules(), a.cfg.DefaultCategory)
				if err != nil {
					return err
				}
				category = categorizer.Categorize(f.description)
			}

			tx, err := a.store.Create(ctx, transaction.CreateInput{
				Amount:      f.amount,
				Type:        typ,
				FromAccount: transaction.Ref(f.from),
				ToAccount:   transaction.Ref(f.to),
				Category:    category,
				Description: f.description,
				Note:        f.note,
				Attachments: f.attachments,
				Timestamp:   ts,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tx)
		},
	}
	f.register(cmd, false)
	return cmd
}

func newUpdateCmd(configPath configPathFunc) *cobra.Command {
	var f txFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an existing transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := f.patch(cmd, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx, configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			tx, err := a.store.Update(ctx, in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tx)
		},
	}
	f.register(cmd, true)
	return cmd
}

// patch builds an UpdateInput from the flags the user actually set
func (f *txFlags) patch(cmd *cobra.Command, id string) (transaction.UpdateInput, error) {
	in := transaction.UpdateInput{ID: id, ClearFromAccount: f.clearFrom, ClearToAccount: f.clearTo}
	changed := cmd.Flags().Changed

	if changed("amount") {
		in.Amount = &f.amount
	}
	if changed("type") {
		typ, err := transaction.ParseType(f.typ)
		if err != nil {
			return in, err
		}
		in.Type = &typ
	}
	if changed("from") {
		in.FromAccount = &f.from
	}
	if changed("to") {
		in.ToAccount = &f.to
	}
	if changed("category") {
		in.Category = &f.category
	}
	if changed("description") {
		in.Description = &f.description
	}
	if changed("note") {
		in.Note = &f.note
	}
	if changed("attach") {
		in.Attachments = &f.attachments
	}
	if changed("at") {
		ts, err := parseTimestamp(f.at)
		if err != nil {
			return in, err
		}
		in.Timestamp = &ts
	}
	return in, nil
}

func newDeleteCmd(configPath configPathFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newGetCmd(configPath configPathFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			tx, ok := a.store.Get(args[0])
			if !ok {
				return &transaction.NotFoundError{ID: args[0]}
			}
			return writeJSON(cmd.OutOrStdout(), tx)
		},
	}
}

type filterFlags struct {
	typ        string
	categories []string
	sortBy     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.typ, "type", "t", "", "only show this type")
	fs.StringSliceVar(&f.categories, "category", nil, "only show these categories, repeatable")
	fs.StringVarP(&f.sortBy, "sort", "s", "", "newest, oldest, highest or lowest (default from config)")
}

func (f *filterFlags) criteria(defaultSort string) (transaction.FilterCriteria, error) {
	var c transaction.FilterCriteria
	if f.typ != "" {
		typ, err := transaction.ParseType(f.typ)
		if err != nil {
			return c, err
		}
		c.TypeFilter = &typ
	}
	c.SelectedCategories = f.categories

	sortBy := f.sortBy
	if sortBy == "" {
		sortBy = defaultSort
	}
	by, err := transaction.ParseSortBy(sortBy)
	if err != nil {
		return c, err
	}
	c.SortBy = by
	return c, nil
}

func newListCmd(configPath configPathFunc) *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			criteria, err := f.criteria(a.cfg.Filter.SortBy)
			if err != nil {
				return err
			}
			view := store.NewView(a.store, criteria)
			defer view.Close()

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
			for _, tx := range view.FilteredTransactions() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID,
					tx.Timestamp.Format(time.DateOnly),
					tx.Type,
					strconv.FormatFloat(tx.Amount, 'f', 2, 64),
					tx.Category,
					tx.Description,
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if n := view.ActiveFilterCount(); n > 0 {
				fmt.Fprintf(out, "active filters: %d\n", n)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newSummaryCmd(configPath configPathFunc) *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total income, expense and expense per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			criteria, err := f.criteria(a.cfg.Filter.SortBy)
			if err != nil {
				return err
			}
			txs := transaction.Filter(a.store.Transactions(), criteria)
			return writeJSON(cmd.OutOrStdout(), transaction.Summarize(txs))
		},
	}
	f.register(cmd)
	return cmd
}

func newAccountsCmd(configPath configPathFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List known accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()
			return writeJSON(cmd.OutOrStdout(), a.store.Accounts())
		},
	}
}

func newCategoriesCmd(configPath configPathFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List known categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()
			return writeJSON(cmd.OutOrStdout(), a.store.Categories())
		},
	}
}
