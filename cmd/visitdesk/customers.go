package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rpggio/visitdesk/internal/config"
	"github.com/rpggio/visitdesk/internal/directory"
	"github.com/rpggio/visitdesk/internal/domain/customer"
	"github.com/spf13/cobra"
)

func newCustomersCmd() *cobra.Command {
	var (
		kind   string
		format string
		path   string
	)

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List the customer directory",
		Long: `List existing customers and prospects from the configured directory.

Examples:
  visitdesk customers
  visitdesk customers --kind existing
  visitdesk customers --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
				path = cfg.Directory.Path
			}
			dir, err := directory.Load(path)
			if err != nil {
				return err
			}

			var list []customer.Customer
			switch customer.Kind(kind) {
			case "":
				list = append(dir.ExistingCustomers(), dir.ProspectCustomers()...)
			case customer.KindExisting:
				list = dir.ExistingCustomers()
			case customer.KindProspect:
				list = dir.ProspectCustomers()
			default:
				return fmt.Errorf("unknown kind %q (want existing or prospect)", kind)
			}

			switch format {
			case "json":
				return printCustomersJSON(cmd.OutOrStdout(), list)
			case "text":
				printCustomersText(cmd.OutOrStdout(), list)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (existing, prospect)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json)")
	cmd.Flags().StringVar(&path, "directory", "", "Directory YAML file (default: configured or built-in)")
	return cmd
}

func printCustomersJSON(w io.Writer, list []customer.Customer) error {
	if list == nil {
		list = []customer.Customer{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func printCustomersText(w io.Writer, list []customer.Customer) {
	if len(list) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No customers."))
		return
	}
	for _, c := range list {
		fmt.Fprintf(w, "%s  %s  %s\n", accentStyle.Render(c.ID), boldStyle.Render(c.Name), mutedStyle.Render(string(c.Kind)))
		details := []string{c.Industry}
		if c.IsExisting() {
			details = append(details, c.Status, fmt.Sprintf("score %d", c.Score))
		} else {
			details = append(details, c.Size, "need "+c.NeedIntensity)
		}
		fmt.Fprintf(w, "    %s\n", strings.Join(nonEmpty(details), " · "))
		if contact, ok := c.PrimaryContact(); ok {
			fmt.Fprintf(w, "    %s %s\n", contact.Name, mutedStyle.Render(contact.Phone))
		}
	}
}

func nonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
