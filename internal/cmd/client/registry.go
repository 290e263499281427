package client

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

// NewGetCommand returns the "get" command: get-or-create a UID for a key.
func NewGetCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get or create the stable UID for a (category, key) pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			key, _ := cmd.Flags().GetString("key")
			obj, status, err := postJSON(baseURL(), "/v1/uids/get-or-create", map[string]string{
				"category":  category,
				"domainKey": key,
			})
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fail(obj, status)
			}
			fmt.Println(obj["uid"])
			return nil
		},
	}
	cmd.Flags().String("category", "", "Category namespace (default from server config)")
	cmd.Flags().String("key", "", "Domain key, e.g. a specimen or patient id")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

// NewResolveCommand returns the "resolve" command: look up without creating.
func NewResolveCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Look up an existing UID without creating one",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			key, _ := cmd.Flags().GetString("key")
			q := url.Values{}
			q.Set("category", category)
			q.Set("domainKey", key)
			obj, status, err := getJSON(baseURL(), "/v1/uids/resolve", q)
			if err != nil {
				return err
			}
			if status == http.StatusNotFound {
				return fmt.Errorf("no uid registered for %s/%s", category, key)
			}
			if status != http.StatusOK {
				return fail(obj, status)
			}
			printJSON(obj)
			return nil
		},
	}
	cmd.Flags().String("category", "", "Category namespace (default from server config)")
	cmd.Flags().String("key", "", "Domain key")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

// NewListCommand returns the "list" command with optional CEL filtering.
func NewListCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered UIDs in a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			filter, _ := cmd.Flags().GetString("filter")
			q := url.Values{}
			q.Set("category", category)
			if filter != "" {
				q.Set("filter", filter)
			}
			obj, status, err := getJSON(baseURL(), "/v1/uids/list", q)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fail(obj, status)
			}
			printJSON(obj["records"])
			return nil
		},
	}
	cmd.Flags().String("category", "", "Category namespace (default from server config)")
	cmd.Flags().String("filter", "", `CEL filter, e.g. 'domain_key.startsWith("SAMPLE_")'`)
	return cmd
}

// NewStatsCommand returns the "stats" command: record counts per category.
func NewStatsCommand(baseURL BaseURLFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, status, err := getJSON(baseURL(), "/v1/uids/stats", nil)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fail(obj, status)
			}
			printJSON(obj["categories"])
			return nil
		},
	}
}

// NewStampCommand returns the "stamp" command: first-write-wins auxiliary
// values, e.g. a study datetime shared across series.
func NewStampCommand(baseURL BaseURLFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Get or set the stable stamp value for a (category, key) pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			key, _ := cmd.Flags().GetString("key")
			value, _ := cmd.Flags().GetString("value")
			obj, status, err := postJSON(baseURL(), "/v1/stamps/get-or-set", map[string]string{
				"category":  category,
				"domainKey": key,
				"value":     value,
			})
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fail(obj, status)
			}
			fmt.Println(obj["value"])
			return nil
		},
	}
	cmd.Flags().String("category", "", "Category namespace (default from server config)")
	cmd.Flags().String("key", "", "Domain key")
	cmd.Flags().String("value", "", "Value to pin on first write (default: current UTC datetime)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
