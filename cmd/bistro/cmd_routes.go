package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/app/routes"
	"github.com/masudmolla6/bistro-restaurant-server/internal/kernel"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/auth"
)

// bistro route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List every route with the gates in front of it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes(os.Stdout)
	},
}

func printRoutes(out io.Writer) error {
	// Only the table is needed, so nothing external is opened.
	issuer, err := auth.NewIssuer("route-list", 0)
	if err != nil {
		return err
	}
	r := kernel.NewRouter(routes.Dependencies{
		Store:  repositories.NewMemoryStore(),
		Issuer: issuer,
	}, kernel.Options{})

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPATH\tNAME\tGATES")
	fmt.Fprintln(w, "------\t----\t----\t-----")
	for _, ri := range r.Routes() {
		gates := strings.Join(ri.Gates, ",")
		if gates == "" {
			gates = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name, gates)
	}
	return w.Flush()
}
