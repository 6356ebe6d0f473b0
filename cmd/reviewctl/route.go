package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pranavupp12/review-platform/internal/app"
	"github.com/Pranavupp12/review-platform/internal/application/services"
)

var (
	routeLocation string
	routeRegion   string
)

func init() {
	routeCmd.Flags().StringVar(&routeLocation, "loc", "", "Explicit location chosen by the user")
	routeCmd.Flags().StringVar(&routeRegion, "region", "", "User region (country code)")
}

var routeCmd = &cobra.Command{
	Use:   "route <query...>",
	Short: "Show where a search query would navigate",
	Long: `Run a query through the intent resolver and print the navigation decision.

Examples:
  reviewctl route acme law
  reviewctl route "dentists in austin" --region US
  reviewctl route lawyers --loc Austin --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := services.RouteRequest{
			Query:            strings.Join(args, " "),
			ExplicitLocation: routeLocation,
			UserRegion:       routeRegion,
		}
		return withContainer(cmd.Context(), func(c *app.Container) error {
			decision := c.Resolver.Resolve(cmd.Context(), req)
			return printDecision(cmd.OutOrStdout(), decision, outputJSON)
		})
	},
}

type decisionOutput struct {
	Path   *string `json:"path"`
	Stage  string  `json:"stage"`
	Intent any     `json:"intent,omitempty"`
}

func printDecision(w io.Writer, decision *services.RouteDecision, asJSON bool) error {
	out := decisionOutput{Stage: string(services.StageNoDecision)}
	if decision != nil {
		out.Path = &decision.Path
		out.Stage = string(decision.Stage)
		if decision.Intent != nil {
			out.Intent = decision.Intent
		}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if out.Path == nil {
		_, err := fmt.Fprintf(w, "no decision (%s): render inline search\n", out.Stage)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", out.Stage, *out.Path)
	return err
}
