package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/routing"
)

// matchResult is the JSON printed by `folio match`.
type matchResult struct {
	Params       map[string]string `json:"params,omitempty"`
	Target       string            `json:"target"`
	Kind         string            `json:"kind"`
	Template     string            `json:"template,omitempty"`
	File         string            `json:"file,omitempty"`
	Status       string            `json:"status,omitempty"`
	RedirectURL  string            `json:"redirect_url,omitempty"`
	Taxonomy     string            `json:"taxonomy,omitempty"`
	RedirectCode int               `json:"redirect_code,omitempty"`
	Matched      bool              `json:"matched"`
}

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>...",
		Short: "Resolve paths against the route table and print the matches as JSON",
		Example: `  folio match /blog/hello
  folio match "/blog/draft?preview=1&token=$FOLIO_PREVIEW_SECRET"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := logger.NewWithConfig(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			c, err := buildCore(cmd.Context(), cfg, log, nil)
			if err != nil {
				return err
			}
			defer func() { _ = c.store.Close() }()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			for _, target := range args {
				m, err := c.router.Match(cmd.Context(), routing.NewRequest(http.MethodGet, target))
				if err != nil {
					return fmt.Errorf("match %s: %w", target, err)
				}
				if err := enc.Encode(describe(target, m)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func describe(target string, m *routing.RouteMatch) matchResult {
	res := matchResult{Target: target, Kind: "none"}
	if m == nil {
		return res
	}
	res.Matched = true
	res.Kind = string(m.Kind())
	res.Template = m.Template()
	res.Params = m.Params().Map()
	res.RedirectURL = m.RedirectURL()
	res.RedirectCode = m.RedirectCode()
	if item := m.Item(); item != nil {
		res.File = item.File
		res.Status = string(item.Status)
	}
	if tax := m.Taxonomy(); tax != nil {
		res.Taxonomy = tax.Name
	}
	return res
}
