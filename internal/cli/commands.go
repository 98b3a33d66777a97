package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func assessCmd(root *rootOptions) *cobra.Command {
	var profilePath string

	c := &cobra.Command{
		Use:   "assess",
		Short: "Screen a profile for interactions and high-risk conditions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := readProfile(profilePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			svc, err := root.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.Assess(cmd.Context(), p))
		},
	}

	c.Flags().StringVarP(&profilePath, "profile", "p", "", "Profile file in YAML or JSON, or - for stdin (required)")
	_ = c.MarkFlagRequired("profile")
	return c
}

func generateCmd(root *rootOptions) *cobra.Command {
	var profilePath string

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate a protocol recommendation for a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := readProfile(profilePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			svc, err := root.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rec, err := svc.Generate(cmd.Context(), "", p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}

	c.Flags().StringVarP(&profilePath, "profile", "p", "", "Profile file in YAML or JSON, or - for stdin (required)")
	_ = c.MarkFlagRequired("profile")
	return c
}

func catalogCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the protocols in lookup order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := root.service(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.Catalog())
		},
	}
}

func validateKBCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-kb",
		Short: "Check the knowledge base tables (no evaluation)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, err := root.knowledgeBase()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d products, %d protocols, %d interaction tokens, %d high-risk keywords\n",
				len(kb.Products), len(kb.Protocols), len(kb.Interactions), len(kb.HighRiskKeywords))
			return nil
		},
	}
}
