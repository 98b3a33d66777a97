// Package cli implements protocolctl, an offline front end to the
// recommendation engine.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skufu/protocolrx/internal/knowledge"
	"github.com/Skufu/protocolrx/internal/logging"
	"github.com/Skufu/protocolrx/internal/protocol"
	"github.com/Skufu/protocolrx/internal/recommend"
)

func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	kbPath string
	debug  bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "protocolctl",
		Short:        "Screen health profiles and generate supplement protocols",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.kbPath, "kb", "", "knowledge base YAML (defaults to the built-in catalog)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log engine activity to stderr")

	cmd.AddCommand(
		assessCmd(opts),
		generateCmd(opts),
		catalogCmd(opts),
		validateKBCmd(opts),
	)
	return cmd
}

func (o *rootOptions) knowledgeBase() (*knowledge.Base, error) {
	if o.kbPath == "" {
		kb := knowledge.Default()
		return kb, kb.Validate()
	}
	return knowledge.Load(o.kbPath)
}

func (o *rootOptions) service(stderr io.Writer) (*recommend.Service, error) {
	kb, err := o.knowledgeBase()
	if err != nil {
		return nil, err
	}

	logger := logging.Discard()
	if o.debug {
		logger = logging.NewWithWriter(stderr, "debug")
	}
	return recommend.New(recommend.Deps{
		Engine: protocol.NewEngine(kb),
		Logger: logger,
	}), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
