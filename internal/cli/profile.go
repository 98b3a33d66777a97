package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Skufu/protocolrx/internal/risk"
)

// profileFile accepts YAML or JSON; ageOver18 must be stated explicitly.
type profileFile struct {
	Goal        string   `yaml:"goal"`
	Medications []string `yaml:"medications"`
	Conditions  []string `yaml:"conditions"`
	Allergies   []string `yaml:"allergies"`
	AgeOver18   *bool    `yaml:"ageOver18"`
}

// readProfile loads a profile from path, or from stdin when path is "-".
func readProfile(path string, stdin io.Reader) (risk.Profile, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return risk.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (risk.Profile, error) {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return risk.Profile{}, fmt.Errorf("parse profile: %w", err)
	}

	var problems []error
	if strings.TrimSpace(pf.Goal) == "" {
		problems = append(problems, errors.New("goal is required"))
	}
	if pf.AgeOver18 == nil {
		problems = append(problems, errors.New("ageOver18 is required"))
	}
	if len(problems) > 0 {
		return risk.Profile{}, fmt.Errorf("invalid profile: %w", errors.Join(problems...))
	}

	return risk.Profile{
		Goal:        pf.Goal,
		Medications: orEmpty(pf.Medications),
		Conditions:  orEmpty(pf.Conditions),
		Allergies:   orEmpty(pf.Allergies),
		AgeOver18:   *pf.AgeOver18,
	}, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
