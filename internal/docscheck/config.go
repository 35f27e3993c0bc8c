// SPDX-License-Identifier: MPL-2.0

package docscheck

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// canonicalInherit is the only INHERIT target the shared tooling manages.
const canonicalInherit = ".provide/foundry/base-mkdocs.yml"

// mkdocsConfig models the subset of mkdocs.yml the checks care about.
// INHERIT is a mkdocs extension key, uppercase in the file.
type mkdocsConfig struct {
	SiteName string `yaml:"site_name"`
	Inherit  string `yaml:"INHERIT"`
	DocsDir  string `yaml:"docs_dir"`
}

// checkConfig validates mkdocs.yml and reports whether the file exists.
func checkConfig(project string, exempt bool, pr *ProjectReport) bool {
	path := filepath.Join(project, "mkdocs.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		pr.Findings = append(pr.Findings, Finding{
			Check:    CheckConfig,
			Severity: SeverityError,
			File:     "mkdocs.yml",
			Message:  "missing mkdocs.yml",
		})
		return false
	}

	var cfg mkdocsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		pr.Findings = append(pr.Findings, Finding{
			Check:    CheckConfig,
			Severity: SeverityError,
			File:     "mkdocs.yml",
			Message:  fmt.Sprintf("not valid YAML: %v", err),
		})
		return true
	}

	if cfg.Inherit == "" {
		if !exempt {
			pr.Findings = append(pr.Findings, Finding{
				Check:    CheckConfig,
				Severity: SeverityError,
				File:     "mkdocs.yml",
				Message:  "missing INHERIT directive for the shared base configuration",
			})
		}
		if cfg.SiteName == "" {
			pr.Findings = append(pr.Findings, Finding{
				Check:    CheckConfig,
				Severity: SeverityError,
				File:     "mkdocs.yml",
				Message:  "missing site_name",
			})
		}
		return true
	}

	if cfg.Inherit != canonicalInherit {
		pr.Findings = append(pr.Findings, Finding{
			Check:    CheckConfig,
			Severity: SeverityError,
			File:     "mkdocs.yml",
			Message:  fmt.Sprintf("INHERIT must point at %s, not %s", canonicalInherit, cfg.Inherit),
		})
	}
	inherited := filepath.Join(project, filepath.FromSlash(cfg.Inherit))
	if _, err := os.Stat(inherited); err != nil {
		pr.Findings = append(pr.Findings, Finding{
			Check:    CheckConfig,
			Severity: SeverityError,
			File:     "mkdocs.yml",
			Message:  fmt.Sprintf("inherited configuration %s does not exist (run 'foundry init')", cfg.Inherit),
		})
	}
	return true
}

// checkStructure verifies the docs/ tree and its required pages.
func checkStructure(project string, requiredPages []string, pr *ProjectReport) {
	docsDir := filepath.Join(project, "docs")
	info, err := os.Stat(docsDir)
	if err != nil || !info.IsDir() {
		pr.Findings = append(pr.Findings, Finding{
			Check:    CheckStructure,
			Severity: SeverityError,
			Message:  "missing docs/ directory",
		})
		return
	}

	for _, page := range requiredPages {
		if _, err := os.Stat(filepath.Join(docsDir, filepath.FromSlash(page))); err != nil {
			pr.Findings = append(pr.Findings, Finding{
				Check:    CheckStructure,
				Severity: SeverityError,
				File:     "docs/" + page,
				Message:  "required page is missing",
			})
		}
	}
}
