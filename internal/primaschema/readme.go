package primaschema

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// statusBadge renders the shields.io badge for the scheme status.
func statusBadge(s *Scheme) string {
	color := "blue"
	switch s.Status {
	case StatusValidated:
		color = "green"
	case StatusDeprecated, StatusWithdrawn:
		color = "red"
	}

	return fmt.Sprintf("[![Generic badge](https://img.shields.io/badge/STATUS-%s-%s.svg)]", s.Status, color)
}

// RenderReadme generates the derived documentation for a scheme. The
// validator later checks this file textually contains the scheme's name,
// amplicon size and version, which the title line guarantees.
func RenderReadme(s *Scheme) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %dbp %s\n\n", s.Name, s.AmpliconSize, s.Version)
	b.WriteString(statusBadge(s) + "\n\n")

	for _, cit := range s.Citations {
		fmt.Fprintf(&b, "> If you use this scheme please cite: %s\n\n", cit)
	}

	fmt.Fprintf(&b, "[primalscheme labs](https://labs.primalscheme.com/detail/%s/%d/%s)\n\n",
		s.Name, s.AmpliconSize, s.Version)

	if len(s.Notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, note := range s.Notes {
			b.WriteString(note + "\n\n")
		}
	}

	b.WriteString("## Metadata\n\n")
	if len(s.TargetOrganisms) > 0 {
		b.WriteString("**Target Organisms:**\n")
		for _, o := range s.TargetOrganisms {
			line := "- " + o.CommonName
			if o.NcbiTaxID != "" {
				line += fmt.Sprintf(" (Tax ID: %s)", o.NcbiTaxID)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	if s.DerivedFrom != "" {
		fmt.Fprintf(&b, "**Derived from:** %s\n\n", s.DerivedFrom)
	}
	if len(s.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(s.Tags, ", "))
	}

	if len(s.Contributors) > 0 {
		b.WriteString("## Contributors\n\n")
		for _, c := range s.Contributors {
			line := "- " + c.Name
			if c.Email != "" {
				line += fmt.Sprintf(" <%s>", c.Email)
			}
			if c.Orcid != "" {
				line += fmt.Sprintf(" (ORCID: %s)", c.Orcid)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if len(s.Vendors) > 0 {
		b.WriteString("## Vendors\n\n")
		for _, v := range s.Vendors {
			line := "- " + v.OrganisationName
			if v.KitName != "" {
				line += ": " + v.KitName
			}
			if v.HomePage != "" {
				line += fmt.Sprintf(" ([Website](%s))", v.HomePage)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Details\n\n")
	details, _ := json.MarshalIndent(s, "", "    ")
	fmt.Fprintf(&b, "```json\n%s\n```\n", details)

	if s.License == DefaultLicense {
		b.WriteString(licenseText)
	}

	return b.String()
}

// WriteReadme renders and atomically writes the README for a bundle.
func WriteReadme(dir string, s *Scheme) error {
	return atomicWriteFile(filepath.Join(dir, ReadmeFileName), []byte(RenderReadme(s)))
}

const licenseText = `
------------------------------------------------------------------------

This work is licensed under a [Creative Commons Attribution-ShareAlike 4.0 International License](http://creativecommons.org/licenses/by-sa/4.0/)

![](https://i.creativecommons.org/l/by-sa/4.0/88x31.png)
`
