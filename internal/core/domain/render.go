package domain

import (
	"strconv"
	"strings"
)

// RenderHeader carries the period header block of a rendered agenda.
type RenderHeader struct {
	PeriodID PeriodID
	Label    string
	Version  int
	Status   AgendaStatus
}

// RenderMarkdown renders an agenda model as a Markdown-like document.
// It is a pure function of its inputs: the same header and model always
// produce byte-identical output.
//
// Layout:
//
//	# Board Agenda: <label>
//
//	- Period: <YYYY-MM>
//	- Version: <n> (<status>)
//	- Language: <lang>
//	- Facts only: yes|no
//
//	## <section title>
//
//	- <bullet>            (- **<bullet>** for key topics)
//	  - *Source: <artefact_id> (p. <page>): "<quote>"*
func RenderMarkdown(h RenderHeader, m AgendaModel) string {
	var b strings.Builder

	label := h.Label
	if label == "" {
		label = FormatLabel(h.PeriodID)
	}
	b.WriteString("# Board Agenda: ")
	b.WriteString(label)
	b.WriteString("\n\n")

	b.WriteString("- Period: ")
	b.WriteString(string(h.PeriodID))
	b.WriteString("\n")
	if h.Version > 0 {
		b.WriteString("- Version: ")
		b.WriteString(strconv.Itoa(h.Version))
		if h.Status != "" {
			b.WriteString(" (")
			b.WriteString(string(h.Status))
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	if m.Language != "" {
		b.WriteString("- Language: ")
		b.WriteString(m.Language)
		b.WriteString("\n")
	}
	b.WriteString("- Facts only: ")
	if m.FactsOnly {
		b.WriteString("yes")
	} else {
		b.WriteString("no")
	}
	b.WriteString("\n")

	for _, section := range m.Sections {
		title := section.Title
		if title == "" {
			title = section.Key.DefaultTitle()
		}
		b.WriteString("\n## ")
		b.WriteString(singleLine(title))
		b.WriteString("\n\n")

		for _, bullet := range section.Bullets {
			text := singleLine(bullet.Text)
			if bullet.KeyTopic {
				text = "**" + text + "**"
			}
			b.WriteString("- ")
			b.WriteString(text)
			b.WriteString("\n")

			for _, ref := range bullet.EvidenceRefs {
				if ref.IsEmpty() {
					continue
				}
				b.WriteString("  - *Source: ")
				b.WriteString(renderRef(ref))
				b.WriteString("*\n")
			}
		}
	}

	return b.String()
}

// Render renders the agenda with its own header.
func (a *Agenda) Render(label string) string {
	return RenderMarkdown(RenderHeader{
		PeriodID: a.PeriodID,
		Label:    label,
		Version:  a.Version,
		Status:   a.Status,
	}, a.Model)
}

// renderRef formats one evidence reference line body.
func renderRef(ref EvidenceRef) string {
	var b strings.Builder
	if ref.ArtefactID != nil && *ref.ArtefactID != "" {
		b.WriteString(*ref.ArtefactID)
	} else {
		b.WriteString("unknown")
	}
	switch {
	case ref.Page != nil:
		b.WriteString(" (p. ")
		b.WriteString(strconv.Itoa(*ref.Page))
		b.WriteString(")")
	case ref.Row != nil:
		b.WriteString(" (row ")
		b.WriteString(strconv.Itoa(*ref.Row))
		b.WriteString(")")
	}
	if ref.Quote != nil && *ref.Quote != "" {
		b.WriteString(`: "`)
		b.WriteString(singleLine(*ref.Quote))
		b.WriteString(`"`)
	}
	return b.String()
}

// singleLine collapses line breaks so bullet nesting stays intact.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(s), " ")
}
