package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/boardpack/internal/core/domain"
	"github.com/custodia-labs/boardpack/internal/logger"
	"github.com/custodia-labs/boardpack/internal/metrics"
)

// Violation is a bullet carrying a numeric claim without evidence.
type Violation struct {
	Section domain.SectionKey
	Index   int
	Text    string
}

// LedgerReport summarises one evidence check.
type LedgerReport struct {
	// RemovedRefs counts empty or unknown references removed from bullets.
	RemovedRefs int

	// Violations lists numeric bullets left without any reference.
	Violations []Violation
}

// EvidenceLedger enforces that every numeric claim cites a source.
type EvidenceLedger struct {
	policy domain.EvidencePolicy
}

// NewEvidenceLedger creates a ledger with the given policy.
// An unrecognised policy behaves as strip.
func NewEvidenceLedger(policy domain.EvidencePolicy) *EvidenceLedger {
	if !policy.IsValid() {
		policy = domain.EvidenceStrip
	}
	return &EvidenceLedger{policy: policy}
}

// Check validates the references of every bullet in model against the
// artefact IDs the drafter was shown. Empty references and references to
// unknown artefacts are removed. A bullet containing a digit with no
// reference left is a violation: under strip it is removed from the
// model, under reject Check returns domain.ErrEvidenceMissing and leaves
// the model's bullets in place.
//
// In the actions section, numbers found in actionNumbers (the digit runs
// of the carry-over actions' own fields) are not claims: a manually raised
// action has no source document, yet its due date or title may hold digits.
func (l *EvidenceLedger) Check(
	model *domain.AgendaModel,
	known map[string]bool,
	actionNumbers map[string]bool,
) (LedgerReport, error) {
	var report LedgerReport

	for si := range model.Sections {
		section := &model.Sections[si]
		for bi := range section.Bullets {
			bullet := &section.Bullets[bi]
			kept := make([]domain.EvidenceRef, 0, len(bullet.EvidenceRefs))
			for _, ref := range bullet.EvidenceRefs {
				if ref.IsEmpty() || (ref.ArtefactID != nil && !known[*ref.ArtefactID]) {
					report.RemovedRefs++
					continue
				}
				kept = append(kept, ref)
			}
			bullet.EvidenceRefs = kept
			claim := HasNumericClaim(bullet.Text)
			if claim && section.Key == domain.SectionActions {
				claim = hasNumberOutside(bullet.Text, actionNumbers)
			}
			if len(kept) == 0 && claim {
				report.Violations = append(report.Violations, Violation{
					Section: section.Key,
					Index:   bi,
					Text:    bullet.Text,
				})
			}
		}
	}

	if report.RemovedRefs > 0 {
		metrics.EvidenceRefsRemoved.Add(float64(report.RemovedRefs))
		logger.Debug("removed %d invalid evidence reference(s)", report.RemovedRefs)
	}
	if len(report.Violations) == 0 {
		return report, nil
	}
	metrics.EvidenceViolations.Add(float64(len(report.Violations)))

	if l.policy == domain.EvidenceReject {
		first := report.Violations[0]
		return report, fmt.Errorf("%w: %d bullet(s), first in %s: %q",
			domain.ErrEvidenceMissing, len(report.Violations), first.Section, first.Text)
	}

	for _, v := range report.Violations {
		logger.Warn("stripped unsupported bullet from %s: %q", v.Section, v.Text)
	}
	stripViolations(model, report.Violations)
	return report, nil
}

func stripViolations(model *domain.AgendaModel, violations []Violation) {
	drop := make(map[domain.SectionKey]map[int]bool)
	for _, v := range violations {
		if drop[v.Section] == nil {
			drop[v.Section] = make(map[int]bool)
		}
		drop[v.Section][v.Index] = true
	}
	for si := range model.Sections {
		section := &model.Sections[si]
		indexes := drop[section.Key]
		if len(indexes) == 0 {
			continue
		}
		kept := section.Bullets[:0]
		for bi, b := range section.Bullets {
			if !indexes[bi] {
				kept = append(kept, b)
			}
		}
		section.Bullets = kept
	}
}

// HasNumericClaim reports whether text contains a digit.
func HasNumericClaim(text string) bool {
	for _, r := range text {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// NumberRuns returns the maximal digit runs of text with leading zeros
// removed, so "02" and "2" compare equal.
func NumberRuns(text string) []string {
	var runs []string
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		run := strings.TrimLeft(text[start:end], "0")
		if run == "" {
			run = "0"
		}
		runs = append(runs, run)
		start = -1
	}
	for i, r := range text {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return runs
}

// hasNumberOutside reports whether text holds a digit run not in allowed.
// Digits outside ASCII always count.
func hasNumberOutside(text string, allowed map[string]bool) bool {
	for _, r := range text {
		if unicode.IsDigit(r) && (r < '0' || r > '9') {
			return true
		}
	}
	for _, run := range NumberRuns(text) {
		if !allowed[run] {
			return true
		}
	}
	return false
}
