// Package metrics holds the Prometheus instruments of the agenda pipeline.
// Instruments register with the default registry; Handler serves them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// NormalisationDrops counts malformed entries dropped during normalisation.
	NormalisationDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boardpack_normalisation_drops_total",
		Help: "Entries dropped while normalising extraction payloads, by extraction kind",
	}, []string{"kind"})

	// Extractions counts artefact extractions by kind and result.
	Extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boardpack_extractions_total",
		Help: "Artefact extractions by kind and result",
	}, []string{"kind", "result"})

	// ExtractionDuration tracks one artefact's extraction round-trip.
	ExtractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "boardpack_extraction_duration_seconds",
		Help:    "Artefact extraction duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"kind"})

	// Generations counts agenda generations by result.
	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boardpack_agenda_generations_total",
		Help: "Agenda generations by result",
	}, []string{"result"})

	// EvidenceViolations counts numeric bullets found without evidence.
	EvidenceViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpack_evidence_violations_total",
		Help: "Agenda bullets with numeric claims and no evidence reference",
	})

	// EvidenceRefsRemoved counts invalid evidence references removed from drafts.
	EvidenceRefsRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "boardpack_evidence_refs_removed_total",
		Help: "Empty or unknown evidence references removed from drafted agendas",
	})
)

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Handler returns an HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
