package extraction

import (
	"strings"

	"github.com/custodia-labs/boardpack/internal/core/domain"
)

// Finance defaults applied when a metric does not say otherwise.
const (
	DefaultCurrency    = "NZD"
	DefaultPeriodScope = "month"
)

// NormaliseFinance reads finance metrics, highlights and outliers.
// Metric values are coerced to numbers; metrics without a name or a
// parseable value are dropped.
func NormaliseFinance(raw map[string]any, artefactID string) Result[domain.FinancePayload] {
	f := fields(raw)
	res := Result[domain.FinancePayload]{
		Record: domain.FinancePayload{
			Metrics:    []domain.FinanceMetric{},
			Highlights: []domain.TextFact{},
			Outliers:   []domain.TextFact{},
		},
	}

	docCurrency, _ := f.str("currency")
	if items, ok := f.list("metrics", "figures", "kpis"); ok {
		for i, item := range items {
			m, dropReason := financeMetric(item, artefactID, docCurrency)
			if dropReason != "" {
				res.add(Drop{Field: "metrics", Index: i, Reason: dropReason})
				continue
			}
			res.Record.Metrics = append(res.Record.Metrics, m)
		}
	}

	if items, ok := f.list("highlights"); ok {
		facts, drops := textFacts(items, "highlights", artefactID, "summary", "description")
		res.Record.Highlights = facts
		res.add(drops...)
	}
	if items, ok := f.list("outliers", "anomalies"); ok {
		facts, drops := textFacts(items, "outliers", artefactID, "summary", "description")
		res.Record.Outliers = facts
		res.add(drops...)
	}

	return res
}

func financeMetric(item any, artefactID, docCurrency string) (domain.FinanceMetric, string) {
	f, ok := asFields(item)
	if !ok {
		return domain.FinanceMetric{}, "not an object"
	}
	name, ok := f.str("name", "metric", "label")
	if !ok {
		return domain.FinanceMetric{}, "missing name"
	}
	value, present, ok := f.num("value", "amount", "actual")
	if !present {
		return domain.FinanceMetric{}, "missing value"
	}
	if !ok {
		return domain.FinanceMetric{}, "value is not numeric"
	}

	currency, ok := f.str("currency", "ccy")
	switch {
	case ok:
		currency = strings.ToUpper(currency)
	case docCurrency != "":
		currency = strings.ToUpper(docCurrency)
	default:
		currency = DefaultCurrency
	}
	scope, ok := f.str("period_scope", "scope", "period")
	if !ok {
		scope = DefaultPeriodScope
	}

	return domain.FinanceMetric{
		Name:        name,
		Value:       value,
		Currency:    currency,
		PeriodScope: strings.ToLower(scope),
		Source:      f.ref(artefactID),
	}, ""
}
