package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalisationDrops_CountsByKind(t *testing.T) {
	before := testutil.ToFloat64(NormalisationDrops.WithLabelValues("absence"))

	NormalisationDrops.WithLabelValues("absence").Add(2)

	assert.Equal(t, before+2, testutil.ToFloat64(NormalisationDrops.WithLabelValues("absence")))
}

func TestHandler_ServesPipelineMetrics(t *testing.T) {
	Generations.WithLabelValues(ResultSuccess).Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "boardpack_agenda_generations_total"))
}
