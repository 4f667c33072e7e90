package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/review", "200"))

	RecordHTTPRequest("GET", "/review", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/review", "200"))
	require.Equal(t, before+1, after)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(ReviewsCreated.WithLabelValues("franklin"))
	ReviewsCreated.WithLabelValues("franklin").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(ReviewsCreated.WithLabelValues("franklin")))

	ImageUploadBytes.Add(128)
	require.GreaterOrEqual(t, testutil.ToFloat64(ImageUploadBytes), float64(128))
}
