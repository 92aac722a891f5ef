package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(SummaryOutcomes.WithLabelValues("github", "reused"))
	RecordSummary("github", "reused")
	RecordSummary("github", "reused")
	assert.Equal(t, before+2, testutil.ToFloat64(SummaryOutcomes.WithLabelValues("github", "reused")))

	before = testutil.ToFloat64(ContentCreated.WithLabelValues("duplicate"))
	RecordContentCreated("duplicate")
	assert.Equal(t, before+1, testutil.ToFloat64(ContentCreated.WithLabelValues("duplicate")))

	before = testutil.ToFloat64(ShareResolutions.WithLabelValues("item", "wrong_url"))
	RecordShareResolution("item", "wrong_url")
	assert.Equal(t, before+1, testutil.ToFloat64(ShareResolutions.WithLabelValues("item", "wrong_url")))
}
