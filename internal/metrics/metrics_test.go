package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Annallisboa/QA-app/internal/pipeline"
)

func TestHooksRecordStages(t *testing.T) {
	m := New(prometheus.NewRegistry())
	h := m.Hooks()
	ctx := context.Background()

	h.OnStageStart(ctx, pipeline.StageEvent{Stage: "itinerary"})
	h.OnStageDone(ctx, pipeline.StageEvent{Stage: "itinerary", Duration: time.Second})
	h.OnStageStart(ctx, pipeline.StageEvent{Stage: "mapping"})
	h.OnStageDone(ctx, pipeline.StageEvent{Stage: "mapping", Duration: time.Second, Err: errors.New("boom")})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageCalls.WithLabelValues("itinerary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageCalls.WithLabelValues("mapping")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.StageFailures.WithLabelValues("itinerary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageFailures.WithLabelValues("mapping")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.StageDuration))
}
