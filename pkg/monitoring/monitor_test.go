package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGrade_Outcomes(t *testing.T) {
	before := map[string]float64{}
	for _, o := range []string{"perfect", "zero", "partial", "empty"} {
		before[o] = testutil.ToFloat64(SubmissionsGraded.WithLabelValues(o))
	}

	ObserveGrade(5, 5)
	ObserveGrade(0, 5)
	ObserveGrade(2, 5)
	ObserveGrade(0, 0)

	for _, o := range []string{"perfect", "zero", "partial", "empty"} {
		assert.Equal(t, before[o]+1, testutil.ToFloat64(SubmissionsGraded.WithLabelValues(o)), o)
	}
}

func TestAddReconcileChanges_SkipsZero(t *testing.T) {
	before := testutil.ToFloat64(ReconcileChanges.WithLabelValues("question", "insert"))
	AddReconcileChanges("question", "insert", 0)
	AddReconcileChanges("question", "insert", 3)
	assert.Equal(t, before+3, testutil.ToFloat64(ReconcileChanges.WithLabelValues("question", "insert")))
}

func TestInit_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}
