package decision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomDeciderVerdicts(t *testing.T) {
	d := RandomDecider{}
	for i := 0; i < 50; i++ {
		v, err := d.CheckTransaction(context.Background(), "tx-1")
		require.NoError(t, err)
		assert.NotEmpty(t, v.Reason)
		if v.Compliant {
			assert.Equal(t, "Transaction follows AML guidelines", v.Reason)
		} else {
			assert.Equal(t, "Suspicious activity detected", v.Reason)
		}
	}
}

func TestRandomDeciderRiskTiers(t *testing.T) {
	d := RandomDecider{}
	for i := 0; i < 50; i++ {
		tier, err := d.AssessRisk(context.Background(), "KYC")
		require.NoError(t, err)
		assert.Contains(t, []string{RiskLow, RiskMedium, RiskHigh}, tier)
	}
}
