package decision

import (
	"context"
	"math/rand"
)

// Risk tiers returned by AssessRisk.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Verdict is the outcome of a transaction compliance check.
type Verdict struct {
	Compliant bool
	Reason    string
}

// Decider produces compliance and risk verdicts. The reference
// implementation is a randomized placeholder; a real decision engine
// slots in behind the same interface.
type Decider interface {
	CheckTransaction(ctx context.Context, transactionID string) (Verdict, error)
	AssessRisk(ctx context.Context, assessmentType string) (string, error)
}

// RandomDecider returns unweighted random verdicts.
type RandomDecider struct{}

func (RandomDecider) CheckTransaction(_ context.Context, _ string) (Verdict, error) {
	if rand.Intn(2) == 0 {
		return Verdict{Compliant: true, Reason: "Transaction follows AML guidelines"}, nil
	}
	return Verdict{Compliant: false, Reason: "Suspicious activity detected"}, nil
}

func (RandomDecider) AssessRisk(_ context.Context, _ string) (string, error) {
	tiers := []string{RiskLow, RiskMedium, RiskHigh}
	return tiers[rand.Intn(len(tiers))], nil
}
