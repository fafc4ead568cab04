package neo4jdb

import (
	"github.com/guillermoBallester/cyphercheck/internal/core/domain"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// planFromSummary extracts the root plan operator and server notifications.
func planFromSummary(summary neo4j.ResultSummary) *domain.PlanSummary {
	out := &domain.PlanSummary{}
	if summary == nil {
		return out
	}

	if plan := summary.Plan(); plan != nil {
		out.Operator = plan.Operator()
		out.Identifiers = plan.Identifiers()
	}

	for _, n := range summary.Notifications() {
		out.Notifications = append(out.Notifications, domain.Notification{
			Code:        n.Code(),
			Title:       n.Title(),
			Severity:    n.Severity(),
			Description: n.Description(),
		})
	}

	return out
}
