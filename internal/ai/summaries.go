package ai

import (
	"context"

	"landlord/server/internal/models"
)

func (a *Adapter) PropertyInsights(ctx context.Context, properties []models.PropertySnapshot) Envelope {
	return a.Summarize(ctx, KindInsights, Section{Label: "Properties", Value: properties})
}

func (a *Adapter) MaintenanceRecommendations(ctx context.Context, property models.PropertySnapshot, history []models.MaintenanceSnapshot) Envelope {
	return a.Summarize(ctx, KindMaintenance,
		Section{Label: "Property", Value: property},
		Section{Label: "Maintenance History", Value: history},
	)
}

func (a *Adapter) RentAnalysis(ctx context.Context, property models.PropertySnapshot, market models.MarketSummary) Envelope {
	return a.Summarize(ctx, KindRent,
		Section{Label: "Property", Value: property},
		Section{Label: "Market Data", Value: market},
	)
}

func (a *Adapter) TenantCommunication(ctx context.Context, tenant models.TenantSnapshot, situation string) Envelope {
	return a.Summarize(ctx, KindCommunication,
		Section{Label: "Tenant", Value: tenant},
		Section{Label: "Context", Value: situation},
	)
}
