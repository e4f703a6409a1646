package report

import "github.com/askcarbuddy/carscout/pkg/models/domain"

// freeQuestionLimit caps how many dealer questions the free tier sees.
const freeQuestionLimit = 2

// Project applies tier gating to a report. The paid report passes
// through untouched; the free report keeps a fixed subset: buy score,
// at-a-glance, market position, recall/complaint counts, generation
// overview and the first two dealer questions. Everything the free tier
// shows also exists in the paid tier.
func Project(r domain.Report, paid bool) domain.Report {
	if paid {
		r.Tier = domain.TierPaid
		return r
	}

	r.Tier = domain.TierFree
	if len(r.Questions) > freeQuestionLimit {
		r.Questions = r.Questions[:freeQuestionLimit]
	}
	r.Reliability.KnownIssues = nil
	r.Reliability.Maintenance = nil
	r.PrepSteps = nil
	r.TestDrive = nil
	r.Negotiation = nil
	r.CostToOwn = nil
	r.ProTips = nil
	return r
}
