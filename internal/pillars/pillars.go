// Package pillars maps calendar weeks onto the fixed thought-leadership
// topic matrix: 5 pillars, 5 angles each, one pair per ISO week.
package pillars

import "time"

// Pillar is a fixed topic category with its angle variants.
type Pillar struct {
	Name   string
	Angles []string
}

// Selection is the deterministic outcome for one date.
type Selection struct {
	Pillar      Pillar
	Angle       string
	WeekNumber  int
	PillarIndex int
	AngleIndex  int
}

var registry = []Pillar{
	{
		Name: "Why Hire an AI Dev Company",
		Angles: []string{
			"Healthcare industry — patient data processing and compliance automation",
			"Finance industry — fraud detection and transaction intelligence",
			"E-commerce — personalization engines and inventory prediction",
			"Cost savings and ROI over in-house AI team build-out",
			"Speed to market — weeks vs 18-month in-house ramp",
		},
	},
	{
		Name: "AI Integration for Existing Businesses",
		Angles: []string{
			"Automating repetitive back-office workflows without replacing core systems",
			"Adding AI to customer-facing products (chatbots, recommendations)",
			"Data pipeline modernization — structured and unstructured data",
			"Competitive advantage — integration-first before greenfield replacement",
			"E-commerce personalization and upsell intelligence",
		},
	},
	{
		Name: "Building AI Products from Scratch",
		Angles: []string{
			"The full product build — from architecture to launch",
			"Healthcare diagnostics and clinical decision support products",
			"Finance: AI-native lending, underwriting, and risk platforms",
			"Equity partnership model — we build for equity, no cash down",
			"Speed advantages of AI-augmented development pipelines",
		},
	},
	{
		Name: "Industry-Specific AI Solutions",
		Angles: []string{
			"Healthcare: HIPAA-compliant AI workflows and document processing",
			"Finance: Real-time fraud detection and compliance reporting",
			"E-commerce: Demand forecasting and dynamic pricing",
			"Professional services: Contract analysis and knowledge management",
			"Logistics: Route optimization and predictive maintenance",
		},
	},
	{
		Name: "Our Approach & Case Studies",
		Angles: []string{
			"How we scope projects before committing — no surprises after kickoff",
			"Portfolio showcase: what we built and the measurable outcomes",
			"The equity partnership model explained for serious founders",
			"Why we publish every commit — our portfolio is our build log",
			"How AI-augmented development compresses timelines without cutting corners",
		},
	},
}

// Select returns the pillar/angle pair for the given date.
//
// pillarIndex = week mod 5, angleIndex = (week / 5) mod 5, where week is the
// ISO-8601 week number (weeks start Monday; week 1 contains January 4th).
// The same date always yields the same pair, and the 25 combinations repeat
// on a 25-week cycle.
func Select(date time.Time) Selection {
	_, week := date.ISOWeek()
	pillarIndex := week % len(registry)
	angleIndex := (week / len(registry)) % len(registry[pillarIndex].Angles)
	pillar := registry[pillarIndex]
	return Selection{
		Pillar:      pillar,
		Angle:       pillar.Angles[angleIndex],
		WeekNumber:  week,
		PillarIndex: pillarIndex,
		AngleIndex:  angleIndex,
	}
}

// All exposes the full registry, used by prompt building and tests.
func All() []Pillar {
	return registry
}
