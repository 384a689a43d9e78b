package signals

import (
	"homequest/internal/model"
)

type tempIntent struct {
	temp   model.LeadTemperature
	intent model.IntentBand
}

// recommendations is the deterministic (temperature, intent) → outreach
// guidance table. The wording is presentation copy, not contract.
var recommendations = map[tempIntent]model.Recommendation{
	{model.TemperatureHot, model.IntentVeryHigh}: {
		Priority:        "immediate",
		Channels:        []string{"phone", "email"},
		NurtureStrategy: "Direct handoff to a buyer specialist; this lead is ready to transact.",
		NextSteps:       []string{"Call within one business day", "Schedule an expert consultation", "Prepare a personalized next-steps plan"},
	},
	{model.TemperatureHot, model.IntentHigh}: {
		Priority:        "immediate",
		Channels:        []string{"phone", "email"},
		NurtureStrategy: "High-touch outreach while momentum is strong.",
		NextSteps:       []string{"Call within two business days", "Offer a readiness consultation"},
	},
	{model.TemperatureHot, model.IntentMedium}: {
		Priority:        "high",
		Channels:        []string{"email", "in_app"},
		NurtureStrategy: "Strong overall activity but intent signals lag; surface concrete next actions.",
		NextSteps:       []string{"Send an affordability-calculator prompt", "Invite to connect with a loan officer"},
	},
	{model.TemperatureHot, model.IntentLow}: {
		Priority:        "high",
		Channels:        []string{"in_app"},
		NurtureStrategy: "Heavy platform use without transaction intent; nurture toward goal setting.",
		NextSteps:       []string{"Prompt for a purchase timeline", "Highlight expert-contact options"},
	},
	{model.TemperatureWarm, model.IntentVeryHigh}: {
		Priority:        "immediate",
		Channels:        []string{"phone", "email"},
		NurtureStrategy: "Intent outpaces overall engagement; act on the urgency before it cools.",
		NextSteps:       []string{"Call within two business days", "Fast-track expert matching"},
	},
	{model.TemperatureWarm, model.IntentHigh}: {
		Priority:        "high",
		Channels:        []string{"email", "phone"},
		NurtureStrategy: "Warm and leaning in; a personal touch should convert.",
		NextSteps:       []string{"Personalized email from an advisor", "Offer a timeline-planning session"},
	},
	{model.TemperatureWarm, model.IntentMedium}: {
		Priority:        "medium",
		Channels:        []string{"email", "in_app"},
		NurtureStrategy: "Steady progress; keep the learning momentum and introduce readiness tools.",
		NextSteps:       []string{"Weekly progress digest", "Recommend the next module"},
	},
	{model.TemperatureWarm, model.IntentLow}: {
		Priority:        "medium",
		Channels:        []string{"in_app"},
		NurtureStrategy: "Engaged learner, no transaction signals yet; keep nurturing.",
		NextSteps:       []string{"Gamified streak reminders", "Introduce the affordability calculator"},
	},
	{model.TemperatureCold, model.IntentVeryHigh}: {
		Priority:        "high",
		Channels:        []string{"phone", "email"},
		NurtureStrategy: "Sparse activity but sharp intent spikes; reach out while the spike lasts.",
		NextSteps:       []string{"Call to qualify urgency", "Offer expert contact directly"},
	},
	{model.TemperatureCold, model.IntentHigh}: {
		Priority:        "medium",
		Channels:        []string{"email"},
		NurtureStrategy: "Low engagement with real intent; lower the effort needed to act.",
		NextSteps:       []string{"One-click expert-contact email", "Short re-engagement sequence"},
	},
	{model.TemperatureCold, model.IntentMedium}: {
		Priority:        "low",
		Channels:        []string{"email", "in_app"},
		NurtureStrategy: "Intermittent user; rebuild the learning habit first.",
		NextSteps:       []string{"Re-engagement email series", "Suggest a short lesson"},
	},
	{model.TemperatureCold, model.IntentLow}: {
		Priority:        "low",
		Channels:        []string{"email"},
		NurtureStrategy: "Minimal activity; stay on a light-touch drip.",
		NextSteps:       []string{"Monthly newsletter", "Seasonal market updates"},
	},
	{model.TemperatureDormant, model.IntentVeryHigh}: {
		Priority:        "high",
		Channels:        []string{"phone"},
		NurtureStrategy: "Dormant overall but urgent signals present; verify before investing outreach.",
		NextSteps:       []string{"Qualification call", "Confirm timeline is still real"},
	},
	{model.TemperatureDormant, model.IntentHigh}: {
		Priority:        "medium",
		Channels:        []string{"email"},
		NurtureStrategy: "Mostly inactive with residual intent; one targeted attempt.",
		NextSteps:       []string{"Single tailored re-engagement email"},
	},
	{model.TemperatureDormant, model.IntentMedium}: {
		Priority:        "low",
		Channels:        []string{"email"},
		NurtureStrategy: "Inactive; automated win-back only.",
		NextSteps:       []string{"Win-back campaign"},
	},
	{model.TemperatureDormant, model.IntentLow}: {
		Priority:        "nurture",
		Channels:        []string{"email"},
		NurtureStrategy: "No meaningful signals; lowest-cost drip until activity resumes.",
		NextSteps:       []string{"Quarterly check-in email"},
	},
}

// Recommend returns the outreach guidance for a (temperature, intent) pair.
// Every pair the classifier can produce has an entry; the zero-value
// fallback exists only to keep callers total.
func Recommend(temp model.LeadTemperature, intent model.IntentBand) *model.Recommendation {
	if rec, ok := recommendations[tempIntent{temp, intent}]; ok {
		out := rec
		return &out
	}
	return &model.Recommendation{
		Priority:        "nurture",
		Channels:        []string{"email"},
		NurtureStrategy: "Unmapped classification; default to low-cost nurture.",
		NextSteps:       []string{"Review classification mapping"},
	}
}
