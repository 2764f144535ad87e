// Package threats serves the live feed of currently circulating scams
// and misinformation campaigns. The catalog is mock data standing in
// for an aggregation backend.
package threats

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Severity grades the risk of a threat.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// SourceType records how a report entered the feed.
type SourceType string

const (
	SourceVerified    SourceType = "verified"
	SourceAggregated  SourceType = "aggregated"
	SourcePublicTrend SourceType = "public_trend"
)

// TrendStatus describes how a threat's volume is moving.
type TrendStatus string

const (
	TrendRising    TrendStatus = "rising"
	TrendStable    TrendStatus = "stable"
	TrendDeclining TrendStatus = "declining"
)

// RegionAll selects every region in List.
const RegionAll = "All"

// regionGlobal threats are included in every regional view.
const regionGlobal = "Global"

// Threat is one feed entry.
type Threat struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	Severity       Severity    `json:"severity"`
	Region         string      `json:"region"`
	Timestamp      time.Time   `json:"timestamp"`
	Source         string      `json:"source"`
	SourceType     SourceType  `json:"source_type"`
	WarningSigns   []string    `json:"warning_signs"`
	SafetyTips     []string    `json:"safety_tips"`
	ActionsToAvoid []string    `json:"actions_to_avoid"`
	TrendStatus    TrendStatus `json:"trend_status"`
}

// Feed holds the current threat catalog.
type Feed struct {
	mu      sync.RWMutex
	threats []Threat
	now     func() time.Time
}

// NewFeed seeds the catalog relative to the current time.
func NewFeed() *Feed {
	f := &Feed{now: time.Now}
	f.threats = seedThreats(f.now())
	return f
}

// List returns the threats visible from a region, newest first.
// Global threats appear in every regional view; RegionAll (or blank)
// returns everything.
func (f *Feed) List(region string) []Threat {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []Threat
	for _, t := range f.threats {
		if region == RegionAll || region == "" || t.Region == region || t.Region == regionGlobal {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// InjectAlert adds the simulated real-time alert if it is not already
// present, reporting whether the feed changed.
func (f *Feed) InjectAlert() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	alert := digitalArrestAlert(f.now())
	for _, t := range f.threats {
		if t.Title == alert.Title {
			return false
		}
	}
	f.threats = append(f.threats, alert)
	return true
}

func seedThreats(now time.Time) []Threat {
	return []Threat{
		{
			ID:          "t1",
			Title:       `Fake "Electricity Bill Unpaid" SMS`,
			Description: "Scammers are sending SMS claiming electricity will be cut off tonight due to unpaid bills. They ask users to call a fake number or download an APK.",
			Category:    "Scam",
			Severity:    SeverityHigh,
			Region:      "India",
			Timestamp:   now.Add(-30 * time.Minute),
			Source:      "Cyber Crime Portal",
			SourceType:  SourceVerified,
			WarningSigns: []string{
				`Urgency: "Tonight" or "Immediately"`,
				"Personal mobile number used for sending SMS",
				`Request to download "QuickSupport" or similar remote access apps`,
			},
			SafetyTips: []string{
				"Verify bill status on official electricity board app",
				"Never call the number in the SMS",
			},
			ActionsToAvoid: []string{
				"Downloading any APK sent via link",
				"Sharing OTPs",
			},
			TrendStatus: TrendRising,
		},
		{
			ID:          "t2",
			Title:       "Deepfake Stock Trading Videos",
			Description: "AI-generated videos of famous industrialists (e.g., Mukesh Ambani, Ratan Tata) promoting fake trading apps or telegram groups.",
			Category:    "Cyber Fraud",
			Severity:    SeverityHigh,
			Region:      regionGlobal,
			Timestamp:   now.Add(-4 * time.Hour),
			Source:      "Trend Analysis",
			SourceType:  SourceAggregated,
			WarningSigns: []string{
				"Lip sync looks slightly off",
				"Promises of guaranteed returns (e.g., double money in 1 day)",
				"Links redirect to WhatsApp/Telegram groups",
			},
			SafetyTips: []string{
				"Only trade on SEBI registered platforms",
				"Report the video immediately",
			},
			ActionsToAvoid: []string{
				"Joining random investment Telegram groups",
				"Transferring money to individual bank accounts",
			},
			TrendStatus: TrendRising,
		},
		{
			ID:          "t3",
			Title:       "Fake Election Schedule Forwards",
			Description: "Viral forwards circulating fake voting dates for upcoming state elections.",
			Category:    "Misinformation",
			Severity:    SeverityMedium,
			Region:      "India",
			Timestamp:   now.Add(-24 * time.Hour),
			Source:      "Fact Check Unit",
			SourceType:  SourceVerified,
			WarningSigns: []string{
				"No link to official Election Commission website",
				"Dates do not match news reports",
				"Formatting issues in the document image",
			},
			SafetyTips: []string{
				"Check eci.gov.in for official schedule",
				"Do not forward without verification",
			},
			ActionsToAvoid: []string{
				"Forwarding to family groups",
				"Planning travel based on unverified dates",
			},
			TrendStatus: TrendStable,
		},
		{
			ID:          "t4",
			Title:       `Part-time "Review Task" Job Scam`,
			Description: "Messages offering money for liking YouTube videos or reviewing hotels on Google Maps.",
			Category:    "Scam",
			Severity:    SeverityMedium,
			Region:      "India",
			Timestamp:   now.Add(-48 * time.Hour),
			Source:      "User Reports",
			SourceType:  SourcePublicTrend,
			WarningSigns: []string{
				"Easy money offers (e.g., ₹5000/day for 1 hour)",
				"Added to Telegram group after initial contact",
				"Asked to invest money to withdraw earnings (Prepaid Task)",
			},
			SafetyTips: []string{
				"Legitimate jobs do not ask you to pay to work",
				"Block and report the sender",
			},
			ActionsToAvoid: []string{
				`Paying any "security deposit"`,
				"Sharing bank details",
			},
			TrendStatus: TrendDeclining,
		},
	}
}

func digitalArrestAlert(now time.Time) Threat {
	return Threat{
		ID:          "new_" + strconv.FormatInt(now.UnixMilli(), 10),
		Title:       "New: Digital Arrest Scam Alert",
		Description: `Callers posing as Police/CBI claiming your parcel contains drugs and you are under "Digital Arrest".`,
		Category:    "Cyber Fraud",
		Severity:    SeverityHigh,
		Region:      "India",
		Timestamp:   now,
		Source:      "Real-time Monitor",
		SourceType:  SourceVerified,
		WarningSigns: []string{
			"Video call with fake police station background",
			"Threats of immediate arrest",
			"Demand to transfer money for verification",
		},
		SafetyTips: []string{
			"Disconnect immediately",
			"Call 1930",
		},
		ActionsToAvoid: []string{
			"Staying on video call",
			"Transferring funds",
		},
		TrendStatus: TrendRising,
	}
}
