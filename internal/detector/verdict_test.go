package detector

import "testing"

func TestSeverity(t *testing.T) {
	cases := []struct {
		label string
		want  Tier
	}{
		{"Safe", TierFavorable},
		{"Safe ", TierFavorable},
		{" Legit", TierFavorable},
		{"Genuine", TierFavorable},
		{"Verified", TierFavorable},
		{"Reliable", TierFavorable},
		{"Human-written", TierFavorable},
		{"Buy", TierFavorable},
		{"Human", TierFavorable},
		{"Real", TierFavorable},
		{"Suspicious", TierCaution},
		{"Unverified", TierCaution},
		{"Mixed", TierCaution},
		{"Misleading", TierCaution},
		{"Be Careful", TierCaution},
		{"Biased", TierCaution},
		{"Fake", TierDanger},
		{"Scam", TierDanger},
		{"High Risk", TierDanger},
		{"Phishing", TierDanger},
		{"Avoid", TierDanger},
		{"AI-Generated", TierDanger},
		{"Deepfake", TierDanger},
		{"Satire", TierDanger},
		{"", TierDanger},
		{"totally-unknown", TierDanger},
	}

	for _, tc := range cases {
		if got := Severity(tc.label); got != tc.want {
			t.Errorf("Severity(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}
