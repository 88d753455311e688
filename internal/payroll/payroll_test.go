package payroll

import (
	"testing"
	"time"

	"ledgerlens/internal/classifier"
)

func TestExtractName(t *testing.T) {
	cfg := classifier.DefaultConfig()

	cases := []struct {
		name string
		memo string
		want string
		ok   bool
	}{
		{"name_before_month", "Jane Lim Apr salary", "Jane Lim", true},
		{"strips_leading_verbs", "Being payment John Tan March", "John Tan", true},
		{"full_month_name", "Ahmad bin Rahim September", "Ahmad Bin Rahim", true},
		{"no_month_token", "Jane Lim bonus", "", false},
		{"month_first", "Apr Jane Lim", "", false},
		{"digits_in_name", "INV443 Apr", "", false},
		{"noise_token", "CPF levy Apr", "", false},
		{"transport_claim", "transport claim Mar", "", false},
		{"too_short", "Al Mar", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractName(tc.memo, cfg)
			if ok != tc.ok {
				t.Fatalf("ExtractName(%q) ok = %v, want %v (got %q)", tc.memo, ok, tc.ok, got)
			}
			if ok && tc.want != "" && got != tc.want {
				t.Errorf("ExtractName(%q) = %q, want %q", tc.memo, got, tc.want)
			}
		})
	}
}

func TestEstimateFromNet(t *testing.T) {
	t.Run("default_ratio", func(t *testing.T) {
		// Net 4,000.00 => gross 5,000.00, CPF 1,000.00
		est := NewEstimator().FromNet(400000)
		if est.NetPay != 400000 {
			t.Errorf("expected net 400000, got %d", est.NetPay)
		}
		if est.GrossSalary != 500000 {
			t.Errorf("expected gross 500000, got %d", est.GrossSalary)
		}
		if est.CPFAmount != 100000 {
			t.Errorf("expected cpf 100000, got %d", est.CPFAmount)
		}
	})

	t.Run("overridden_ratio", func(t *testing.T) {
		est := Estimator{NetToGrossRatio: 0.5}.FromNet(100000)
		if est.GrossSalary != 200000 {
			t.Errorf("expected gross 200000, got %d", est.GrossSalary)
		}
	})

	t.Run("invalid_ratio_falls_back", func(t *testing.T) {
		est := Estimator{NetToGrossRatio: 0}.FromNet(80000)
		if est.GrossSalary != 100000 {
			t.Errorf("expected default ratio fallback, got gross %d", est.GrossSalary)
		}
	})
}

func TestGenerateCode(t *testing.T) {
	if got := GenerateCode("acm", 7); got != "ACM-0007" {
		t.Errorf("expected ACM-0007, got %s", got)
	}
	if got := GenerateCode("", 1); got != "EMP-0001" {
		t.Errorf("expected EMP-0001, got %s", got)
	}
}

func TestCodePrefix(t *testing.T) {
	cases := []struct{ email, want string }{
		{"boss@acmecorp.sg", "ACM"},
		{"a@b.co", "BCO"},
		{"no-at-sign", "EMP"},
		{"trailing@", "EMP"},
	}
	for _, c := range cases {
		if got := CodePrefix(c.email); got != c.want {
			t.Errorf("CodePrefix(%q) = %q, want %q", c.email, got, c.want)
		}
	}
}

func TestPeriodMonth(t *testing.T) {
	cfg := classifier.DefaultConfig()

	if m, ok := PeriodMonth("John Tan Sept salary", cfg); !ok || m != time.September {
		t.Errorf("expected September, got %v %v", m, ok)
	}
	if m, ok := PeriodMonth("Being payment Jane Lim apr", cfg); !ok || m != time.April {
		t.Errorf("expected April, got %v %v", m, ok)
	}
	if _, ok := PeriodMonth("no month here", cfg); ok {
		t.Error("expected no period month")
	}
}

func TestPeriodYear(t *testing.T) {
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	if got := PeriodYear(jan, time.December); got != 2025 {
		t.Errorf("december paid in january: expected 2025, got %d", got)
	}
	if got := PeriodYear(jan, time.January); got != 2026 {
		t.Errorf("same month: expected 2026, got %d", got)
	}
	jul := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	if got := PeriodYear(jul, time.August); got != 2026 {
		t.Errorf("next month advance: expected 2026, got %d", got)
	}
}
