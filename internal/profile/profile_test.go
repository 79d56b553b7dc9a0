package profile

import "testing"

func TestDefault(t *testing.T) {
	t.Parallel()

	p := Default()

	if p.RemoteWeight <= 1.0 {
		t.Fatalf("remote weight must boost remote jobs, got %v", p.RemoteWeight)
	}
	if p.SalaryMin != 65000 {
		t.Fatalf("unexpected salary minimum: %d", p.SalaryMin)
	}
	if len(p.Skills.Primary) == 0 || len(p.Skills.Secondary) == 0 || len(p.Skills.Emerging) == 0 {
		t.Fatalf("all skill tiers must be populated")
	}
	if p.Region.Name == "" || len(p.Region.Aliases) == 0 {
		t.Fatalf("region must be populated")
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	sum := w.Skills + w.Location + w.Salary + w.Industry + w.Experience + w.Recency

	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("weights must sum to 1.0, got %v", sum)
	}
}

func TestFromMap(t *testing.T) {
	t.Parallel()

	p, err := FromMap(map[string]any{
		"salary-min": 80000,
		"region": map[string]any{
			"name":    "Austin",
			"aliases": []string{"Texas", "TX"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.SalaryMin != 80000 {
		t.Fatalf("expected override to win, got %d", p.SalaryMin)
	}
	if p.Region.Name != "Austin" {
		t.Fatalf("expected region override, got %s", p.Region.Name)
	}

	// untouched fields keep their defaults
	if p.RemoteWeight != 1.1 {
		t.Fatalf("expected default remote weight, got %v", p.RemoteWeight)
	}
	if len(p.Skills.Primary) == 0 {
		t.Fatalf("expected default skills to survive a partial override")
	}
}

func TestFromMapEmpty(t *testing.T) {
	t.Parallel()

	p, err := FromMap(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SalaryMin != Default().SalaryMin {
		t.Fatalf("expected the default profile")
	}
}
