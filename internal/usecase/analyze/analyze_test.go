package analyze

import (
	"reflect"
	"testing"

	"github.com/carecompass/compass/internal/domain/plan"
)

func TestAnalyze_Emergency(t *testing.T) {
	a := New()

	queries := []string{
		"My father's SpO2 is dropping and he can't breathe",
		"EMERGENCY: he is choking on food",
		"patient unconscious what do i do",
	}
	for _, q := range queries {
		p := a.Analyze(q)
		if p.QueryType != plan.Emergency {
			t.Errorf("Analyze(%q).QueryType = %v, want emergency", q, p.QueryType)
		}
		if p.Strategy != plan.Focused {
			t.Errorf("Analyze(%q).Strategy = %v, want focused", q, p.Strategy)
		}
		if !p.EmergencyMode {
			t.Errorf("Analyze(%q) did not set EmergencyMode", q)
		}
	}
}

func TestAnalyze_Comparison(t *testing.T) {
	a := New()

	p := a.Analyze("What is BiPAP vs CPAP, and which is cheaper in India?")
	if p.QueryType != plan.Comparison {
		t.Errorf("QueryType = %v, want comparison", p.QueryType)
	}
	if p.Strategy != plan.MultiStage {
		t.Errorf("Strategy = %v, want multi-stage", p.Strategy)
	}
	if !p.IndiaPriority {
		t.Error("expected IndiaPriority")
	}
	if !p.NeedsCostInfo {
		t.Error("expected NeedsCostInfo")
	}
	if !p.RequiresMultiSource {
		t.Error("expected RequiresMultiSource")
	}
}

func TestAnalyze_EmergencyBeatsComparison(t *testing.T) {
	a := New()

	p := a.Analyze("cannot breathe: suction or bipap first?")
	if p.QueryType != plan.Emergency {
		t.Errorf("QueryType = %v, want emergency to win over comparison", p.QueryType)
	}
	if p.Strategy != plan.Focused {
		t.Errorf("Strategy = %v, want focused", p.Strategy)
	}
	if !p.RequiresMultiSource {
		t.Error("comparison flag still implies RequiresMultiSource")
	}
}

func TestAnalyze_ComplexByCategoryCount(t *testing.T) {
	a := New()

	p := a.Analyze("managing feeding tube, suction machine and medication schedule")
	if len(p.Categories) <= 2 {
		t.Fatalf("expected >2 categories, got %v", p.Categories)
	}
	if p.QueryType != plan.Complex {
		t.Errorf("QueryType = %v, want complex", p.QueryType)
	}
	if p.Strategy != plan.MultiStage {
		t.Errorf("Strategy = %v, want multi-stage", p.Strategy)
	}
	if !p.RequiresMultiSource {
		t.Error("expected RequiresMultiSource for complex query")
	}
}

func TestAnalyze_ComplexByLength(t *testing.T) {
	a := New()

	q := "my father was recently put on a ventilator and I want to know what daily checks I as the person looking after him should be doing at home?"
	p := a.Analyze(q)
	if p.QueryType != plan.Complex {
		t.Errorf("QueryType = %v, want complex for long question", p.QueryType)
	}
	// Length alone does not force multi-stage.
	if p.Strategy != plan.Broad {
		t.Errorf("Strategy = %v, want broad", p.Strategy)
	}
}

func TestAnalyze_Simple(t *testing.T) {
	a := New()

	p := a.Analyze("bipap mask cleaning")
	if p.QueryType != plan.Simple {
		t.Errorf("QueryType = %v, want simple", p.QueryType)
	}
	if p.Strategy != plan.Broad {
		t.Errorf("Strategy = %v, want broad", p.Strategy)
	}
	if p.RequiresMultiSource {
		t.Error("simple query must not require multi-source")
	}
}

func TestAnalyze_CategoriesNeverEmpty(t *testing.T) {
	a := New()

	for _, q := range []string{"", "hello there", "random words nothing matches"} {
		p := a.Analyze(q)
		if len(p.Categories) == 0 {
			t.Errorf("Analyze(%q).Categories is empty", q)
		}
		if len(p.Categories) == 1 && p.Categories[0] != "general" && q == "" {
			t.Errorf("Analyze(%q).Categories = %v, want [general]", q, p.Categories)
		}
	}

	p := a.Analyze("completely unrelated text")
	if !reflect.DeepEqual(p.Categories, []string{"general"}) {
		t.Errorf("expected [general] fallback, got %v", p.Categories)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := New()
	q := "how to manage secretions and breathing with a suction machine in india"

	first := a.Analyze(q)
	for i := 0; i < 5; i++ {
		if got := a.Analyze(q); !reflect.DeepEqual(got, first) {
			t.Fatalf("analysis not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestAnalyze_BareOrWordBounded(t *testing.T) {
	a := New()

	// "or" inside "doctor" must not trigger the comparison flag.
	p := a.Analyze("doctor suggested a ventilator")
	if p.QueryType == plan.Comparison {
		t.Error("comparison flag fired inside a larger word")
	}

	p = a.Analyze("suction machine or cough assist")
	if p.QueryType != plan.Comparison {
		t.Errorf("QueryType = %v, want comparison for bare or", p.QueryType)
	}
}

func TestAnalyze_TechnicalFlag(t *testing.T) {
	a := New()

	p := a.Analyze("steps to change a trach cannula")
	if !p.NeedsTechnicalDetails {
		t.Error("expected NeedsTechnicalDetails")
	}
}
