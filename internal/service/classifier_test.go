package service

import (
	"testing"

	"github.com/JothiRam-cm/elevix/internal/domain"
)

func TestClassifier_HRPolicy(t *testing.T) {
	c := NewClassifier(0)

	queries := []string{
		"What is the company's maternity leave policy?",
		"How many sick days do I get?",
		"Can I carry over my leave balance?",
		"Who approves payroll changes?",
	}
	for _, q := range queries {
		intent, conf := c.Classify(q, nil)
		if intent != domain.IntentHRPolicy {
			t.Errorf("%q: expected HR_POLICY, got %s (conf %f)", q, intent, conf)
		}
	}
}

func TestClassifier_GeneralFact(t *testing.T) {
	c := NewClassifier(0)

	queries := []string{
		"Who is the current president of France?",
		"What's the weather today?",
		"What is the capital of Japan?",
	}
	for _, q := range queries {
		intent, _ := c.Classify(q, nil)
		if intent != domain.IntentGeneralFact {
			t.Errorf("%q: expected GENERAL_FACT, got %s", q, intent)
		}
	}
}

func TestClassifier_SmallTalk(t *testing.T) {
	c := NewClassifier(0)

	queries := []string{"Hey there!", "hello", "thanks a lot", "good morning"}
	for _, q := range queries {
		intent, _ := c.Classify(q, nil)
		if intent != domain.IntentSmallTalk {
			t.Errorf("%q: expected SMALL_TALK, got %s", q, intent)
		}
	}
}

func TestClassifier_SingleWeakTokenIsAmbiguous(t *testing.T) {
	c := NewClassifier(0)

	intent, conf := c.Classify("policy", nil)
	if intent != domain.IntentAmbiguous {
		t.Errorf("expected AMBIGUOUS for a lone weak token, got %s (conf %f)", intent, conf)
	}
}

func TestClassifier_EmptyAndUnmatchable(t *testing.T) {
	c := NewClassifier(0)

	for _, q := range []string{"", "   ", "qwzx flrm"} {
		intent, conf := c.Classify(q, nil)
		if intent != domain.IntentAmbiguous {
			t.Errorf("%q: expected AMBIGUOUS, got %s", q, intent)
		}
		if conf < 0 || conf > 1 {
			t.Errorf("%q: confidence %f out of [0,1]", q, conf)
		}
	}
}

func TestClassifier_TieIsAmbiguous(t *testing.T) {
	c := NewClassifier(0)

	// HR signal and fact signal score equally here.
	intent, _ := c.Classify("does the weather affect leave", nil)
	if intent != domain.IntentAmbiguous {
		t.Errorf("expected AMBIGUOUS on tied categories, got %s", intent)
	}
}

func TestClassifier_FollowUpUsesHistory(t *testing.T) {
	c := NewClassifier(0)

	history := []domain.Message{
		{Role: "user", Content: "What is the annual leave policy?"},
		{Role: "agent", Content: "The leave policy allows 24 days of paid vacation per year."},
	}

	intent, _ := c.Classify("what about for managers?", history)
	if intent != domain.IntentHRPolicy {
		t.Errorf("expected follow-up to inherit HR_POLICY from history, got %s", intent)
	}

	// Same follow-up without history stays ambiguous.
	intent, _ = c.Classify("what about for managers?", nil)
	if intent != domain.IntentAmbiguous {
		t.Errorf("expected AMBIGUOUS without history, got %s", intent)
	}
}

func TestClassifier_Idempotent(t *testing.T) {
	c := NewClassifier(0)
	history := []domain.Message{{Role: "user", Content: "leave policy?"}}

	for _, q := range []string{"What about sick leave?", "hey", "who is the president", ""} {
		i1, c1 := c.Classify(q, history)
		i2, c2 := c.Classify(q, history)
		if i1 != i2 || c1 != c2 {
			t.Errorf("%q: classification not idempotent: (%s,%f) vs (%s,%f)", q, i1, c1, i2, c2)
		}
	}
}

func TestClassifier_MixedGreetingAndHRGoesHR(t *testing.T) {
	c := NewClassifier(0)

	intent, _ := c.Classify("Hi, what's our leave policy?", nil)
	if intent != domain.IntentHRPolicy {
		t.Errorf("expected HR_POLICY when a greeting precedes an HR question, got %s", intent)
	}
}

func TestClassifier_GreetingNeverClaimsDomainQuery(t *testing.T) {
	c := NewClassifier(0)

	// A single strong domain term must beat the greeting even though the
	// greeting weight alone is higher.
	hrQueries := []string{
		"Hello, how do I apply for PTO?",
		"Hi, when is payroll processed?",
		"Hey, can I get reimbursement for travel?",
	}
	for _, q := range hrQueries {
		intent, conf := c.Classify(q, nil)
		if intent != domain.IntentHRPolicy {
			t.Errorf("%q: expected HR_POLICY, got %s (conf %f)", q, intent, conf)
		}
	}

	intent, _ := c.Classify("hi, what's the weather", nil)
	if intent != domain.IntentGeneralFact {
		t.Errorf("expected GENERAL_FACT when a greeting precedes a fact question, got %s", intent)
	}
}

func TestClassifier_ConfidenceRange(t *testing.T) {
	c := NewClassifier(0)

	for _, q := range []string{
		"What is the company's maternity leave policy?", "hey", "policy",
		"who is the president of France", "", "random words entirely",
	} {
		_, conf := c.Classify(q, nil)
		if conf < 0 || conf > 1 {
			t.Errorf("%q: confidence %f out of [0,1]", q, conf)
		}
	}
}
