package service

import (
	"strings"

	"github.com/JothiRam-cm/elevix/internal/domain"
)

const DefaultIntentThreshold = 0.55

// historyWeight scales category scores taken from recent turns when the
// current utterance is a follow-up ("what about sick leave?").
const historyWeight = 0.5

// greetingCarryWeight scales greeting evidence that is folded into the
// domain category when a greeting merely prefixes a real question.
const greetingCarryWeight = 0.5

// strongSignal is the minimum score at which a category is considered
// matched by a strong signal. The greeting category can never claim a
// query once another category reaches it.
const strongSignal = 1.0

// signal is one lexical marker for a category. Single-word signals match
// whole tokens; multi-word signals match as substrings of the normalized
// utterance. Domain terms carry full weight, generic wh-phrases only half,
// so a query with an HR term is never claimed by the fact category on a
// wh-phrase alone.
type signal struct {
	phrase string
	weight float64
}

var hrSignals = []signal{
	{"leave", 1}, {"vacation", 1}, {"sick", 1}, {"policy", 1}, {"policies", 1},
	{"hr", 1}, {"benefit", 1}, {"benefits", 1}, {"payroll", 1}, {"salary", 1},
	{"approval", 1}, {"approvals", 1}, {"approve", 1}, {"approves", 1},
	{"holiday", 1}, {"holidays", 1}, {"sick days", 1},
	{"pto", 1}, {"reimbursement", 1}, {"maternity", 1}, {"paternity", 1},
	{"sabbatical", 1}, {"probation", 1}, {"resignation", 1}, {"appraisal", 1},
	{"onboarding", 1}, {"insurance", 1}, {"attendance", 1}, {"overtime", 1},
	{"bonus", 1}, {"allowance", 1}, {"notice period", 1}, {"work from home", 1},
	{"leave balance", 1},
}

var factSignals = []signal{
	{"weather", 1}, {"capital", 1}, {"population", 1}, {"president", 1},
	{"temperature", 1}, {"currency", 1}, {"news", 1}, {"prime minister", 1},
	{"who is", 0.5}, {"who's", 0.5}, {"what is", 0.5}, {"what's", 0.5},
	{"where is", 0.5}, {"when is", 0.5}, {"when was", 0.5}, {"how many", 0.5},
	{"how far", 0.5}, {"time in", 0.5},
}

var smallTalkSignals = []signal{
	{"hello", 1.5}, {"hi", 1.5}, {"hey", 1.5}, {"thanks", 1.5},
	{"thank you", 1.5}, {"good morning", 1.5}, {"good afternoon", 1.5},
	{"good evening", 1.5}, {"bye", 1.5}, {"goodbye", 1.5}, {"how are you", 1.5},
	{"greetings", 1.5}, {"ok", 1.5}, {"okay", 1.5}, {"nice to meet you", 1.5},
}

var followUpMarkers = []string{"what about", "how about", "and what", "same for", "also for"}

// Classifier maps an utterance plus recent history to an intent and a
// confidence in [0,1]. Pure: identical inputs always produce identical
// output, and it never errors; unclassifiable text degrades to AMBIGUOUS.
type Classifier struct {
	threshold float64
}

func NewClassifier(threshold float64) *Classifier {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultIntentThreshold
	}
	return &Classifier{threshold: threshold}
}

type categoryScores struct {
	hr        float64
	fact      float64
	smallTalk float64
}

func (c *Classifier) Classify(utterance string, history []domain.Message) (domain.Intent, float64) {
	text := normalize(utterance)
	if text == "" {
		return domain.IntentAmbiguous, 0
	}

	s := score(text)

	// A follow-up leans on what the conversation was about. Only the two
	// routed categories carry over; a greeting never redirects a follow-up.
	if isFollowUp(text) && len(history) > 0 {
		var prior strings.Builder
		for _, m := range history {
			prior.WriteString(normalize(m.Content))
			prior.WriteString(" ")
		}
		hs := score(prior.String())
		s.hr += hs.hr * historyWeight
		s.fact += hs.fact * historyWeight
	}

	// A greeting is conversational padding once the query carries a strong
	// domain signal. Its evidence counts toward the question it prefixes
	// instead of competing with it, so "Hello, how do I apply for PTO?"
	// routes like the PTO question, not like the hello.
	if s.smallTalk > 0 && (s.hr >= strongSignal || s.fact >= strongSignal) {
		carried := s.smallTalk * greetingCarryWeight
		if s.hr > s.fact {
			s.hr += carried
		} else if s.fact > s.hr {
			s.fact += carried
		}
		s.smallTalk = 0
	}

	intent, top, runnerUp := pick(s)
	if top == 0 || top == runnerUp {
		return domain.IntentAmbiguous, 0
	}

	confidence := top / (top + 1)
	if confidence < c.threshold {
		return domain.IntentAmbiguous, confidence
	}
	return intent, confidence
}

func score(text string) categoryScores {
	tokens := tokenSet(text)
	return categoryScores{
		hr:        matchScore(text, tokens, hrSignals),
		fact:      matchScore(text, tokens, factSignals),
		smallTalk: matchScore(text, tokens, smallTalkSignals),
	}
}

func matchScore(text string, tokens map[string]bool, signals []signal) float64 {
	var total float64
	for _, sig := range signals {
		if strings.Contains(sig.phrase, " ") {
			if strings.Contains(text, sig.phrase) {
				total += sig.weight
			}
		} else if tokens[sig.phrase] {
			total += sig.weight
		}
	}
	return total
}

func pick(s categoryScores) (domain.Intent, float64, float64) {
	type candidate struct {
		intent domain.Intent
		score  float64
	}
	best := candidate{domain.IntentHRPolicy, s.hr}
	second := candidate{domain.IntentGeneralFact, s.fact}
	if second.score > best.score {
		best, second = second, best
	}
	if s.smallTalk > best.score {
		second = best
		best = candidate{domain.IntentSmallTalk, s.smallTalk}
	} else if s.smallTalk > second.score {
		second = candidate{domain.IntentSmallTalk, s.smallTalk}
	}
	return best.intent, best.score, second.score
}

func isFollowUp(text string) bool {
	for _, m := range followUpMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func tokenSet(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, t := range strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	}) {
		tokens[strings.Trim(t, "'")] = true
	}
	return tokens
}
