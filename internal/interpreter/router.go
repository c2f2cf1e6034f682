package interpreter

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Input is one message as seen by recognizers.
type Input struct {
	Raw   string
	Lower string
	// Now is the current instant in the user's timezone.
	Now time.Time
}

// Today returns the ISO date of Now.
func (in Input) Today() string { return in.Now.Format(dateLayout) }

const dateLayout = "2006-01-02"

// Recognizer is one row of the routing table: a trigger predicate, the
// extractor that builds a Mutation, and the usage hint returned when the
// trigger fires but a required field is missing. The executor picks the
// writer from the mutation's type.
type Recognizer struct {
	Intent  Intent
	Usage   string
	Matches func(Input) bool
	Extract func(Input) (Mutation, bool)
}

// Outcome is the result of routing one message.
type Outcome struct {
	// Intent is empty when no recognizer matched.
	Intent Intent
	// Mutation is nil when unmatched or when Hint is set.
	Mutation Mutation
	Hint     string
}

// Matched reports whether any recognizer claimed the message.
func (o Outcome) Matched() bool { return o.Intent != "" }

// Router evaluates recognizers in order; the first match wins.
type Router struct {
	recognizers []Recognizer
	now         func() time.Time
	loc         *time.Location
}

// NewRouter builds a router over the given table. A nil clock means time.Now.
func NewRouter(recognizers []Recognizer, loc *time.Location, now func() time.Time) *Router {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Router{recognizers: recognizers, now: now, loc: loc}
}

// NewDefaultRouter builds a router over DefaultRecognizers.
func NewDefaultRouter(loc *time.Location, now func() time.Time) *Router {
	return NewRouter(DefaultRecognizers(), loc, now)
}

// Route classifies a message. It never writes anything.
func (r *Router) Route(text string) Outcome {
	in := Input{Raw: text, Lower: strings.ToLower(text), Now: r.now().In(r.loc)}
	for _, rec := range r.recognizers {
		if !rec.Matches(in) {
			continue
		}
		m, ok := rec.Extract(in)
		if !ok {
			return Outcome{Intent: rec.Intent, Hint: rec.Usage}
		}
		return Outcome{Intent: rec.Intent, Mutation: m}
	}
	return Outcome{}
}

// Intents lists the intents of the router's table in evaluation order.
func (r *Router) Intents() []Intent {
	out := make([]Intent, len(r.recognizers))
	for i, rec := range r.recognizers {
		out[i] = rec.Intent
	}
	return out
}

func pattern(p *regexp.Regexp) func(Input) bool {
	return func(in Input) bool { return p.MatchString(in.Lower) }
}

func containsAny(words ...string) func(Input) bool {
	return func(in Input) bool {
		for _, w := range words {
			if strings.Contains(in.Lower, w) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...func(Input) bool) func(Input) bool {
	return func(in Input) bool {
		for _, p := range preds {
			if !p(in) {
				return false
			}
		}
		return true
	}
}

func anyOf(preds ...func(Input) bool) func(Input) bool {
	return func(in Input) bool {
		for _, p := range preds {
			if p(in) {
				return true
			}
		}
		return false
	}
}

func hasDigit(in Input) bool { return HasDigit(in.Raw) }

var (
	subscriptionTrigger = regexp.MustCompile(`(?i)\badd\s+sub(?:scription)?s?\b[\s:,-]*`)
	emiTrigger          = regexp.MustCompile(`(?i)\badd\s+(?:emi|loan)s?\b[\s:,-]*`)
	incomeTrigger       = regexp.MustCompile(`\b(?:salary|income)\b`)
	projectTrigger      = regexp.MustCompile(`(?i)^\s*add\s+project\b[\s:,-]*`)
	taskPattern         = regexp.MustCompile(`(?is)^\s*(?:add\s+)?(?:task|todo|to-do|reminder)\s*:\s*(.*)$`)
	expenseTrigger      = regexp.MustCompile(`\b(?:spent|expense|paid|kharcha|kharch)\b`)
	goalTrigger         = regexp.MustCompile(`(?i)^\s*add\s+goal\b[\s:,-]*`)
	nameTrigger         = regexp.MustCompile(`(?i)\b(?:my name is|call me)\b`)
	introTrigger        = regexp.MustCompile(`(?i)^\s*(?:(?:hi|hey|hello)[\s,!]+)?i am\s+([\p{L}][\p{L}.']*)`)
)

// notNames are words that follow "I am" in ordinary sentences.
var notNames = wordSet("tired", "fine", "good", "great", "okay", "ok", "busy", "hungry", "sick", "ill",
	"sad", "happy", "bored", "stressed", "sleepy", "free", "late", "ready", "back", "home", "here",
	"sorry", "not", "so", "very", "feeling", "going", "trying", "thinking", "done", "confused", "broke")

// introducesName accepts "I am Priya" but not "I am tired" or "i am going out":
// the word after "I am" must be capitalised and not an everyday state.
func introducesName(in Input) bool {
	m := introTrigger.FindStringSubmatch(in.Raw)
	if m == nil {
		return false
	}
	word := strings.Trim(m[1], ".'")
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r) && !notNames[strings.ToLower(word)]
}

// DefaultRecognizers returns the routing table. Order is significant: the
// first recognizer whose trigger fires claims the message. Commands anchored
// at the start of the message (add project, task:, add goal) come first so a
// keyword inside their text ("task: ask for a salary hike of 10%") cannot
// claim them for another intent.
func DefaultRecognizers() []Recognizer {
	return []Recognizer{
		{
			Intent:  IntentAddProject,
			Usage:   "Usage: add project <name> [<n>%] [status] [priority]. Example: add project DigiKaragir 65% building high",
			Matches: pattern(projectTrigger),
			Extract: extractProject,
		},
		{
			Intent:  IntentAddTask,
			Usage:   "Usage: task: <title> [urgent] [today|tomorrow]. Example: task: call the bank tomorrow",
			Matches: pattern(taskPattern),
			Extract: extractTask,
		},
		{
			Intent:  IntentAddGoal,
			Usage:   "Usage: add goal <title> [target]. Example: add goal save 5 lakh for a car",
			Matches: pattern(goalTrigger),
			Extract: extractGoal,
		},
		{
			Intent:  IntentAddSubscription,
			Usage:   "Usage: add sub <name> <amount> [yearly] [essential]. Example: add sub Netflix 649",
			Matches: pattern(subscriptionTrigger),
			Extract: extractSubscription,
		},
		{
			Intent:  IntentAddEMI,
			Usage:   "Usage: add emi <name> <amount> [due <day>] [<n> months] [lender]. Example: add emi Bike 4500 due 5th 18 months HDFC",
			Matches: pattern(emiTrigger),
			Extract: extractEMI,
		},
		{
			Intent:  IntentRecordIncome,
			Usage:   "Usage: my salary is <base> [overtime] [bonus] [pf] [tax]. Example: salary 85000 overtime 5000 bonus 0 pf 1800 tax 2000",
			Matches: allOf(pattern(incomeTrigger), hasDigit),
			Extract: extractIncome,
		},
		{
			Intent:  IntentRecordExpense,
			Usage:   "Usage: spent <amount> on <what>. Example: spent 500 on food",
			Matches: allOf(pattern(expenseTrigger), hasDigit),
			Extract: extractExpense,
		},
		{
			Intent:  IntentLogHealth,
			Usage:   "Usage: slept <hours> hours, <n> steps, <n> glasses water, <n> min gym",
			Matches: anyOf(containsAny("slept"), allOf(containsAny("steps"), containsAny("water"))),
			Extract: extractHealth,
		},
		{
			Intent:  IntentUpdateProfile,
			Usage:   "Usage: my name is <name>",
			Matches: anyOf(pattern(nameTrigger), introducesName),
			Extract: extractName,
		},
	}
}
