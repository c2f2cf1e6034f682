package interpreter

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Every extractor here is total: "not found" is reported through the boolean
// (or a default value), never through an error or panic.

// numberExpr accepts a plain decimal or a properly grouped one ("1,50,000",
// "12,500.75"). A run like "85000,5000" is two numbers, not one.
const numberExpr = `(?:\d{1,3}(?:,\d{2,3}\b)+|\d+)(?:\.\d+)?`

// numberStart is what may precede a number: start of text, a non-alphanumeric
// rune, or a glued currency marker ("rs500"). Digits inside words like "Zee5"
// or "iPhone15" are part of the word.
const numberStart = `(?:^|[^\p{L}\p{N}_]|(?i:rs\.?|inr))`

var (
	numberPattern   = regexp.MustCompile(numberStart + `(` + numberExpr + `)`)
	currencyPattern = regexp.MustCompile(`(?i)(₹|\brs\.?|\binr\b|\brupees?\b)`)
)

// parseNumber strips thousands separators from a matched token.
func parseNumber(tok string) (float64, bool) {
	tok = strings.ReplaceAll(tok, ",", "")
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numberSpans returns the [start, end) offsets of every number in text.
func numberSpans(text string) [][2]int {
	var spans [][2]int
	for _, m := range numberPattern.FindAllStringSubmatchIndex(text, -1) {
		spans = append(spans, [2]int{m[2], m[3]})
	}
	return spans
}

// ExtractAmount returns the first decimal quantity in text. Currency markers
// and thousands separators ("₹1,50,000", "Rs. 649.50") are tolerated.
func ExtractAmount(text string) (float64, bool) {
	v, _, ok := amountSpan(text)
	return v, ok
}

// amountSpan is ExtractAmount plus the offsets of the token it read.
func amountSpan(text string) (float64, [2]int, bool) {
	m := numberPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return 0, [2]int{}, false
	}
	v, ok := parseNumber(text[m[2]:m[3]])
	return v, [2]int{m[2], m[3]}, ok
}

// withoutSpan blanks text[span[0]:span[1]].
func withoutSpan(text string, span [2]int) string {
	return text[:span[0]] + " " + text[span[1]:]
}

// ExtractNumbers returns every decimal quantity in text, in order of appearance.
func ExtractNumbers(text string) []float64 {
	var out []float64
	for _, sp := range numberSpans(text) {
		if v, ok := parseNumber(text[sp[0]:sp[1]]); ok {
			out = append(out, v)
		}
	}
	return out
}

// HasDigit reports whether text contains at least one ASCII digit.
func HasDigit(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}

type keywordPatterns struct {
	before *regexp.Regexp
	after  *regexp.Regexp
}

var keywordCache sync.Map // keyword -> keywordPatterns

func patternsFor(keyword string) keywordPatterns {
	if p, ok := keywordCache.Load(keyword); ok {
		return p.(keywordPatterns)
	}
	k := regexp.QuoteMeta(strings.ToLower(keyword))
	p := keywordPatterns{
		before: regexp.MustCompile(numberStart + `(` + numberExpr + `)\s*-?\s*` + k),
		after:  regexp.MustCompile(`\b` + k + `\s*(?:of\s+|:\s*|=\s*|-\s*)?(` + numberExpr + `)`),
	}
	keywordCache.Store(keyword, p)
	return p
}

// ExtractNamedValue looks for a number next to one of keywords. Keywords are
// tried in priority order; for each, a number immediately before the keyword
// ("7 hours") wins over one immediately after it ("slept 7").
func ExtractNamedValue(text string, keywords []string) (float64, bool) {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		p := patternsFor(kw)
		if m := p.before.FindStringSubmatch(lower); m != nil {
			if v, ok := parseNumber(m[1]); ok {
				return v, true
			}
		}
		if m := p.after.FindStringSubmatch(lower); m != nil {
			if v, ok := parseNumber(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// DefaultCategory is returned when no keyword in a table matches.
const DefaultCategory = "other"

// CategoryRule maps keywords to a category.
type CategoryRule struct {
	Category string
	Keywords []string
}

// CategoryTable is an ordered keyword -> category lookup. The first rule with
// a keyword starting at a word boundary in the text wins.
type CategoryTable struct {
	rules    []CategoryRule
	patterns []*regexp.Regexp
	fallback string
}

// NewCategoryTable compiles rules into a lookup table with the given fallback.
func NewCategoryTable(fallback string, rules ...CategoryRule) *CategoryTable {
	t := &CategoryTable{rules: rules, fallback: fallback}
	for _, r := range rules {
		quoted := make([]string, len(r.Keywords))
		for i, kw := range r.Keywords {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(kw))
		}
		t.patterns = append(t.patterns, regexp.MustCompile(`\b(?:`+strings.Join(quoted, "|")+`)`))
	}
	return t
}

// DetectCategory returns exactly one category for any input.
func DetectCategory(text string, table *CategoryTable) string {
	lower := strings.ToLower(text)
	for i, p := range table.patterns {
		if p.MatchString(lower) {
			return table.rules[i].Category
		}
	}
	return table.fallback
}

// SubscriptionCategories classifies subscription services.
var SubscriptionCategories = NewCategoryTable(DefaultCategory,
	CategoryRule{"entertainment", []string{"netflix", "prime video", "amazon prime", "hotstar", "disney", "spotify",
		"youtube", "jiocinema", "zee5", "sonyliv", "apple music", "gaana", "wynk", "apple tv"}},
	CategoryRule{"productivity", []string{"chatgpt", "openai", "claude", "notion", "github", "copilot", "canva",
		"figma", "adobe", "microsoft 365", "office 365", "grammarly", "cursor"}},
	CategoryRule{"cloud", []string{"icloud", "google one", "dropbox", "google drive", "aws", "vercel",
		"digitalocean", "hosting", "domain", "server"}},
	CategoryRule{"utilities", []string{"jio", "airtel", "vodafone", "vi postpaid", "broadband", "wifi",
		"internet", "mobile", "phone", "postpaid", "dth", "tata play"}},
	CategoryRule{"health", []string{"gym", "cult", "fitness", "healthify", "yoga", "fittr"}},
	CategoryRule{"education", []string{"coursera", "udemy", "duolingo", "course", "linkedin", "skillshare"}},
	CategoryRule{"reading", []string{"kindle", "audible", "newspaper", "magazine", "medium"}},
)

// ExpenseCategories classifies everyday spending.
var ExpenseCategories = NewCategoryTable(DefaultCategory,
	CategoryRule{"food", []string{"food", "lunch", "dinner", "breakfast", "swiggy", "zomato", "restaurant",
		"cafe", "coffee", "chai", "tea", "snack", "pizza", "burger", "biryani", "khana", "meal"}},
	CategoryRule{"groceries", []string{"grocer", "vegetable", "sabzi", "fruit", "milk", "blinkit", "zepto",
		"bigbasket", "dmart", "kirana", "ration"}},
	CategoryRule{"transport", []string{"uber", "ola", "rapido", "auto", "cab", "taxi", "metro", "bus", "train",
		"petrol", "diesel", "fuel", "parking", "toll", "flight"}},
	CategoryRule{"bills", []string{"bill", "electricity", "rent", "recharge", "wifi", "internet", "gas",
		"maintenance"}},
	CategoryRule{"health", []string{"medicine", "doctor", "pharmacy", "hospital", "medical", "chemist",
		"clinic", "gym"}},
	CategoryRule{"shopping", []string{"amazon", "flipkart", "myntra", "meesho", "ajio", "clothes", "shoes",
		"shopping", "gadget"}},
	CategoryRule{"entertainment", []string{"movie", "netflix", "concert", "game", "party", "pvr", "outing"}},
	CategoryRule{"education", []string{"book", "course", "fees", "tuition", "exam"}},
)

// GoalCategories classifies goals. Unmatched goals are personal.
var GoalCategories = NewCategoryTable("personal",
	CategoryRule{"fitness", []string{"run", "marathon", "gym", "weight", "fitness", "workout", "kg", "pushup",
		"push-up", "cycle", "swim"}},
	CategoryRule{"finance", []string{"save", "saving", "invest", "debt", "loan", "emi", "money", "lakh",
		"crore", "fund", "sip"}},
	CategoryRule{"learning", []string{"learn", "course", "read", "book", "study", "certification", "exam"}},
	CategoryRule{"career", []string{"job", "promotion", "career", "launch", "startup", "client", "revenue",
		"freelance"}},
	CategoryRule{"health", []string{"sleep", "diet", "water", "meditat", "health", "quit"}},
)

// KnownLenders lists bank and lender names, longest first so that
// "BAJAJ FINSERV" wins over "BAJAJ".
var KnownLenders = []string{
	"BANK OF BARODA", "BAJAJ FINSERV", "TATA CAPITAL", "HOME CREDIT", "IDFC FIRST", "UNION BANK",
	"YES BANK", "HDFC", "ICICI", "SBI", "AXIS", "KOTAK", "BAJAJ", "IDFC", "PNB", "CANARA",
	"INDUSIND", "LIC", "MUTHOOT", "FEDERAL", "AU BANK", "BOB",
}

// DetectLender returns the first known lender that appears as a whole word in
// text, upper-cased.
func DetectLender(text string, knownLenders []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, l := range knownLenders {
		p := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(l)) + `\b`)
		if p.MatchString(lower) {
			return strings.ToUpper(l), true
		}
	}
	return "", false
}

// TitleCase upper-cases the first letter of every word and collapses runs of
// whitespace. Display only; never used for matching.
func TitleCase(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Ordinal renders a day of month as 1st, 2nd, 3rd, 4th, 11th, 21st...
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}

// stripWords removes currency markers, the given patterns and the given stop
// words from text and returns what is left, space-joined. Numbers are kept:
// callers cut the amount they consumed with withoutSpan first.
func stripWords(text string, stop map[string]bool, patterns ...*regexp.Regexp) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, " ")
	}
	text = currencyPattern.ReplaceAllString(text, " ")

	var kept []string
	for _, w := range strings.Fields(text) {
		clean := strings.Trim(w, ",.;:!?-/()[]\"'")
		if clean == "" || stop[strings.ToLower(clean)] {
			continue
		}
		kept = append(kept, clean)
	}
	return strings.Join(kept, " ")
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
