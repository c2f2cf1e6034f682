package interpreter

import (
	"math"
	"regexp"
	"strings"

	"github.com/somnathbasteai/jeni-bot/internal/models"
)

// DefaultEMITermPadding is added to the remaining months to estimate the total
// term when a message gives only what is left.
const DefaultEMITermPadding = 6

var (
	yearlyWords       = regexp.MustCompile(`(?i)(?:\b(?:yearly|annual|annually|per\s+year|a\s+year)\b|/\s*(?:yr|year)\b)`)
	essentialWord     = regexp.MustCompile(`(?i)\bessential\b`)
	subscriptionNoise = wordSet("monthly", "month", "mo", "per", "a", "yearly", "annual", "annually", "year", "yr",
		"essential", "for", "at", "of", "/month", "/mo", "/yr", "pm")

	emiDuePattern    = regexp.MustCompile(`(?i)\bdue\s*(?:on\s*)?(?:the\s*)?(\d{1,2})(?:st|nd|rd|th)?\b`)
	emiMonthsPattern = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:months?|mos?|mnths?)\b`)
	emiNoise         = wordSet("emi", "emis", "loan", "from", "with", "at", "of", "per", "month", "monthly", "for", "left", "remaining")

	progressPattern = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(\d{1,3})\s*%`)
	projectStatuses = []struct {
		pattern *regexp.Regexp
		status  models.ProjectStatus
	}{
		{regexp.MustCompile(`(?i)\b(?:building|build|in\s+progress)\b`), models.ProjectStatusBuilding},
		{regexp.MustCompile(`(?i)\b(?:paused|pause|on\s+hold)\b`), models.ProjectStatusPaused},
		{regexp.MustCompile(`(?i)\b(?:planned|planning|idea)\b`), models.ProjectStatusPlanned},
		{regexp.MustCompile(`(?i)\bactive\b`), models.ProjectStatusActive},
	}
	priorityPattern = regexp.MustCompile(`(?i)\b(critical|high|medium|low)\b(?:\s+priority)?`)
	projectNoise    = wordSet("priority", "progress", "status", "done", "complete", "completed", "at")

	urgentWord   = regexp.MustCompile(`(?i)\burgent\b`)
	todayWord    = regexp.MustCompile(`(?i)\btoday\b`)
	tomorrowWord = regexp.MustCompile(`(?i)\btomorrow\b`)

	expenseNoise = wordSet("spent", "spend", "expense", "paid", "kharcha", "kharch", "kiya", "kiye", "on", "for",
		"rs", "inr", "rupees", "rupee", "bucks", "i", "today", "just", "have", "had", "add")

	sleepKeywords    = []string{"hours", "hrs", "hour", "hr", "slept", "sleep"}
	stepKeywords     = []string{"steps", "step"}
	waterKeywords    = []string{"glasses", "glass", "water"}
	exerciseKeywords = []string{"minutes", "mins", "min", "gym", "exercise", "workout", "walk"}
	exerciseTypes    = regexp.MustCompile(`(?i)\b(gym|yoga|run|running|walk|walking|cycling|swim|swimming|workout|cricket|football|badminton)\b`)

	nameCapture  = regexp.MustCompile(`(?i)\b(?:my name is|call me)\s+([\p{L}][\p{L}.' ]*)`)
	introCapture = regexp.MustCompile(`(?i)^\s*(?:(?:hi|hey|hello)[\s,!]+)?i am\s+([\p{L}][\p{L}.' ]*)`)
	nameStop     = wordSet("and", "from", "here", "but", "so", "the", "a", "an")
)

func extractSubscription(in Input) (Mutation, bool) {
	rest := subscriptionTrigger.ReplaceAllString(in.Raw, " ")
	amount, span, ok := amountSpan(rest)
	if !ok || amount <= 0 {
		return nil, false
	}

	cycle := models.BillingCycleMonthly
	if yearlyWords.MatchString(rest) {
		cycle = models.BillingCycleYearly
	}

	name := TitleCase(stripWords(withoutSpan(rest, span), subscriptionNoise, yearlyWords, essentialWord))
	if name == "" {
		return nil, false
	}

	return AddSubscription{
		Name:      name,
		Amount:    amount,
		Cycle:     cycle,
		Category:  DetectCategory(rest, SubscriptionCategories),
		Essential: essentialWord.MatchString(rest),
		AutoRenew: true,
	}, true
}

func extractEMI(in Input) (Mutation, bool) {
	rest := emiTrigger.ReplaceAllString(in.Raw, " ")

	dueDay := 1
	if m := emiDuePattern.FindStringSubmatch(rest); m != nil {
		if d, ok := parseNumber(m[1]); ok && d >= 1 && d <= 31 {
			dueDay = int(d)
		}
		rest = emiDuePattern.ReplaceAllString(rest, " ")
	}

	remaining := 12
	if m := emiMonthsPattern.FindStringSubmatch(rest); m != nil {
		if n, ok := parseNumber(m[1]); ok && n > 0 {
			remaining = int(n)
		}
		rest = emiMonthsPattern.ReplaceAllString(rest, " ")
	}

	lender, hasLender := DetectLender(rest, KnownLenders)
	if hasLender {
		rest = regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(lender)+`\b`).ReplaceAllString(rest, " ")
	}

	amount, span, ok := amountSpan(rest)
	if !ok || amount <= 0 {
		return nil, false
	}

	name := TitleCase(stripWords(withoutSpan(rest, span), emiNoise))
	if name == "" {
		name = "EMI"
	}

	return AddEMI{
		Name:            name,
		Lender:          lender,
		Amount:          amount,
		DueDay:          dueDay,
		RemainingMonths: remaining,
		TotalMonths:     remaining + DefaultEMITermPadding,
		AutoDebit:       true,
	}, true
}

// extractIncome reads amounts positionally: base, overtime, bonus, PF, tax.
func extractIncome(in Input) (Mutation, bool) {
	nums := ExtractNumbers(in.Raw)
	if len(nums) == 0 || nums[0] <= 0 {
		return nil, false
	}
	at := func(i int) float64 {
		if i < len(nums) {
			return nums[i]
		}
		return 0
	}
	return RecordIncome{
		Month:    in.Now.Month().String(),
		Year:     in.Now.Year(),
		Base:     at(0),
		Overtime: at(1),
		Bonus:    at(2),
		PF:       at(3),
		Tax:      at(4),
	}, true
}

func extractProject(in Input) (Mutation, bool) {
	rest := projectTrigger.ReplaceAllString(in.Raw, " ")

	progress := 0
	if m := progressPattern.FindStringSubmatch(rest); m != nil {
		if p, ok := parseNumber(m[1]); ok {
			progress = models.ClampProgress(int(p))
		}
		rest = progressPattern.ReplaceAllString(rest, " ")
	}

	status := models.ProjectStatusActive
	for _, s := range projectStatuses {
		if s.pattern.MatchString(rest) {
			status = s.status
			rest = s.pattern.ReplaceAllString(rest, " ")
			break
		}
	}

	priority := models.PriorityMedium
	if m := priorityPattern.FindStringSubmatch(rest); m != nil {
		priority = models.Priority(strings.ToLower(m[1]))
		rest = priorityPattern.ReplaceAllString(rest, " ")
	}

	name := TitleCase(stripWords(rest, projectNoise))
	if name == "" {
		return nil, false
	}

	return AddProject{
		Name:     name,
		Progress: progress,
		Status:   status,
		Priority: priority,
	}, true
}

func extractTask(in Input) (Mutation, bool) {
	m := taskPattern.FindStringSubmatch(in.Raw)
	if m == nil {
		return nil, false
	}
	title := strings.Join(strings.Fields(m[1]), " ")
	if title == "" {
		return nil, false
	}

	task := AddTask{Title: title, Priority: models.PriorityMedium}
	if urgentWord.MatchString(title) {
		task.Priority = models.PriorityHigh
	}
	switch {
	case tomorrowWord.MatchString(title):
		due := in.Now.AddDate(0, 0, 1).Format(dateLayout)
		task.DueDate = &due
	case todayWord.MatchString(title):
		due := in.Today()
		task.DueDate = &due
	}
	return task, true
}

func extractExpense(in Input) (Mutation, bool) {
	amount, span, ok := amountSpan(in.Raw)
	if !ok || amount <= 0 {
		return nil, false
	}
	category := DetectCategory(in.Raw, ExpenseCategories)
	description := stripWords(withoutSpan(in.Raw, span), expenseNoise)
	if description == "" {
		description = category
	}
	return RecordExpense{
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        in.Today(),
	}, true
}

func extractHealth(in Input) (Mutation, bool) {
	var patch models.HealthPatch

	if v, ok := ExtractNamedValue(in.Raw, sleepKeywords); ok && v > 0 && v <= 24 {
		patch.SleepHours = &v
	}
	if v, ok := ExtractNamedValue(in.Raw, stepKeywords); ok {
		n := int(math.Round(v))
		patch.Steps = &n
	}
	if v, ok := ExtractNamedValue(in.Raw, waterKeywords); ok {
		n := int(math.Round(v))
		patch.WaterGlasses = &n
	}
	if v, ok := ExtractNamedValue(in.Raw, exerciseKeywords); ok && v > 0 {
		n := int(math.Round(v))
		patch.ExerciseMinutes = &n
		if m := exerciseTypes.FindStringSubmatch(in.Raw); m != nil {
			kind := strings.ToLower(m[1])
			patch.ExerciseType = &kind
		}
	}

	if patch.Empty() {
		return nil, false
	}
	return LogHealth{Date: in.Today(), Patch: patch}, true
}

func extractGoal(in Input) (Mutation, bool) {
	rest := strings.TrimSpace(goalTrigger.ReplaceAllString(in.Raw, " "))
	title := strings.Join(strings.Fields(rest), " ")
	if title == "" {
		return nil, false
	}
	goal := AddGoal{
		Title:    upperFirst(title),
		Category: DetectCategory(title, GoalCategories),
	}
	if v, ok := ExtractAmount(title); ok && v > 0 {
		goal.TargetValue = &v
	}
	return goal, true
}

// extractName keeps up to three words after the trigger, stopping at
// punctuation or a connector word.
func extractName(in Input) (Mutation, bool) {
	m := nameCapture.FindStringSubmatch(in.Raw)
	if m == nil {
		m = introCapture.FindStringSubmatch(in.Raw)
	}
	if m == nil {
		return nil, false
	}
	var words []string
	for _, w := range strings.Fields(m[1]) {
		w = strings.Trim(w, ".'")
		if w == "" || nameStop[strings.ToLower(w)] || len(words) == 3 {
			break
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil, false
	}
	name := TitleCase(strings.Join(words, " "))
	return UpdateProfile{Patch: models.ProfilePatch{Name: &name}}, true
}
