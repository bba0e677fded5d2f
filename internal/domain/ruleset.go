package domain

// Badge names as used by the rule set and the catalog seed. The badges table
// enforces uniqueness on these names.
const (
	BadgeFirstStep          = "First Step"
	BadgeDailyLearner       = "Daily Learner"
	BadgeConsistentLearner  = "Consistent Learner"
	BadgeStreakStarter      = "Streak Starter"
	BadgeStreakMaster       = "Streak Master"
	BadgeStreakSpecialist   = "Streak Specialist"
	BadgeSummarizationStar  = "Summarization Star"
	BadgeKnowledgeSeeker    = "Knowledge Seeker"
	BadgeAudioEnthusiast    = "Audio Enthusiast"
	BadgeAudioAnalyzer      = "Audio Analyzer"
	BadgeDocumentGuru       = "Document Guru"
	BadgeDocumentPro        = "Document Pro"
	BadgeCuriousLearner     = "Curious Learner"
	BadgeGoalSetter         = "Goal Setter"
	BadgeGoalAchiever       = "Goal Achiever"
	BadgeLeaderboardRookie  = "Leaderboard Rookie"
	BadgeTopPerformer       = "Top Performer"
	BadgeBadgeCollector     = "Badge Collector"
	BadgeSuperCollector     = "Super Collector"
	BadgeUltimateLearner    = "Ultimate Learner"
)

// RuleKind selects which metric a badge rule thresholds over.
type RuleKind int

const (
	// RuleActivityCount thresholds the lifetime count of one activity type.
	RuleActivityCount RuleKind = iota
	// RuleLoginStreak thresholds the anchored current login streak.
	RuleLoginStreak
	// RuleStudyStreak thresholds the anchored current study streak.
	RuleStudyStreak
	// RuleBadgeCount thresholds the number of earned badges.
	RuleBadgeCount
	// RuleAllBadgesButSelf earns when every other badge is earned; the
	// threshold is TotalBadgeCount-1, excluding the rule's own badge.
	RuleAllBadgesButSelf
	// RuleLeaderboardEntered earns on any leaderboard placement.
	RuleLeaderboardEntered
	// RuleLeaderboardTopPercent earns when the user's rank falls within the
	// given top percentage.
	RuleLeaderboardTopPercent
)

// BadgeRule is one declarative earn criterion. Every rule thresholds exactly
// one metric; composite behavior (the collector family) comes from RuleKind.
type BadgeRule struct {
	Badge     string
	Kind      RuleKind
	Activity  ActivityType // only for RuleActivityCount
	Threshold int
}

// Collector reports whether the rule depends on the earned-badge count and
// therefore must be re-evaluated after other awards land.
func (r BadgeRule) Collector() bool {
	return r.Kind == RuleBadgeCount || r.Kind == RuleAllBadgesButSelf
}

// UserMetrics is the aggregated, I/O-free input to rule evaluation.
type UserMetrics struct {
	Counts           map[ActivityType]int
	LoginStreak      StreakSummary
	StudyStreak      StreakSummary
	EarnedBadgeCount int
	TotalBadgeCount  int

	// LeaderboardRank is the user's 1-based rank, 0 when unknown or the user
	// has not entered the leaderboard. LeaderboardSize is the total number of
	// ranked users.
	LeaderboardRank int
	LeaderboardSize int
}

// BadgeDecision is the outcome of evaluating one rule against the metrics.
type BadgeDecision struct {
	BadgeName       string
	ShouldEarn      bool
	ProgressPercent int
}

// BadgeRuleSet is an immutable set of badge rules, constructed once and
// passed into the evaluation orchestrator.
type BadgeRuleSet struct {
	rules []BadgeRule
}

// NewBadgeRuleSet copies the given rules into an immutable set.
func NewBadgeRuleSet(rules []BadgeRule) *BadgeRuleSet {
	rs := &BadgeRuleSet{rules: make([]BadgeRule, len(rules))}
	copy(rs.rules, rules)
	return rs
}

// DefaultRuleSet returns the full production catalog of twenty badge rules.
func DefaultRuleSet() *BadgeRuleSet {
	return NewBadgeRuleSet([]BadgeRule{
		{Badge: BadgeFirstStep, Kind: RuleActivityCount, Activity: ActivityLogin, Threshold: 1},
		{Badge: BadgeDailyLearner, Kind: RuleLoginStreak, Threshold: 7},
		{Badge: BadgeConsistentLearner, Kind: RuleLoginStreak, Threshold: 30},
		{Badge: BadgeStreakStarter, Kind: RuleStudyStreak, Threshold: 3},
		{Badge: BadgeStreakMaster, Kind: RuleStudyStreak, Threshold: 10},
		{Badge: BadgeStreakSpecialist, Kind: RuleStudyStreak, Threshold: 30},
		{Badge: BadgeSummarizationStar, Kind: RuleActivityCount, Activity: ActivityTextSummarized, Threshold: 10},
		{Badge: BadgeKnowledgeSeeker, Kind: RuleActivityCount, Activity: ActivityTextSummarized, Threshold: 20},
		{Badge: BadgeAudioEnthusiast, Kind: RuleActivityCount, Activity: ActivityAudioUploaded, Threshold: 5},
		{Badge: BadgeAudioAnalyzer, Kind: RuleActivityCount, Activity: ActivityAudioUploaded, Threshold: 15},
		{Badge: BadgeDocumentGuru, Kind: RuleActivityCount, Activity: ActivityDocumentUploaded, Threshold: 10},
		{Badge: BadgeDocumentPro, Kind: RuleActivityCount, Activity: ActivityDocumentUploaded, Threshold: 20},
		{Badge: BadgeCuriousLearner, Kind: RuleActivityCount, Activity: ActivityQuestionAsked, Threshold: 20},
		{Badge: BadgeGoalSetter, Kind: RuleActivityCount, Activity: ActivityGoalSet, Threshold: 1},
		{Badge: BadgeGoalAchiever, Kind: RuleActivityCount, Activity: ActivityGoalCompleted, Threshold: 1},
		{Badge: BadgeLeaderboardRookie, Kind: RuleLeaderboardEntered},
		{Badge: BadgeTopPerformer, Kind: RuleLeaderboardTopPercent, Threshold: 10},
		{Badge: BadgeBadgeCollector, Kind: RuleBadgeCount, Threshold: 5},
		{Badge: BadgeSuperCollector, Kind: RuleBadgeCount, Threshold: 10},
		{Badge: BadgeUltimateLearner, Kind: RuleAllBadgesButSelf},
	})
}

// Rules returns a copy of the rule list.
func (rs *BadgeRuleSet) Rules() []BadgeRule {
	out := make([]BadgeRule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules (and therefore badges) in the set.
func (rs *BadgeRuleSet) Len() int {
	return len(rs.rules)
}

// Evaluate applies every rule to the metrics. Pure and deterministic: no I/O,
// same metrics in, same decisions out. Tiered rules are evaluated
// independently, so jumping past several tiers earns all of them in one pass.
func (rs *BadgeRuleSet) Evaluate(metrics UserMetrics) []BadgeDecision {
	decisions := make([]BadgeDecision, 0, len(rs.rules))
	for _, rule := range rs.rules {
		decisions = append(decisions, rs.evaluateRule(rule, metrics))
	}
	return decisions
}

// EvaluateCollectors applies only the collector rules. Used for the second
// awarder pass after first-pass awards have updated the earned count.
func (rs *BadgeRuleSet) EvaluateCollectors(metrics UserMetrics) []BadgeDecision {
	var decisions []BadgeDecision
	for _, rule := range rs.rules {
		if rule.Collector() {
			decisions = append(decisions, rs.evaluateRule(rule, metrics))
		}
	}
	return decisions
}

func (rs *BadgeRuleSet) evaluateRule(rule BadgeRule, m UserMetrics) BadgeDecision {
	var value, threshold int

	switch rule.Kind {
	case RuleActivityCount:
		value, threshold = m.Counts[rule.Activity], rule.Threshold
	case RuleLoginStreak:
		value, threshold = m.LoginStreak.Current, rule.Threshold
	case RuleStudyStreak:
		value, threshold = m.StudyStreak.Current, rule.Threshold
	case RuleBadgeCount:
		value, threshold = m.EarnedBadgeCount, rule.Threshold
	case RuleAllBadgesButSelf:
		value = m.EarnedBadgeCount
		threshold = m.TotalBadgeCount - 1
		if threshold < 1 {
			threshold = 1
		}
	case RuleLeaderboardEntered:
		if m.LeaderboardRank >= 1 {
			value, threshold = 1, 1
		} else {
			value, threshold = 0, 1
		}
	case RuleLeaderboardTopPercent:
		threshold = 1
		if m.LeaderboardRank >= 1 && m.LeaderboardSize > 0 &&
			m.LeaderboardRank*100 <= rule.Threshold*m.LeaderboardSize {
			value = 1
		}
	}

	if value >= threshold {
		return BadgeDecision{BadgeName: rule.Badge, ShouldEarn: true, ProgressPercent: 100}
	}
	return BadgeDecision{BadgeName: rule.Badge, ProgressPercent: progressPercent(value, threshold)}
}

// progressPercent is floor(value/threshold*100) clamped to [0, 99]; 100 is
// reserved for earned badges.
func progressPercent(value, threshold int) int {
	if threshold <= 0 || value <= 0 {
		return 0
	}
	pct := value * 100 / threshold
	if pct > 99 {
		pct = 99
	}
	return pct
}
