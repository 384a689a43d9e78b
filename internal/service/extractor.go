package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"homequest/internal/config"
	"homequest/internal/model"
	"homequest/internal/repository"
	"homequest/internal/signals"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityFn func(ctx context.Context, userID uuid.UUID) (bool, error)

// extractFn computes a signal value in [0,100]. A nil result means "cannot be
// computed", which is distinct from a computed 0.
type extractFn func(ctx context.Context, userID uuid.UUID) (*float64, error)

type signalFns struct {
	available availabilityFn
	extract   extractFn
}

// SignalExtractor evaluates availability and value for every catalog signal.
// Each signal reads only the rows it needs; extraction never writes.
type SignalExtractor struct {
	db           *gorm.DB
	eventRepo    repository.EventRepository
	userRepo     repository.UserRepository
	learningRepo repository.LearningRepository
	rewardsRepo  repository.RewardsRepository
	supportRepo  repository.SupportRepository

	fns map[string]signalFns
}

// NewSignalExtractor wires one availability predicate and one extraction
// function per catalog signal, and fails construction if any signal is left
// without both. A missing entry surfaces here, not as a silent skip at
// scoring time.
func NewSignalExtractor(
	db *gorm.DB,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	learningRepo repository.LearningRepository,
	rewardsRepo repository.RewardsRepository,
	supportRepo repository.SupportRepository,
) (*SignalExtractor, error) {
	e := &SignalExtractor{
		db:           db,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		learningRepo: learningRepo,
		rewardsRepo:  rewardsRepo,
		supportRepo:  supportRepo,
	}
	e.fns = map[string]signalFns{
		// Engagement
		signals.SigLoginRecency:           {e.hasLoginSignal, e.loginRecency},
		signals.SigLoginFrequency:         {e.hasEventType(model.EventLogin), e.loginFrequency},
		signals.SigHasEverLoggedIn:        {e.userExists, e.hasEverLoggedIn},
		signals.SigLessonViews:            {e.hasLessonProgress, e.lessonViews},
		signals.SigLessonCompletions:      {e.hasLessonProgress, e.lessonCompletions},
		signals.SigModuleCompletions:      {e.hasModuleProgress, e.moduleCompletions},
		signals.SigEventVolume30d:         {e.hasAnyEvent, e.eventVolume30d},
		signals.SigActiveDays30d:          {e.hasAnyEvent, e.activeDays30d},
		signals.SigQuizParticipation:      {e.hasQuizAttempts, e.quizParticipation},
		signals.SigMiniGameParticipation:  {e.hasMiniGameAttempts, e.miniGameParticipation},
		signals.SigOnboardingCompleted:    {e.hasOnboarding, e.onboardingCompleted},
		signals.SigHasZipcode:             {e.hasOnboarding, e.hasZipcode},
		signals.SigNotificationEngagement: {e.hasNotificationEvents, e.notificationEngagement},
		signals.SigMaterialViews:          {e.hasEventType(model.EventMaterialViewed), e.materialViews},
		signals.SigStreakEvents:           {e.hasEventType(model.EventStreakMaintained), e.streakEvents},
		signals.SigEngagementTrend:        {e.hasCategoryEvents(model.CategoryEngagement), e.engagementTrend},

		// Timeline urgency
		signals.SigPurchaseTimeline:   {e.hasTimeline, e.purchaseTimeline},
		signals.SigTimelineShortened:  {e.hasTimelineEvents, e.timelineShortened},
		signals.SigTimelineRecency:    {e.hasTimelineEvents, e.timelineRecency},
		signals.SigGoalEvents:         {e.hasCategoryEvents(model.CategoryGoalIndication), e.goalEvents},
		signals.SigVelocityVsTimeline: {e.hasVelocityVsTimeline, e.velocityVsTimeline},
		signals.SigUrgentEventRecency: {e.hasCategoryEvents(model.CategoryGoalIndication), e.urgentEventRecency},

		// Help-seeking
		signals.SigExpertContact:        {e.hasExpertContactSignal, e.expertContact},
		signals.SigRealtorConnected:     {e.hasOnboarding, e.realtorConnected},
		signals.SigLoanOfficerConnected: {e.hasOnboarding, e.loanOfficerConnected},
		signals.SigSupportTickets:       {e.hasSupportTickets, e.supportTickets},
		signals.SigCalculatorUsage:      {e.hasCalculatorUsage, e.calculatorUsage},
		signals.SigCalculatorRecency:    {e.hasCalculatorUsage, e.calculatorRecency},
		signals.SigMaterialDownloads:    {e.hasMaterialDownloads, e.materialDownloads},
		signals.SigFAQViews:             {e.faqViewsAvailable, e.faqViews},
		signals.SigHelpEvents:           {e.hasCategoryEvents(model.CategoryHelpSeeking), e.helpEvents},
		signals.SigHelpRecency:          {e.hasCategoryEvents(model.CategoryHelpSeeking), e.helpRecency},

		// Learning velocity
		signals.SigLessonsPerWeek:       {e.hasLessonProgress, e.lessonsPerWeek},
		signals.SigCompletionRate:       {e.hasLessonProgress, e.completionRate},
		signals.SigQuizPassRate:         {e.hasQuizAttempts, e.quizPassRate},
		signals.SigQuizAvgScore:         {e.hasQuizAttempts, e.quizAvgScore},
		signals.SigLearningAcceleration: {e.hasCompletedLessons, e.learningAcceleration},
		signals.SigStudyConsistency:     {e.hasCompletedLessons, e.studyConsistency},
		signals.SigModuleVelocity:       {e.hasModuleProgress, e.moduleVelocity},
		signals.SigFirstAttemptPassRate: {e.hasQuizAttempts, e.firstAttemptPassRate},
		signals.SigPerfectScores:        {e.hasAnyAttempts, e.perfectScores},

		// Rewards
		signals.SigCoinBalance:        {e.hasCoinBalance, e.coinBalance},
		signals.SigLifetimeCoins:      {e.hasCoinBalance, e.lifetimeCoins},
		signals.SigCoinsSpentRatio:    {e.hasCoinBalance, e.coinsSpentRatio},
		signals.SigBadgeCount:         {e.hasBadges, e.badgeCount},
		signals.SigRareBadgeCount:     {e.hasBadges, e.rareBadgeCount},
		signals.SigRedemptionCount:    {e.hasRedemptions, e.redemptionCount},
		signals.SigRewardEventRecency: {e.hasCategoryEvents(model.CategoryRewards), e.rewardEventRecency},
		signals.SigRewardEarningTrend: {e.hasCategoryEvents(model.CategoryRewards), e.rewardEarningTrend},
	}

	for _, sig := range signals.All() {
		if _, ok := e.fns[sig.ID]; !ok {
			return nil, fmt.Errorf("signal extractor: no functions registered for signal %q", sig.ID)
		}
	}
	if len(e.fns) != signals.Count() {
		return nil, fmt.Errorf("signal extractor: %d registrations for %d catalog signals", len(e.fns), signals.Count())
	}
	return e, nil
}

// Available reports whether signalID can be computed for userID.
func (e *SignalExtractor) Available(ctx context.Context, userID uuid.UUID, signalID string) (bool, error) {
	fns, ok := e.fns[signalID]
	if !ok {
		return false, fmt.Errorf("signal extractor: unknown signal %q", signalID)
	}
	return fns.available(ctx, userID)
}

// Extract computes the value of signalID for userID. Callers should check
// Available first; Extract on an unavailable signal typically returns nil.
func (e *SignalExtractor) Extract(ctx context.Context, userID uuid.UUID, signalID string) (*float64, error) {
	fns, ok := e.fns[signalID]
	if !ok {
		return nil, fmt.Errorf("signal extractor: unknown signal %q", signalID)
	}
	return fns.extract(ctx, userID)
}

// AvailabilitySummary tallies available signals per dimension and overall.
// The overall percentage doubles as the user's profile-completion figure.
func (e *SignalExtractor) AvailabilitySummary(ctx context.Context, userID uuid.UUID) (*model.AvailabilitySummary, error) {
	summary := &model.AvailabilitySummary{
		Dimensions: make(map[model.Dimension]*model.DimensionAvailability, len(model.AllDimensions)),
	}
	for _, dim := range model.AllDimensions {
		da := &model.DimensionAvailability{}
		for _, sig := range signals.ByDimension(dim) {
			da.Total++
			ok, err := e.Available(ctx, userID, sig.ID)
			if err != nil {
				return nil, fmt.Errorf("availability of %q: %w", sig.ID, err)
			}
			if ok {
				da.Available++
			}
		}
		if da.Total > 0 {
			da.Pct = round2(float64(da.Available) / float64(da.Total) * 100)
		}
		summary.Dimensions[dim] = da
		summary.Available += da.Available
		summary.Total += da.Total
	}
	if summary.Total > 0 {
		summary.Pct = round2(float64(summary.Available) / float64(summary.Total) * 100)
	}
	return summary, nil
}

// --- normalization helpers ---

func value(v float64) *float64 {
	return &v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// countScore is min(100, count/target*100).
func countScore(count int64, target float64) *float64 {
	return value(math.Min(100, float64(count)/target*100))
}

// recencyScore decays linearly from 100 now to 0 at horizonDays ago.
func recencyScore(last time.Time, horizonDays float64) *float64 {
	age := time.Since(last).Hours() / 24
	return value(clamp(100*(1-age/horizonDays), 0, 100))
}

// ratioScore is numerator/denominator on a 0-100 scale, nil when the
// denominator is zero.
func ratioScore(numerator, denominator float64) *float64 {
	if denominator == 0 {
		return nil
	}
	return value(clamp(numerator/denominator*100, 0, 100))
}

// trendScore compares a recent window count against the prior window. Going
// from zero activity to any activity scores 100; otherwise the relative
// change maps through 50 + acceleration*50, clamped to [0,100].
func trendScore(recent, prior int64) *float64 {
	if prior == 0 {
		if recent > 0 {
			return value(100)
		}
		return value(50)
	}
	acceleration := float64(recent-prior) / float64(prior)
	return value(clamp(50+acceleration*50, 0, 100))
}

// timelineBucketScore maps a stated months-to-purchase horizon to urgency.
func timelineBucketScore(months int) *float64 {
	switch {
	case months <= 3:
		return value(100)
	case months <= 6:
		return value(85)
	case months <= 12:
		return value(70)
	case months <= 24:
		return value(50)
	case months <= 36:
		return value(30)
	default:
		return value(10)
	}
}

// consistencyScore maps the standard deviation of inter-completion gaps (in
// days) through a decreasing curve: a gap spread of a day or less scores 100,
// a week or more scores 0, linear in between.
func consistencyScore(stddevDays float64) *float64 {
	switch {
	case stddevDays <= 1:
		return value(100)
	case stddevDays >= 7:
		return value(0)
	default:
		return value((7 - stddevDays) / 6 * 100)
	}
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}

// --- shared availability predicates ---

func (e *SignalExtractor) userExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := e.userRepo.FindByID(ctx, e.db, userID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *SignalExtractor) hasOnboarding(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *SignalExtractor) hasEventType(t model.EventType) availabilityFn {
	return func(ctx context.Context, userID uuid.UUID) (bool, error) {
		return e.eventRepo.ExistsByType(ctx, e.db, userID, t)
	}
}

func (e *SignalExtractor) hasCategoryEvents(c model.EventCategory) availabilityFn {
	return func(ctx context.Context, userID uuid.UUID) (bool, error) {
		n, err := e.eventRepo.CountByCategory(ctx, e.db, userID, c, nil)
		return n > 0, err
	}
}

func (e *SignalExtractor) hasAnyEvent(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.eventRepo.CountByUser(ctx, e.db, userID, nil)
	return n > 0, err
}

func (e *SignalExtractor) hasLessonProgress(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.learningRepo.CountLessonProgress(ctx, e.db, userID)
	return n > 0, err
}

func (e *SignalExtractor) hasModuleProgress(ctx context.Context, userID uuid.UUID) (bool, error) {
	rows, err := e.learningRepo.ListModuleProgress(ctx, e.db, userID)
	return len(rows) > 0, err
}

func (e *SignalExtractor) hasCompletedLessons(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.learningRepo.CountCompletedLessons(ctx, e.db, userID, nil)
	return n > 0, err
}

func (e *SignalExtractor) hasQuizAttempts(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.learningRepo.CountQuizAttempts(ctx, e.db, userID)
	return n > 0, err
}

func (e *SignalExtractor) hasMiniGameAttempts(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.learningRepo.CountMiniGameAttempts(ctx, e.db, userID)
	return n > 0, err
}

func (e *SignalExtractor) hasAnyAttempts(ctx context.Context, userID uuid.UUID) (bool, error) {
	if ok, err := e.hasQuizAttempts(ctx, userID); err != nil || ok {
		return ok, err
	}
	return e.hasMiniGameAttempts(ctx, userID)
}

func (e *SignalExtractor) hasCoinBalance(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := e.rewardsRepo.FindCoinBalance(ctx, e.db, userID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (e *SignalExtractor) hasBadges(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.rewardsRepo.CountBadges(ctx, e.db, userID)
	return n > 0, err
}

func (e *SignalExtractor) hasRedemptions(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.rewardsRepo.CountRedemptions(ctx, e.db, userID)
	return n > 0, err
}

func (e *SignalExtractor) hasSupportTickets(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.supportRepo.CountTickets(ctx, e.db, userID)
	return n > 0, err
}

func (e *SignalExtractor) hasCalculatorUsage(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.supportRepo.CountCalculatorUsage(ctx, e.db, userID)
	return n > 0, err
}

func (e *SignalExtractor) hasMaterialDownloads(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := e.supportRepo.CountMaterialDownloads(ctx, e.db, userID)
	return n > 0, err
}

func (e *SignalExtractor) hasNotificationEvents(ctx context.Context, userID uuid.UUID) (bool, error) {
	if ok, err := e.eventRepo.ExistsByType(ctx, e.db, userID, model.EventNotificationClicked); err != nil || ok {
		return ok, err
	}
	return e.eventRepo.ExistsByType(ctx, e.db, userID, model.EventNotificationRead)
}

func (e *SignalExtractor) hasLoginSignal(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := e.userRepo.FindByID(ctx, e.db, userID)
	if err == nil && user.LastLoginAt != nil {
		return true, nil
	}
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return false, err
	}
	return e.eventRepo.ExistsByType(ctx, e.db, userID, model.EventLogin)
}

func (e *SignalExtractor) hasTimeline(ctx context.Context, userID uuid.UUID) (bool, error) {
	onboarding, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return onboarding.TimelineMonths != nil, nil
}

func (e *SignalExtractor) hasTimelineEvents(ctx context.Context, userID uuid.UUID) (bool, error) {
	if ok, err := e.eventRepo.ExistsByType(ctx, e.db, userID, model.EventTimelineUpdated); err != nil || ok {
		return ok, err
	}
	return e.eventRepo.ExistsByType(ctx, e.db, userID, model.EventTimelineShortened)
}

func (e *SignalExtractor) hasVelocityVsTimeline(ctx context.Context, userID uuid.UUID) (bool, error) {
	if ok, err := e.hasTimeline(ctx, userID); err != nil || !ok {
		return false, err
	}
	return e.hasCompletedLessons(ctx, userID)
}

func (e *SignalExtractor) hasExpertContactSignal(ctx context.Context, userID uuid.UUID) (bool, error) {
	if ok, err := e.hasOnboarding(ctx, userID); err != nil || ok {
		return ok, err
	}
	return e.eventRepo.ExistsByType(ctx, e.db, userID, model.EventExpertContactRequested)
}

// FAQ-view tracking does not exist upstream yet, so the signal is registered
// but never available. Remove this stub once faq_viewed events are emitted.
func (e *SignalExtractor) faqViewsAvailable(ctx context.Context, userID uuid.UUID) (bool, error) {
	return false, nil
}

// --- engagement extractors ---

func (e *SignalExtractor) loginRecency(ctx context.Context, userID uuid.UUID) (*float64, error) {
	last, err := e.lastLogin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	return recencyScore(*last, 30), nil
}

func (e *SignalExtractor) lastLogin(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	var last *time.Time
	user, err := e.userRepo.FindByID(ctx, e.db, userID)
	if err == nil {
		last = user.LastLoginAt
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	ev, err := e.eventRepo.LatestByType(ctx, e.db, userID, model.EventLogin)
	if err == nil {
		if last == nil || ev.CreatedAt.After(*last) {
			last = &ev.CreatedAt
		}
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return last, nil
}

func (e *SignalExtractor) loginFrequency(ctx context.Context, userID uuid.UUID) (*float64, error) {
	since := daysAgo(30)
	n, err := e.eventRepo.CountByType(ctx, e.db, userID, model.EventLogin, &since)
	if err != nil {
		return nil, err
	}
	return countScore(n, 20), nil
}

func (e *SignalExtractor) hasEverLoggedIn(ctx context.Context, userID uuid.UUID) (*float64, error) {
	ok, err := e.hasLoginSignal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		return value(100), nil
	}
	return value(0), nil
}

func (e *SignalExtractor) lessonViews(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.learningRepo.CountLessonProgress(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 30), nil
}

func (e *SignalExtractor) lessonCompletions(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.learningRepo.CountCompletedLessons(ctx, e.db, userID, nil)
	if err != nil {
		return nil, err
	}
	return countScore(n, 20), nil
}

func (e *SignalExtractor) moduleCompletions(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.learningRepo.CountCompletedModules(ctx, e.db, userID, nil)
	if err != nil {
		return nil, err
	}
	return countScore(n, 8), nil
}

func (e *SignalExtractor) eventVolume30d(ctx context.Context, userID uuid.UUID) (*float64, error) {
	since := daysAgo(30)
	n, err := e.eventRepo.CountByUser(ctx, e.db, userID, &since)
	if err != nil {
		return nil, err
	}
	return countScore(n, 50), nil
}

func (e *SignalExtractor) activeDays30d(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.eventRepo.CountActiveDays(ctx, e.db, userID, daysAgo(30))
	if err != nil {
		return nil, err
	}
	return countScore(n, 20), nil
}

func (e *SignalExtractor) quizParticipation(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.learningRepo.CountQuizAttempts(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 10), nil
}

func (e *SignalExtractor) miniGameParticipation(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.learningRepo.CountMiniGameAttempts(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 10), nil
}

func (e *SignalExtractor) onboardingCompleted(ctx context.Context, userID uuid.UUID) (*float64, error) {
	onboarding, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	if onboarding.CompletedAt != nil {
		return value(100), nil
	}
	return value(0), nil
}

func (e *SignalExtractor) hasZipcode(ctx context.Context, userID uuid.UUID) (*float64, error) {
	onboarding, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	if onboarding.Zipcode != nil && *onboarding.Zipcode != "" {
		return value(100), nil
	}
	return value(0), nil
}

func (e *SignalExtractor) notificationEngagement(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.eventRepo.CountByType(ctx, e.db, userID, model.EventNotificationClicked, nil)
	if err != nil {
		return nil, err
	}
	return countScore(n, 10), nil
}

func (e *SignalExtractor) materialViews(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.eventRepo.CountByType(ctx, e.db, userID, model.EventMaterialViewed, nil)
	if err != nil {
		return nil, err
	}
	return countScore(n, 5), nil
}

func (e *SignalExtractor) streakEvents(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.eventRepo.CountByType(ctx, e.db, userID, model.EventStreakMaintained, nil)
	if err != nil {
		return nil, err
	}
	return countScore(n, 4), nil
}

func (e *SignalExtractor) engagementTrend(ctx context.Context, userID uuid.UUID) (*float64, error) {
	return e.categoryTrend(ctx, userID, model.CategoryEngagement)
}

// categoryTrend compares this week's event count to the prior week's.
func (e *SignalExtractor) categoryTrend(ctx context.Context, userID uuid.UUID, category model.EventCategory) (*float64, error) {
	now := time.Now()
	recent, err := e.eventRepo.CountByCategoryBetween(ctx, e.db, userID, category, daysAgo(7), now)
	if err != nil {
		return nil, err
	}
	prior, err := e.eventRepo.CountByCategoryBetween(ctx, e.db, userID, category, daysAgo(14), daysAgo(7))
	if err != nil {
		return nil, err
	}
	return trendScore(recent, prior), nil
}

// --- timeline-urgency extractors ---

func (e *SignalExtractor) purchaseTimeline(ctx context.Context, userID uuid.UUID) (*float64, error) {
	onboarding, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	if onboarding.TimelineMonths == nil {
		return nil, nil
	}
	return timelineBucketScore(*onboarding.TimelineMonths), nil
}

func (e *SignalExtractor) timelineShortened(ctx context.Context, userID uuid.UUID) (*float64, error) {
	ok, err := e.eventRepo.ExistsByType(ctx, e.db, userID, model.EventTimelineShortened)
	if err != nil {
		return nil, err
	}
	if ok {
		return value(100), nil
	}
	return value(0), nil
}

func (e *SignalExtractor) timelineRecency(ctx context.Context, userID uuid.UUID) (*float64, error) {
	var last *time.Time
	for _, t := range []model.EventType{model.EventTimelineUpdated, model.EventTimelineShortened} {
		ev, err := e.eventRepo.LatestByType(ctx, e.db, userID, t)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if last == nil || ev.CreatedAt.After(*last) {
			last = &ev.CreatedAt
		}
	}
	if last == nil {
		return nil, nil
	}
	return recencyScore(*last, 30), nil
}

func (e *SignalExtractor) goalEvents(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.eventRepo.CountByCategory(ctx, e.db, userID, model.CategoryGoalIndication, nil)
	if err != nil {
		return nil, err
	}
	return countScore(n, 5), nil
}

// velocityVsTimeline scores the user's recent completion pace against the
// pace required to finish the curriculum inside their stated timeline.
func (e *SignalExtractor) velocityVsTimeline(ctx context.Context, userID uuid.UUID) (*float64, error) {
	onboarding, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	if onboarding.TimelineMonths == nil {
		return nil, nil
	}
	months := *onboarding.TimelineMonths
	if months < 1 {
		months = 1
	}
	since := daysAgo(30)
	completedLastMonth, err := e.learningRepo.CountCompletedLessons(ctx, e.db, userID, &since)
	if err != nil {
		return nil, err
	}
	neededPerMonth := float64(config.CurriculumLessonTarget) / float64(months)
	return value(math.Min(100, float64(completedLastMonth)/neededPerMonth*100)), nil
}

func (e *SignalExtractor) urgentEventRecency(ctx context.Context, userID uuid.UUID) (*float64, error) {
	ev, err := e.eventRepo.LatestByCategory(ctx, e.db, userID, model.CategoryGoalIndication)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recencyScore(ev.CreatedAt, 14), nil
}

// --- help-seeking extractors ---

func (e *SignalExtractor) expertContact(ctx context.Context, userID uuid.UUID) (*float64, error) {
	onboarding, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if err == nil && onboarding.WantsExpertContact {
		return value(100), nil
	}
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	ok, err := e.eventRepo.ExistsByType(ctx, e.db, userID, model.EventExpertContactRequested)
	if err != nil {
		return nil, err
	}
	if ok {
		return value(100), nil
	}
	return value(0), nil
}

func (e *SignalExtractor) realtorConnected(ctx context.Context, userID uuid.UUID) (*float64, error) {
	onboarding, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	if onboarding.HasRealtor {
		return value(100), nil
	}
	return value(0), nil
}

func (e *SignalExtractor) loanOfficerConnected(ctx context.Context, userID uuid.UUID) (*float64, error) {
	onboarding, err := e.userRepo.FindOnboarding(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	if onboarding.HasLoanOfficer {
		return value(100), nil
	}
	return value(0), nil
}

func (e *SignalExtractor) supportTickets(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.supportRepo.CountTickets(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 3), nil
}

func (e *SignalExtractor) calculatorUsage(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.supportRepo.CountCalculatorUsage(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 5), nil
}

func (e *SignalExtractor) calculatorRecency(ctx context.Context, userID uuid.UUID) (*float64, error) {
	usage, err := e.supportRepo.LatestCalculatorUsage(ctx, e.db, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recencyScore(usage.CreatedAt, 30), nil
}

func (e *SignalExtractor) materialDownloads(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.supportRepo.CountMaterialDownloads(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 5), nil
}

func (e *SignalExtractor) faqViews(ctx context.Context, userID uuid.UUID) (*float64, error) {
	return nil, nil
}

func (e *SignalExtractor) helpEvents(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.eventRepo.CountByCategory(ctx, e.db, userID, model.CategoryHelpSeeking, nil)
	if err != nil {
		return nil, err
	}
	return countScore(n, 8), nil
}

func (e *SignalExtractor) helpRecency(ctx context.Context, userID uuid.UUID) (*float64, error) {
	ev, err := e.eventRepo.LatestByCategory(ctx, e.db, userID, model.CategoryHelpSeeking)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recencyScore(ev.CreatedAt, 14), nil
}

// --- learning-velocity extractors ---

func (e *SignalExtractor) lessonsPerWeek(ctx context.Context, userID uuid.UUID) (*float64, error) {
	since := daysAgo(7)
	n, err := e.learningRepo.CountCompletedLessons(ctx, e.db, userID, &since)
	if err != nil {
		return nil, err
	}
	return countScore(n, 5), nil
}

func (e *SignalExtractor) completionRate(ctx context.Context, userID uuid.UUID) (*float64, error) {
	started, err := e.learningRepo.CountLessonProgress(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	completed, err := e.learningRepo.CountCompletedLessons(ctx, e.db, userID, nil)
	if err != nil {
		return nil, err
	}
	return ratioScore(float64(completed), float64(started)), nil
}

func (e *SignalExtractor) quizPassRate(ctx context.Context, userID uuid.UUID) (*float64, error) {
	attempts, err := e.learningRepo.ListQuizAttempts(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	var passed int
	for _, a := range attempts {
		if a.Passed {
			passed++
		}
	}
	return ratioScore(float64(passed), float64(len(attempts))), nil
}

func (e *SignalExtractor) quizAvgScore(ctx context.Context, userID uuid.UUID) (*float64, error) {
	attempts, err := e.learningRepo.ListQuizAttempts(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, nil
	}
	var sum float64
	for _, a := range attempts {
		sum += float64(a.Score)
	}
	return value(clamp(sum/float64(len(attempts)), 0, 100)), nil
}

func (e *SignalExtractor) learningAcceleration(ctx context.Context, userID uuid.UUID) (*float64, error) {
	times, err := e.learningRepo.ListLessonCompletionTimes(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	weekAgo, twoWeeksAgo := daysAgo(7), daysAgo(14)
	var recent, prior int64
	for _, t := range times {
		switch {
		case t.After(weekAgo):
			recent++
		case t.After(twoWeeksAgo):
			prior++
		}
	}
	return trendScore(recent, prior), nil
}

func (e *SignalExtractor) studyConsistency(ctx context.Context, userID uuid.UUID) (*float64, error) {
	times, err := e.learningRepo.ListLessonCompletionTimes(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	// One completion gives no gap to measure.
	if len(times) < 2 {
		return nil, nil
	}
	gaps := make([]float64, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		gaps = append(gaps, times[i].Sub(times[i-1]).Hours()/24)
	}
	return consistencyScore(stddev(gaps)), nil
}

func (e *SignalExtractor) moduleVelocity(ctx context.Context, userID uuid.UUID) (*float64, error) {
	since := daysAgo(30)
	n, err := e.learningRepo.CountCompletedModules(ctx, e.db, userID, &since)
	if err != nil {
		return nil, err
	}
	return countScore(n, 2), nil
}

func (e *SignalExtractor) firstAttemptPassRate(ctx context.Context, userID uuid.UUID) (*float64, error) {
	attempts, err := e.learningRepo.ListQuizAttempts(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	var firsts, passed int
	for _, a := range attempts {
		if a.AttemptNumber == 1 {
			firsts++
			if a.Passed {
				passed++
			}
		}
	}
	return ratioScore(float64(passed), float64(firsts)), nil
}

func (e *SignalExtractor) perfectScores(ctx context.Context, userID uuid.UUID) (*float64, error) {
	quizzes, err := e.learningRepo.ListQuizAttempts(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	games, err := e.learningRepo.ListMiniGameAttempts(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	var perfect int64
	for _, a := range quizzes {
		if a.Score == 100 {
			perfect++
		}
	}
	for _, g := range games {
		if g.Score == 100 {
			perfect++
		}
	}
	return countScore(perfect, 3), nil
}

// --- rewards extractors ---

func (e *SignalExtractor) coinBalance(ctx context.Context, userID uuid.UUID) (*float64, error) {
	balance, err := e.rewardsRepo.FindCoinBalance(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(balance.CurrentBalance, 500), nil
}

func (e *SignalExtractor) lifetimeCoins(ctx context.Context, userID uuid.UUID) (*float64, error) {
	balance, err := e.rewardsRepo.FindCoinBalance(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(balance.LifetimeEarned, 1000), nil
}

func (e *SignalExtractor) coinsSpentRatio(ctx context.Context, userID uuid.UUID) (*float64, error) {
	balance, err := e.rewardsRepo.FindCoinBalance(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return ratioScore(float64(balance.LifetimeSpent), float64(balance.LifetimeEarned)), nil
}

func (e *SignalExtractor) badgeCount(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.rewardsRepo.CountBadges(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 10), nil
}

func (e *SignalExtractor) rareBadgeCount(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.rewardsRepo.CountRareBadges(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 2), nil
}

func (e *SignalExtractor) redemptionCount(ctx context.Context, userID uuid.UUID) (*float64, error) {
	n, err := e.rewardsRepo.CountRedemptions(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	return countScore(n, 3), nil
}

func (e *SignalExtractor) rewardEventRecency(ctx context.Context, userID uuid.UUID) (*float64, error) {
	ev, err := e.eventRepo.LatestByCategory(ctx, e.db, userID, model.CategoryRewards)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recencyScore(ev.CreatedAt, 30), nil
}

func (e *SignalExtractor) rewardEarningTrend(ctx context.Context, userID uuid.UUID) (*float64, error) {
	return e.categoryTrend(ctx, userID, model.CategoryRewards)
}
