package analytics

import (
	"slices"
	"strings"
	"time"
)

// Goal key 与数据库列名保持一致，也是 API 中使用的字段名。
const (
	GoalBedBefore11PM    = "bed_before_11pm"
	GoalEightHoursSleep  = "eight_hours_sleep"
	GoalWakeBy730AM      = "wake_by_730am"
	GoalWorkout          = "workout"
	GoalTenKSteps        = "ten_k_steps"
	GoalReadInvesting    = "read_investing"
	GoalReadFinance      = "read_finance"
	GoalReadCrypto       = "read_crypto"
	GoalPlayWithAI       = "play_with_ai"
	GoalReadingBooks     = "reading_books"
	GoalPostedTwitter    = "posted_twitter"
	GoalPostedLinkedIn   = "posted_linkedin"
	GoalPersonReachedOut = "person_reached_out"

	// PerfectDay 是全部目标同时完成时的连胜 key。
	PerfectDay = "perfect_day"
)

// Category 用于概览中的分组展示。
type Category string

const (
	CategorySleep    Category = "sleep"
	CategoryActivity Category = "activity"
	CategoryLearning Category = "learning"
	CategorySocial   Category = "social"
)

// Record 是分析引擎消费的单日记录，一个日历日最多一条。
type Record struct {
	Date             time.Time
	BedBefore11PM    bool
	EightHoursSleep  bool
	WakeBy730AM      bool
	Workout          bool
	TenKSteps        bool
	ReadInvesting    bool
	ReadFinance      bool
	ReadCrypto       bool
	PlayWithAI       bool
	ReadingBooks     bool
	PostedTwitter    bool
	PostedLinkedIn   bool
	PersonReachedOut string
}

// Goal 描述一个固定的每日目标。
// Text 为 true 时完成条件是去掉首尾空白后非空，否则为布尔值本身。
type Goal struct {
	Key       string
	Label     string
	Category  Category
	Core      bool
	Text      bool
	Completed func(Record) bool
}

var goals = []Goal{
	{Key: GoalBedBefore11PM, Label: "Bed <11pm", Category: CategorySleep, Completed: func(r Record) bool { return r.BedBefore11PM }},
	{Key: GoalEightHoursSleep, Label: "8hrs sleep", Category: CategorySleep, Completed: func(r Record) bool { return r.EightHoursSleep }},
	{Key: GoalWakeBy730AM, Label: "Wake 7:30", Category: CategorySleep, Completed: func(r Record) bool { return r.WakeBy730AM }},
	{Key: GoalWorkout, Label: "Workout", Category: CategoryActivity, Completed: func(r Record) bool { return r.Workout }},
	{Key: GoalTenKSteps, Label: "10k steps", Category: CategoryActivity, Completed: func(r Record) bool { return r.TenKSteps }},
	{Key: GoalReadInvesting, Label: "Investing", Category: CategoryLearning, Core: true, Completed: func(r Record) bool { return r.ReadInvesting }},
	{Key: GoalReadFinance, Label: "Finance", Category: CategoryLearning, Core: true, Completed: func(r Record) bool { return r.ReadFinance }},
	{Key: GoalReadCrypto, Label: "Crypto", Category: CategoryLearning, Core: true, Completed: func(r Record) bool { return r.ReadCrypto }},
	{Key: GoalPlayWithAI, Label: "AI", Category: CategoryLearning, Core: true, Completed: func(r Record) bool { return r.PlayWithAI }},
	{Key: GoalReadingBooks, Label: "Books", Category: CategoryActivity, Completed: func(r Record) bool { return r.ReadingBooks }},
	{Key: GoalPostedTwitter, Label: "Twitter", Category: CategorySocial, Completed: func(r Record) bool { return r.PostedTwitter }},
	{Key: GoalPostedLinkedIn, Label: "LinkedIn", Category: CategorySocial, Completed: func(r Record) bool { return r.PostedLinkedIn }},
	{Key: GoalPersonReachedOut, Label: "Reach out", Category: CategorySocial, Text: true, Completed: func(r Record) bool {
		return strings.TrimSpace(r.PersonReachedOut) != ""
	}},
}

// Goals 返回按展示顺序排列的全部目标。
func Goals() []Goal {
	return slices.Clone(goals)
}

// BooleanGoals 返回除文本目标外的目标，连胜统计只覆盖这些目标。
func BooleanGoals() []Goal {
	result := make([]Goal, 0, len(goals))
	for _, goal := range goals {
		if !goal.Text {
			result = append(result, goal)
		}
	}
	return result
}

// CoreGoals 返回四个学习类核心目标。
func CoreGoals() []Goal {
	result := make([]Goal, 0, 4)
	for _, goal := range goals {
		if goal.Core {
			result = append(result, goal)
		}
	}
	return result
}

// LookupGoal 根据 key 查找目标。
func LookupGoal(key string) (Goal, bool) {
	for _, goal := range goals {
		if goal.Key == key {
			return goal, true
		}
	}
	return Goal{}, false
}

// DateKey 返回记录的规范日期 YYYY-MM-DD。
func (r Record) DateKey() string {
	return r.Date.Format(DateLayout)
}

// CompletedCount 统计当天完成的目标数，范围 0..len(Goals())。
func (r Record) CompletedCount() int {
	count := 0
	for _, goal := range goals {
		if goal.Completed(r) {
			count++
		}
	}
	return count
}

// PerfectDay 判断当天是否完成全部目标（含文本目标）。
func (r Record) PerfectDay() bool {
	for _, goal := range goals {
		if !goal.Completed(r) {
			return false
		}
	}
	return true
}

// CoreComplete 判断四个核心目标是否同时完成。
func (r Record) CoreComplete() bool {
	for _, goal := range goals {
		if goal.Core && !goal.Completed(r) {
			return false
		}
	}
	return true
}

// AnyCompleted 判断当天是否至少完成了一个目标。
func (r Record) AnyCompleted() bool {
	for _, goal := range goals {
		if goal.Completed(r) {
			return true
		}
	}
	return false
}
