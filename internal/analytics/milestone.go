package analytics

import "slices"

// Milestones 是触发庆祝消息的连胜天数。
var Milestones = []int{7, 14, 30, 60, 100, 365}

// IsMilestone 仅在天数恰好等于某个里程碑时返回 true。
func IsMilestone(days int) bool {
	return slices.Contains(Milestones, days)
}
