package allocation

import (
	"math"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

// float noise guard so that e.g. 0.6/0.2 does not round up to an extra block
const blockEpsilon = 1e-9

// TotalBlocks returns ceil(lessonHours / blockHours)
func TotalBlocks(lessonHours, blockHours float64) int {
	if lessonHours <= 0 || blockHours <= 0 {
		return 0
	}
	return int(math.Ceil(lessonHours/blockHours - blockEpsilon))
}

// DefaultLessonPlan places totalBlocks unassigned blocks one per day over the stay,
// check-in and check-out days included. When blocks outnumber days the extra ones
// go round-robin to the earliest days again.
func DefaultLessonPlan(stay domain.Interval, totalBlocks, durationMinutes int) []domain.LessonBlock {
	if totalBlocks <= 0 {
		return []domain.LessonBlock{}
	}

	days := stay.DaysInclusive()
	blocks := make([]domain.LessonBlock, 0, totalBlocks)
	for i := 0; i < totalBlocks; i++ {
		blocks = append(blocks, domain.LessonBlock{
			Date:            days[i%len(days)],
			DurationMinutes: durationMinutes,
		})
	}
	return blocks
}
