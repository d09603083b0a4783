package responses

import (
	"math"
	"sort"

	"github.com/policy-pulse/backend/internal/models"
)

// DepartmentStat aggregates expected headcount against collected responses
// for one department.
type DepartmentStat struct {
	Department string `json:"department"`
	Expected   int    `json:"expected"`
	Responses  int64  `json:"responses"`
	// Remaining may go negative when a department exceeds its expected count.
	Remaining    int64 `json:"remaining"`
	ResponseRate int   `json:"responseRate"`
}

// ComputeStats joins active department counts with per-department response
// counts. Departments with zero expected headcount report a rate of 0 rather
// than dividing by zero; departments that responded without a count row are
// still included.
func ComputeStats(counts []models.DepartmentCount, byDepartment map[string]int64) []DepartmentStat {
	stats := make([]DepartmentStat, 0, len(counts))
	seen := make(map[string]struct{}, len(counts))

	for _, count := range counts {
		seen[count.Department] = struct{}{}
		collected := byDepartment[count.Department]
		stats = append(stats, DepartmentStat{
			Department:   count.Department,
			Expected:     count.StaffCount,
			Responses:    collected,
			Remaining:    int64(count.StaffCount) - collected,
			ResponseRate: responseRate(collected, count.StaffCount),
		})
	}
	for department, collected := range byDepartment {
		if _, ok := seen[department]; ok {
			continue
		}
		stats = append(stats, DepartmentStat{
			Department: department,
			Responses:  collected,
			Remaining:  -collected,
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Department < stats[j].Department })
	return stats
}

func responseRate(responses int64, expected int) int {
	if expected <= 0 {
		return 0
	}
	return int(math.Round(float64(responses) / float64(expected) * 100))
}
