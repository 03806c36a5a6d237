package session

// CategoryScore is one resolved stats-panel row: the canonical category,
// its average score, and how many scored answers contributed.
type CategoryScore struct {
	ID       string
	Name     string
	Color    [3]int
	AvgScore float64
	Count    int
}

// canonicalCategory pairs a canonical id with its fixed display name and
// color. The order here is the row order in the stats panel.
type canonicalCategory struct {
	id    string
	name  string
	color [3]int
}

// The three canonical stats-panel categories. tech_theory and
// tech_practical fold into the technical umbrella.
var canonicalCategories = []canonicalCategory{
	{TypeHR, "HR", [3]int{99, 102, 241}},
	{TypeTechnical, "Technical", [3]int{16, 185, 129}},
	{TypeNonTechnical, "Non-Technical", [3]int{245, 158, 11}},
}

// Resolve produces the three canonical category rows for the stats panel.
//
// When pre-aggregated statistics are supplied, tech_theory and
// tech_practical are merged into the technical bucket by count-weighted
// averaging (sum(avg_i*count_i)/sum(count_i), 0 when no counts). Otherwise
// the rows are derived by grouping the raw items per canonical category and
// averaging their scores.
//
// Every canonical category is always present in the result; a row with
// Count == 0 renders as "no data", never as zero.
func Resolve(items []FeedbackItem, pre *Statistics) []CategoryScore {
	rows := make([]CategoryScore, 0, len(canonicalCategories))

	for _, cat := range canonicalCategories {
		row := CategoryScore{ID: cat.id, Name: cat.name, Color: cat.color}

		if pre != nil && len(pre.Scores.ByCategory) > 0 {
			row.AvgScore, row.Count = resolvePre(cat.id, pre.Scores.ByCategory)
		} else {
			row.AvgScore, row.Count = resolveRaw(cat.id, items)
		}

		rows = append(rows, row)
	}

	return rows
}

// resolvePre reads a canonical category out of the pre-aggregated map,
// count-weighting the technical sub-buckets together.
func resolvePre(id string, byCategory map[string]CategoryStat) (float64, int) {
	if id != TypeTechnical {
		stat, ok := byCategory[id]
		if !ok || stat.TotalQuestions == 0 {
			return 0, 0
		}
		return round1(stat.Score), stat.TotalQuestions
	}

	var weighted float64
	var count int
	for _, tag := range []string{TypeTechnical, TypeTechTheory, TypeTechPractical} {
		stat, ok := byCategory[tag]
		if !ok {
			continue
		}
		weighted += stat.Score * float64(stat.TotalQuestions)
		count += stat.TotalQuestions
	}

	if count == 0 {
		return 0, 0
	}
	return round1(weighted / float64(count)), count
}

// resolveRaw derives a canonical category row from the raw item list.
func resolveRaw(id string, items []FeedbackItem) (float64, int) {
	var matched []FeedbackItem
	for _, item := range items {
		if NormalizeCategory(item.Type) == id {
			matched = append(matched, item)
		}
	}

	avg, ok := AverageScore(matched)
	if !ok {
		return 0, 0
	}
	return avg, scoredCount(matched)
}

// OverallAverage computes the stats-panel overall score as the simple mean
// of the categories that have at least one scored item. Weighting by
// category rather than by item keeps categories with many answers from
// dominating when scores arrive pre-aggregated; the per-row counts stay
// visible so the choice is auditable. Returns false when no category has
// data.
func OverallAverage(rows []CategoryScore) (float64, bool) {
	var total float64
	var n int
	for _, row := range rows {
		if row.Count == 0 {
			continue
		}
		total += row.AvgScore
		n++
	}
	if n == 0 {
		return 0, false
	}
	return round1(total / float64(n)), true
}
