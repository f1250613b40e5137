package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"car-dashboard/models"
	"car-dashboard/utils"
)

// InsightService computes the aggregates the dashboard renders: KPIs,
// per-column statistics, category breakdowns and the scraping timeline.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// KPIs computes the headline metrics over the (already filtered) table.
func (s *InsightService) KPIs(t models.Table) *models.KPIReport {
	report := &models.KPIReport{TotalListings: t.Len()}

	if avg, ok := columnMean(t, models.ColPrix); ok {
		report.AveragePrice = &avg
	}
	if avg, ok := columnMean(t, models.ColKm); ok {
		report.AverageKm = &avg
	}
	if vals, ok := distinctValues(t, models.ColSource); ok {
		report.SourceCount = len(vals)
	}
	return report
}

// Stats computes mean/median/std/min/max/count for every numeric column
// that is present and carries at least one value.
func (s *InsightService) Stats(t models.Table) []models.ColumnStats {
	var out []models.ColumnStats
	for _, col := range models.NumericColumns {
		vals := numericValues(t, col)
		if len(vals) == 0 {
			continue
		}
		out = append(out, computeStats(col, vals))
	}
	return out
}

// ValueCounts returns the category breakdown of a column, descending by
// count, ties ordered by value.
func (s *InsightService) ValueCounts(t models.Table, column string) []models.ValueCount {
	cells, ok := t.Column(column)
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	for _, c := range cells {
		if c.IsMissing() {
			continue
		}
		counts[c.Text()]++
	}

	out := make([]models.ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, models.ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// TopBrands returns the n most represented Marque values.
func (s *InsightService) TopBrands(t models.Table, n int) []models.ValueCount {
	counts := s.ValueCounts(t, models.ColMarque)
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Timeline groups listings by DateScraping calendar day, ascending.
func (s *InsightService) Timeline(t models.Table) []models.TimelinePoint {
	cells, ok := t.Column(models.ColDateScraping)
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	for _, c := range cells {
		if c.Kind != models.KindTime {
			continue
		}
		counts[c.Time.Format("2006-01-02")]++
	}

	out := make([]models.TimelinePoint, 0, len(counts))
	for d, n := range counts {
		out = append(out, models.TimelinePoint{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Print writes the startup summary report to stdout.
func (s *InsightService) Print(kpis *models.KPIReport, stats []models.ColumnStats, brands []models.ValueCount) {
	sep := strings.Repeat("═", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🚗 CAR LISTINGS OVERVIEW\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("  Total listings : \033[1m%d\033[0m\n", kpis.TotalListings)
	if kpis.AveragePrice != nil {
		fmt.Printf("  Average price  : \033[1;32m%.0f MAD\033[0m\n", *kpis.AveragePrice)
	}
	if kpis.AverageKm != nil {
		fmt.Printf("  Average km     : \033[1;32m%.0f\033[0m\n", *kpis.AverageKm)
	}
	fmt.Printf("  Sources        : \033[1m%d\033[0m\n\n", kpis.SourceCount)

	if len(stats) > 0 {
		fmt.Printf("\033[1;33m  Detailed Statistics\033[0m\n")
		rows := make([][]string, 0, len(stats))
		for _, st := range stats {
			rows = append(rows, []string{
				st.Column,
				fmt.Sprintf("%.2f", st.Mean),
				fmt.Sprintf("%.2f", st.Median),
				fmt.Sprintf("%.2f", st.Std),
				fmt.Sprintf("%.0f", st.Min),
				fmt.Sprintf("%.0f", st.Max),
				fmt.Sprintf("%d", st.Count),
			})
		}
		fmt.Print(utils.RenderTable(
			[]string{"Column", "Mean", "Median", "Std", "Min", "Max", "Count"}, rows))
		fmt.Println()
	}

	if len(brands) > 0 {
		fmt.Printf("\033[1;33m  Top Brands\033[0m\n")
		for i, b := range brands {
			bar := strings.Repeat("█", b.Count)
			fmt.Printf("  \033[1m%2d.\033[0m %-20s %s (%d)\n", i+1, b.Value, bar, b.Count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// numericValues collects the non-missing values of a numeric column.
// After normalization these are integer cells, but float cells are
// accepted too so the aggregates work on any table.
func numericValues(t models.Table, col string) []float64 {
	cells, ok := t.Column(col)
	if !ok {
		return nil
	}

	var vals []float64
	for _, c := range cells {
		switch c.Kind {
		case models.KindInt:
			vals = append(vals, float64(c.Int))
		case models.KindFloat:
			vals = append(vals, c.Float)
		}
	}
	return vals
}

func columnMean(t models.Table, col string) (float64, bool) {
	vals := numericValues(t, col)
	if len(vals) == 0 {
		return 0, false
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	return round2(total / float64(len(vals))), true
}

func computeStats(col string, vals []float64) models.ColumnStats {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}
	mean := total / float64(len(sorted))

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		median = sorted[mid]
	} else {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	// Sample standard deviation; a single value has no spread.
	var std float64
	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - mean) * (v - mean)
		}
		std = math.Sqrt(sq / float64(len(sorted)-1))
	}

	return models.ColumnStats{
		Column: col,
		Mean:   round2(mean),
		Median: round2(median),
		Std:    round2(std),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Count:  len(sorted),
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
