package dataset

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary is a per-column descriptive summary.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// OutlierReport describes IQR-method outliers for one column.
type OutlierReport struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// TrendReport describes the linear trend of one column over sample order.
type TrendReport struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	Direction string  `json:"direction"` // "increasing", "decreasing", "flat"
}

// DistributionReport describes the shape of one column's distribution.
// Normality is judged with the Jarque-Bera statistic against the 5%
// chi-squared critical value.
type DistributionReport struct {
	Skewness       float64 `json:"skewness"`
	ExcessKurtosis float64 `json:"excess_kurtosis"`
	JarqueBera     float64 `json:"jarque_bera"`
	Normal         bool    `json:"normal"`
}

// CorrelationPair is a strongly correlated column pair.
type CorrelationPair struct {
	A           string  `json:"a"`
	B           string  `json:"b"`
	Correlation float64 `json:"correlation"`
}

// dropNaN returns the finite values of xs.
func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Describe computes a descriptive summary of values. NaNs are ignored.
func Describe(values []float64) (Summary, error) {
	xs := dropNaN(values)
	if len(xs) == 0 {
		return Summary{}, fmt.Errorf("describe: no finite values")
	}
	sort.Float64s(xs)

	return Summary{
		Count:  len(xs),
		Mean:   stat.Mean(xs, nil),
		Std:    stat.StdDev(xs, nil),
		Min:    xs[0],
		Q25:    stat.Quantile(0.25, stat.Empirical, xs, nil),
		Median: stat.Quantile(0.5, stat.Empirical, xs, nil),
		Q75:    stat.Quantile(0.75, stat.Empirical, xs, nil),
		Max:    xs[len(xs)-1],
	}, nil
}

// Outliers detects values outside 1.5 IQR of the quartiles.
func Outliers(values []float64) (OutlierReport, error) {
	xs := dropNaN(values)
	if len(xs) == 0 {
		return OutlierReport{}, fmt.Errorf("outliers: no finite values")
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1
	lower, upper := q1-1.5*iqr, q3+1.5*iqr

	count := 0
	for _, v := range xs {
		if v < lower || v > upper {
			count++
		}
	}
	return OutlierReport{
		Count:      count,
		Percentage: 100 * float64(count) / float64(len(xs)),
		LowerBound: lower,
		UpperBound: upper,
	}, nil
}

// Trend fits a least-squares line over sample order. Requires at least
// three finite values.
func Trend(values []float64) (TrendReport, error) {
	ys := dropNaN(values)
	if len(ys) < 3 {
		return TrendReport{}, fmt.Errorf("trend: need at least 3 finite values, have %d", len(ys))
	}
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)

	direction := "flat"
	switch {
	case slope > 0:
		direction = "increasing"
	case slope < 0:
		direction = "decreasing"
	}
	return TrendReport{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		Direction: direction,
	}, nil
}

// jarqueBeraCritical is the chi-squared(2) critical value at 5%.
const jarqueBeraCritical = 5.99

// Distribution computes shape statistics. Requires at least three finite
// values.
func Distribution(values []float64) (DistributionReport, error) {
	xs := dropNaN(values)
	if len(xs) < 3 {
		return DistributionReport{}, fmt.Errorf("distribution: need at least 3 finite values, have %d", len(xs))
	}

	skew := stat.Skew(xs, nil)
	exKurt := stat.ExKurtosis(xs, nil)
	n := float64(len(xs))
	jb := n / 6 * (skew*skew + exKurt*exKurt/4)

	return DistributionReport{
		Skewness:       skew,
		ExcessKurtosis: exKurt,
		JarqueBera:     jb,
		Normal:         jb < jarqueBeraCritical,
	}, nil
}

// strongCorrelation is the |r| threshold for reporting a pair.
const strongCorrelation = 0.7

// StrongCorrelations finds strongly correlated numeric column pairs.
// Rows where either column is missing are skipped pairwise.
func StrongCorrelations(ds *Dataset) ([]CorrelationPair, error) {
	numeric := ds.NumericColumns()
	columns := make(map[string][]float64, len(numeric))
	for _, name := range numeric {
		vals, err := ds.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		columns[name] = vals
	}

	var pairs []CorrelationPair
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			a, b := alignPair(columns[numeric[i]], columns[numeric[j]])
			if len(a) < 3 {
				continue
			}
			r := stat.Correlation(a, b, nil)
			if math.Abs(r) >= strongCorrelation {
				pairs = append(pairs, CorrelationPair{A: numeric[i], B: numeric[j], Correlation: r})
			}
		}
	}
	return pairs, nil
}

func alignPair(a, b []float64) ([]float64, []float64) {
	outA := make([]float64, 0, len(a))
	outB := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		outA = append(outA, a[i])
		outB = append(outB, b[i])
	}
	return outA, outB
}

// Insights produces human-readable observations about the dataset.
func Insights(ds *Dataset) []string {
	insights := []string{
		fmt.Sprintf("dataset has %d rows and %d columns", len(ds.Rows), len(ds.Columns)),
	}

	missingTotal := 0
	for _, n := range ds.MissingCells() {
		missingTotal += n
	}
	if missingTotal > 0 {
		insights = append(insights, fmt.Sprintf("%d cells are missing", missingTotal))
	}

	if pairs, err := StrongCorrelations(ds); err == nil && len(pairs) > 0 {
		insights = append(insights, fmt.Sprintf("%d strongly correlated column pairs", len(pairs)))
	}

	var outlierCols []string
	for _, name := range ds.NumericColumns() {
		vals, err := ds.NumericColumn(name)
		if err != nil {
			continue
		}
		if report, err := Outliers(vals); err == nil && report.Percentage > 5 {
			outlierCols = append(outlierCols, name)
		}
	}
	if len(outlierCols) > 0 {
		insights = append(insights, fmt.Sprintf("columns with many outliers: %v", outlierCols))
	}

	return insights
}
