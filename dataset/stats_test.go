package dataset

import (
	"math"
	"testing"
)

func TestDescribe(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, math.NaN()}

	s, err := Describe(values)
	if err != nil {
		t.Fatal(err)
	}

	if s.Count != 5 {
		t.Errorf("count = %d, want 5 (NaN dropped)", s.Count)
	}
	if s.Mean != 3 {
		t.Errorf("mean = %v, want 3", s.Mean)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("min/max = %v/%v, want 1/5", s.Min, s.Max)
	}
	if s.Median != 3 {
		t.Errorf("median = %v, want 3", s.Median)
	}
}

func TestDescribe_Empty(t *testing.T) {
	if _, err := Describe([]float64{math.NaN()}); err == nil {
		t.Error("expected error for all-NaN input")
	}
}

func TestOutliers(t *testing.T) {
	values := make([]float64, 0, 101)
	for i := 0; i < 100; i++ {
		values = append(values, float64(i%10))
	}
	values = append(values, 1000) // far outside 1.5 IQR

	report, err := Outliers(values)
	if err != nil {
		t.Fatal(err)
	}
	if report.Count != 1 {
		t.Errorf("count = %d, want 1", report.Count)
	}
	if report.UpperBound >= 1000 {
		t.Errorf("upper bound = %v, outlier not outside", report.UpperBound)
	}
}

func TestTrend_Increasing(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	report, err := Trend(values)
	if err != nil {
		t.Fatal(err)
	}
	if report.Direction != "increasing" {
		t.Errorf("direction = %s, want increasing", report.Direction)
	}
	if math.Abs(report.Slope-1) > 1e-9 {
		t.Errorf("slope = %v, want 1", report.Slope)
	}
	if math.Abs(report.RSquared-1) > 1e-9 {
		t.Errorf("r squared = %v, want 1", report.RSquared)
	}
}

func TestTrend_Decreasing(t *testing.T) {
	report, err := Trend([]float64{10, 8, 6, 4})
	if err != nil {
		t.Fatal(err)
	}
	if report.Direction != "decreasing" {
		t.Errorf("direction = %s, want decreasing", report.Direction)
	}
}

func TestTrend_TooFewValues(t *testing.T) {
	if _, err := Trend([]float64{1, 2}); err == nil {
		t.Error("expected error for fewer than 3 values")
	}
}

func TestDistribution_Symmetric(t *testing.T) {
	// Symmetric values: skewness near zero.
	values := []float64{-2, -1, -1, 0, 0, 0, 1, 1, 2}

	report, err := Distribution(values)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(report.Skewness) > 0.01 {
		t.Errorf("skewness = %v, want ~0", report.Skewness)
	}
	if !report.Normal {
		t.Errorf("small symmetric sample should pass Jarque-Bera, jb = %v", report.JarqueBera)
	}
}

func TestStrongCorrelations(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"A", "B", "C"},
		Rows: [][]string{
			{"1", "2", "5"},
			{"2", "4", "1"},
			{"3", "6", "9"},
			{"4", "8", "2"},
			{"5", "10", "7"},
		},
	}

	pairs, err := StrongCorrelations(ds)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, p := range pairs {
		if p.A == "A" && p.B == "B" {
			found = true
			if math.Abs(p.Correlation-1) > 1e-9 {
				t.Errorf("corr(A,B) = %v, want 1", p.Correlation)
			}
		}
		if p.A == "A" && p.B == "C" {
			t.Errorf("A and C should not correlate strongly: %v", p.Correlation)
		}
	}
	if !found {
		t.Error("perfectly correlated pair not reported")
	}
}

func TestInsights(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"A", "B"},
		Rows: [][]string{
			{"1", "2"},
			{"2", ""},
			{"3", "6"},
		},
	}

	insights := Insights(ds)
	if len(insights) < 2 {
		t.Fatalf("insights = %v", insights)
	}
	if insights[0] != "dataset has 3 rows and 2 columns" {
		t.Errorf("first insight = %q", insights[0])
	}
}
