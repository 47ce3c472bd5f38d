package domain

import "testing"

func TestSuffixedName(t *testing.T) {
	cases := []struct {
		name string
		n    int
		want string
	}{
		{"a.txt", 1, "a (1).txt"},
		{"a.txt", 2, "a (2).txt"},
		{"archive.tar.gz", 1, "archive.tar (1).gz"},
		{"noext", 3, "noext (3)"},
		{".hidden", 1, ".hidden (1)"},
	}
	for _, tc := range cases {
		if got := SuffixedName(tc.name, tc.n); got != tc.want {
			t.Errorf("SuffixedName(%q, %d) = %q, want %q", tc.name, tc.n, got, tc.want)
		}
	}
}

func TestIsYearDirName(t *testing.T) {
	valid := []string{"2022", "1999", "0000"}
	for _, name := range valid {
		if !IsYearDirName(name) {
			t.Errorf("expected %q to be a year dir name", name)
		}
	}
	invalid := []string{"202", "20222", "2a22", "year", "", "2022 "}
	for _, name := range invalid {
		if IsYearDirName(name) {
			t.Errorf("expected %q to not be a year dir name", name)
		}
	}
}

func TestPlanItemRelativeTarget(t *testing.T) {
	item := PlanItem{
		TargetDir:  "/downloads/2023",
		TargetPath: "/downloads/2023/note (1).txt",
	}
	if got := item.RelativeTarget(); got != "2023/note (1).txt" {
		t.Fatalf("unexpected relative target: %q", got)
	}
}

func TestRunReportCounts(t *testing.T) {
	report := RunReport{
		Results: []Result{
			{},
			{Err: errFake},
			{},
		},
	}
	if report.SucceededCount() != 2 {
		t.Fatalf("expected 2 succeeded, got %d", report.SucceededCount())
	}
	if report.FailedCount() != 1 {
		t.Fatalf("expected 1 failed, got %d", report.FailedCount())
	}
}

type fakeError struct{}

func (fakeError) Error() string { return "fake" }

var errFake = fakeError{}
