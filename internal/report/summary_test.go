package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func result(prefix string, status Status) Result {
	return Result{TestPrefix: prefix, MixPresentationID: 42, Status: status}
}

func TestNewSummaryHasAllStatuses(t *testing.T) {
	s := NewSummary("")
	for _, st := range Statuses() {
		if s.Results(st) == nil {
			t.Errorf("expected %s to be initialised", st)
		}
		if s.Count(st) != 0 {
			t.Errorf("expected 0 %s results, got %d", st, s.Count(st))
		}
	}
	if s.Failed() {
		t.Error("empty summary must not be failed")
	}
}

func TestStatusOrder(t *testing.T) {
	var names []string
	for _, st := range Statuses() {
		names = append(names, st.String())
	}
	if got := strings.Join(names, ","); got != "SUCCESS,FAILURE,CRASH,SKIPPED" {
		t.Errorf("unexpected status order %s", got)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := NewSummary("")
	s.Add(result("b", StatusSuccess))
	s.Add(result("x", StatusCrash))
	s.Add(result("a", StatusSuccess))

	got := s.Results(StatusSuccess)
	if len(got) != 2 || got[0].TestPrefix != "b" || got[1].TestPrefix != "a" {
		t.Errorf("expected insertion order [b a], got %+v", got)
	}
	if s.Total() != 3 {
		t.Errorf("expected 3 results, got %d", s.Total())
	}
	if !s.Failed() {
		t.Error("expected a crash to mark the summary failed")
	}

	all := s.All()
	if all[0].Status != StatusSuccess || all[2].Status != StatusCrash {
		t.Errorf("expected results grouped in status order, got %+v", all)
	}
}

func TestResultsReturnsCopy(t *testing.T) {
	s := NewSummary("")
	s.Add(result("a", StatusFailure))

	got := s.Results(StatusFailure)
	got[0].TestPrefix = "mutated"
	if s.Results(StatusFailure)[0].TestPrefix != "a" {
		t.Error("recorded results must not be mutable through Results")
	}
}

func TestConcurrentAdd(t *testing.T) {
	s := NewSummary("")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(result("p", StatusSuccess))
		}()
	}
	wg.Wait()

	if s.Count(StatusSuccess) != 50 {
		t.Errorf("expected 50 results, got %d", s.Count(StatusSuccess))
	}
}

func TestWriteConsole(t *testing.T) {
	s := NewSummary("run-1")
	s.Add(result("a", StatusSuccess))
	s.Add(result("b", StatusSuccess))
	s.Add(result("c", StatusSkipped))

	var buf bytes.Buffer
	if err := s.WriteConsole(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"SUMMARY", "SUCCESS: 2", "FAILURE: 0", "CRASH: 0", "SKIPPED: 1", "run-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in console output:\n%s", want, out)
		}
	}
	if strings.Index(out, "SUCCESS") > strings.Index(out, "SKIPPED") {
		t.Error("expected SUCCESS before SKIPPED")
	}
}

func TestWriteDetails(t *testing.T) {
	s := NewSummary("")
	s.Add(result("ok", StatusSuccess))
	failed := result("bad", StatusFailure).WithScore(12.3456)
	failed.Reason = "PSNR score below threshold."
	failed.Command = "iamfdec -i0"
	s.Add(failed)

	var buf bytes.Buffer
	if err := s.WriteDetails(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "ok ") {
		t.Errorf("successful results must not be listed:\n%s", out)
	}
	for _, want := range []string{"FAILURE bad", "psnr=12.346", "PSNR score below threshold.", "iamfdec -i0"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in details:\n%s", want, out)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	s := NewSummary("")
	crash := Result{
		TestPrefix:        "test_000002",
		MixPresentationID: 42,
		SubMixIndex:       1,
		LayoutIndex:       2,
		Lossy:             true,
		Status:            StatusCrash,
		Reason:            "decoder crash",
		Command:           "iamfdec -i0 -mp 42",
	}
	s.Add(crash)
	s.Add(Result{TestPrefix: "test_000001", MixPresentationID: 7, Status: StatusSuccess}.WithScore(96.32913591983))

	var buf bytes.Buffer
	if err := s.WriteCSV(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != "Test Prefix,Mix ID,Submix Index,Layout Index,Status,PSNR,Is Lossy,Reason,Command" {
		t.Errorf("unexpected header %v", rows[0])
	}

	success := rows[1]
	if success[0] != "test_000001" || success[4] != "SUCCESS" || success[5] != "96.32913591983" || success[6] != "lossless" {
		t.Errorf("unexpected success row %v", success)
	}
	if success[7] != "" || success[8] != "" {
		t.Errorf("expected blank reason and command, got %v", success)
	}

	crashRow := rows[2]
	want := []string{"test_000002", "42", "1", "2", "CRASH", "", "lossy", "decoder crash", "iamfdec -i0 -mp 42"}
	if strings.Join(crashRow, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, crashRow)
	}
}

func TestSaveCSV(t *testing.T) {
	s := NewSummary("")
	s.Add(result("a", StatusSkipped))

	path := filepath.Join(t.TempDir(), "summary.csv")
	if err := s.SaveCSV(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Test Prefix,") {
		t.Errorf("unexpected CSV content %q", data)
	}
}
