package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/clock"
	commonerrors "github.com/aturganbekov/prime-sieve/backend/internal/common/errors"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
	"github.com/aturganbekov/prime-sieve/backend/internal/history"
)

type mockHistoryRepo struct {
	appendFunc  func(ctx context.Context, rec history.Record) error
	listAllFunc func(ctx context.Context) ([]history.Record, error)
	appended    []history.Record
}

func (m *mockHistoryRepo) Append(ctx context.Context, rec history.Record) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, rec)
	}
	m.appended = append(m.appended, rec)
	return nil
}

func (m *mockHistoryRepo) ListAll(ctx context.Context) ([]history.Record, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return m.appended, nil
}

func setupSieveService(t *testing.T) (*Service, *mockHistoryRepo, *clock.MockClock) {
	t.Helper()

	repo := &mockHistoryRepo{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	log, _ := logger.New("", "test", "error")

	svc := New(Deps{
		History:  repo,
		Clock:    mockClock,
		Log:      log,
		ImageDir: t.TempDir(),
	}, 2)

	return svc, repo, mockClock
}

func TestRun_RejectsLimitBelowTwo(t *testing.T) {
	svc, repo, _ := setupSieveService(t)

	for _, limit := range []int{-5, 0, 1} {
		_, err := svc.Run(context.Background(), limit)
		if !commonerrors.Is(err, commonerrors.ErrInvalidLimit) {
			t.Errorf("limit %d: expected invalid limit, got %v", limit, err)
		}
	}

	if len(repo.appended) != 0 {
		t.Error("rejected limits must not reach the history ledger")
	}
}

func TestRun_Success(t *testing.T) {
	svc, repo, mockClock := setupSieveService(t)

	result, err := svc.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	want := []int{2, 3, 5, 7}
	if len(result.Primes) != len(want) {
		t.Fatalf("expected %v, got %v", want, result.Primes)
	}
	for i, p := range want {
		if result.Primes[i] != p {
			t.Fatalf("expected %v, got %v", want, result.Primes)
		}
	}
	if result.Count != 4 {
		t.Errorf("expected count 4, got %d", result.Count)
	}
	if result.ASCIIImage == "" {
		t.Error("expected ascii rendering")
	}
	if result.Base64Image == "" {
		t.Error("expected base64 dot image")
	}
	if result.TableImagePath == "" {
		t.Error("expected table image path")
	}

	if len(repo.appended) != 1 {
		t.Fatalf("expected one history record, got %d", len(repo.appended))
	}
	if repo.appended[0].Limit != 10 {
		t.Errorf("expected recorded limit 10, got %d", repo.appended[0].Limit)
	}
	if !repo.appended[0].Timestamp.Equal(mockClock.Now()) {
		t.Errorf("expected server-side timestamp %v, got %v", mockClock.Now(), repo.appended[0].Timestamp)
	}
}

func TestRun_HistoryFailureIsStorageUnavailable(t *testing.T) {
	svc, repo, _ := setupSieveService(t)

	repo.appendFunc = func(ctx context.Context, rec history.Record) error {
		return errors.New("disk gone")
	}

	_, err := svc.Run(context.Background(), 10)
	if !commonerrors.Is(err, commonerrors.ErrStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
}

func TestRun_CanceledWhileWaitingForSlot(t *testing.T) {
	repo := &mockHistoryRepo{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	log, _ := logger.New("", "test", "error")

	svc := New(Deps{History: repo, Clock: mockClock, Log: log, ImageDir: t.TempDir()}, 1)

	// Occupy the only slot.
	svc.slots <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, 10)
	if !commonerrors.Is(err, commonerrors.ErrServerBusy) {
		t.Fatalf("expected server busy, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected the cause to carry context.Canceled, got %v", err)
	}
}

func TestRun_HistoryAppendOutlivesRequestDeadline(t *testing.T) {
	svc, repo, _ := setupSieveService(t)

	ctx, cancel := context.WithCancel(context.Background())

	repo.appendFunc = func(appendCtx context.Context, rec history.Record) error {
		// The request is gone by now; the append must not inherit its
		// cancellation.
		cancel()
		if err := appendCtx.Err(); err != nil {
			return err
		}
		repo.appended = append(repo.appended, rec)
		return nil
	}

	_, err := svc.Run(ctx, 10)
	if err != nil {
		t.Fatalf("expected the run to be recorded despite cancellation, got %v", err)
	}
	if len(repo.appended) != 1 {
		t.Fatalf("expected one history record, got %d", len(repo.appended))
	}
}

func TestRun_TimestampsFollowServerClock(t *testing.T) {
	svc, repo, mockClock := setupSieveService(t)

	if _, err := svc.Run(context.Background(), 10); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	mockClock.Advance(time.Minute)

	if _, err := svc.Run(context.Background(), 30); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(repo.appended) != 2 {
		t.Fatalf("expected two history records, got %d", len(repo.appended))
	}
	want := repo.appended[0].Timestamp.Add(time.Minute)
	if !repo.appended[1].Timestamp.Equal(want) {
		t.Errorf("expected second record at %v, got %v", want, repo.appended[1].Timestamp)
	}
}

func TestHistory_Passthrough(t *testing.T) {
	svc, repo, _ := setupSieveService(t)

	repo.appended = []history.Record{
		{Limit: 10, Timestamp: time.Now()},
		{Limit: 35, Timestamp: time.Now()},
	}

	records, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(records) != 2 || records[0].Limit != 10 || records[1].Limit != 35 {
		t.Errorf("unexpected records: %+v", records)
	}
}
