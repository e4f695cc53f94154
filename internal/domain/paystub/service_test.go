package paystub

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	failOn time.Time
}

func (f *fakeRenderer) Render(draft Draft, payment PaymentInfo, meta RenderMeta) ([]byte, error) {
	if !f.failOn.IsZero() && draft.Period.PayDate.Equal(f.failOn) {
		return nil, errors.New("render exploded")
	}
	return []byte("%PDF-fake"), nil
}

type fakeStore struct {
	records []Record
	failOn  time.Time
}

func (f *fakeStore) Insert(ctx context.Context, rec Record) (string, error) {
	if !f.failOn.IsZero() && rec.PayDate.Equal(f.failOn) {
		return "", errors.New("insert rejected")
	}
	f.records = append(f.records, rec)
	return fmt.Sprintf("id-%d", len(f.records)), nil
}

func hourlyBatchProfile() CompensationProfile {
	return CompensationProfile{
		EmployeeID:        "emp-9",
		EmployeeName:      "Sam Reyes",
		PayType:           PayTypeHourly,
		HourlyRate:        d("30"),
		HoursPerPeriod:    d("80"),
		MostRecentPayDate: date(2025, time.October, 3),
		PeriodCount:       3,
	}
}

func TestServiceGeneratesFullBatch(t *testing.T) {
	store := &fakeStore{}
	service := NewService(NewEngine(TaxYear2025()), &fakeRenderer{}, store, nil)

	result, err := service.Generate(context.Background(), hourlyBatchProfile(), PaymentInfo{Method: "Direct Deposit", Status: "Paid"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Completed)
	assert.Empty(t, result.Failures)
	assert.Len(t, result.PaystubIDs, 3)
	require.Len(t, store.records, 3)

	first := store.records[0]
	assert.Equal(t, "emp-9", first.EmployeeID)
	assert.Equal(t, "KYRONIX_PAYSTUB_REYES_20250905.pdf", first.FileName)
	assert.False(t, first.Encrypted)
}

func TestServiceContinuesPastRenderFailure(t *testing.T) {
	store := &fakeStore{}
	renderer := &fakeRenderer{failOn: date(2025, time.September, 19)}
	service := NewService(NewEngine(TaxYear2025()), renderer, store, nil)

	result, err := service.Generate(context.Background(), hourlyBatchProfile(), PaymentInfo{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Completed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, date(2025, time.September, 19), result.Failures[0].PayDate)
	assert.Contains(t, result.Failures[0].Reason, "render exploded")
	assert.Len(t, store.records, 2)
}

func TestServiceContinuesPastStoreFailure(t *testing.T) {
	store := &fakeStore{failOn: date(2025, time.October, 3)}
	service := NewService(NewEngine(TaxYear2025()), &fakeRenderer{}, store, nil)

	result, err := service.Generate(context.Background(), hourlyBatchProfile(), PaymentInfo{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Completed)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Reason, "insert rejected")
}

func TestServiceRejectsInvalidProfileUpfront(t *testing.T) {
	service := NewService(NewEngine(TaxYear2025()), &fakeRenderer{}, &fakeStore{}, nil)

	profile := hourlyBatchProfile()
	profile.HourlyRate = d("0")

	_, err := service.Generate(context.Background(), profile, PaymentInfo{})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestServiceStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &fakeStore{}
	service := NewService(NewEngine(TaxYear2025()), &fakeRenderer{}, store, nil)

	result, err := service.Generate(ctx, hourlyBatchProfile(), PaymentInfo{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Completed)
	assert.Empty(t, store.records)
}

func TestServicePropagatesScheduleWarnings(t *testing.T) {
	profile := hourlyBatchProfile()
	profile.MostRecentPayDate = date(2025, time.October, 1) // a Wednesday
	profile.HireDate = date(2025, time.September, 20)

	service := NewService(NewEngine(TaxYear2025()), &fakeRenderer{}, &fakeStore{}, nil)
	result, err := service.Generate(context.Background(), profile, PaymentInfo{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "Wednesday")
	assert.Contains(t, result.Warnings[1], "before hire date")
}
