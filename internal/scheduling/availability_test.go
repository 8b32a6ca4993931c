package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
)

type fakeTrainers map[int64]*model.Trainer

func (f fakeTrainers) GetByID(_ context.Context, id int64) (*model.Trainer, error) {
	return f[id], nil
}

type fakeOffs struct {
	facilities  map[int64]*model.Facility
	trainerOffs []*model.TrainerOff
	hours       []*model.FacilityHours
	specials    []*model.FacilitySpecialOff
	err         error
}

func (f *fakeOffs) GetFacility(_ context.Context, id int64) (*model.Facility, error) {
	return f.facilities[id], nil
}

func (f *fakeOffs) ListTrainerOffs(_ context.Context, _ int64) ([]*model.TrainerOff, error) {
	return f.trainerOffs, f.err
}

func (f *fakeOffs) ListFacilityWeeklyHours(_ context.Context, _ int64) ([]*model.FacilityHours, error) {
	return f.hours, nil
}

func (f *fakeOffs) ListFacilitySpecialOffs(_ context.Context, _ int64, _, _ civil.Date) ([]*model.FacilitySpecialOff, error) {
	return f.specials, nil
}

func ptr[T any](v T) *T { return &v }

func countType(offs []model.OffInterval, t model.OffType) int {
	n := 0
	for _, o := range offs {
		if o.Type == t {
			n++
		}
	}
	return n
}

func TestAggregator_ClosedEverySunday(t *testing.T) {
	trainers := fakeTrainers{1: {ID: 1, FacilityID: ptr(int64(10))}}
	offs := &fakeOffs{
		facilities: map[int64]*model.Facility{10: {ID: 10}},
		hours: []*model.FacilityHours{
			{FacilityID: 10, Weekday: time.Sunday, IsClosed: true},
			{FacilityID: 10, Weekday: time.Monday, OpenTime: 600, CloseTime: 2200},
		},
	}
	agg := NewAggregator(trainers, offs)

	// любой 7-дневный диапазон содержит ровно одно воскресенье
	for start := 1; start <= 7; start++ {
		from := date(2024, time.January, start)
		got, err := agg.BuildOffOverlay(context.Background(), 1, from, from.AddDays(6))
		require.NoError(t, err)

		require.Equal(t, 1, countType(got, model.OffTypeCenterRegular))
		assert.Equal(t, time.Sunday, model.Weekday(got[0].Date))
		assert.True(t, got[0].IsFullDay)
	}
}

func TestAggregator_AllSources(t *testing.T) {
	trainers := fakeTrainers{1: {ID: 1, FacilityID: ptr(int64(10))}}
	offs := &fakeOffs{
		facilities: map[int64]*model.Facility{10: {ID: 10}},
		trainerOffs: []*model.TrainerOff{
			{Weekday: ptr(time.Wednesday), StartTime: 1200, EndTime: 1300},
			{Date: ptr(date(2024, time.January, 9)), StartTime: 900, EndTime: 1800},
			{Date: ptr(date(2024, time.February, 1)), StartTime: 900, EndTime: 1800},
		},
		hours: []*model.FacilityHours{{FacilityID: 10, Weekday: time.Sunday, IsClosed: true}},
		specials: []*model.FacilitySpecialOff{
			{FacilityID: 10, Date: date(2024, time.January, 14)},
		},
	}
	agg := NewAggregator(trainers, offs)

	got, err := agg.BuildOffOverlay(context.Background(), 1, date(2024, time.January, 8), date(2024, time.January, 14))
	require.NoError(t, err)

	assert.Equal(t, 1, countType(got, model.OffTypeCenterRegular))
	assert.Equal(t, 1, countType(got, model.OffTypeCenterSpecial))
	assert.Equal(t, 2, countType(got, model.OffTypeTrainer))

	// воскресенье несёт и регулярное, и специальное закрытие - без объединения
	var sunday []model.OffInterval
	for _, o := range got {
		if o.Date == date(2024, time.January, 14) {
			sunday = append(sunday, o)
		}
	}
	assert.Len(t, sunday, 2)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.Before(got[i-1].Date))
	}

	for _, o := range got {
		if o.Type == model.OffTypeTrainer && o.Date == date(2024, time.January, 10) {
			assert.False(t, o.IsFullDay)
			assert.Equal(t, model.TimeCode(1200), o.StartTime)
			assert.Equal(t, model.TimeCode(1300), o.EndTime)
		}
	}
}

func TestAggregator_NoFacility(t *testing.T) {
	trainers := fakeTrainers{1: {ID: 1}}
	offs := &fakeOffs{
		hours: []*model.FacilityHours{{Weekday: time.Sunday, IsClosed: true}},
	}
	agg := NewAggregator(trainers, offs)

	got, err := agg.BuildOffOverlay(context.Background(), 1, date(2024, time.January, 8), date(2024, time.January, 14))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAggregator_Errors(t *testing.T) {
	trainers := fakeTrainers{
		1: {ID: 1, FacilityID: ptr(int64(99))},
		2: {ID: 2},
	}
	offs := &fakeOffs{facilities: map[int64]*model.Facility{}}
	agg := NewAggregator(trainers, offs)
	ctx := context.Background()
	from, to := date(2024, time.January, 8), date(2024, time.January, 14)

	_, err := agg.BuildOffOverlay(ctx, 42, from, to)
	assert.ErrorIs(t, err, ErrTrainerNotFound)

	_, err = agg.BuildOffOverlay(ctx, 1, from, to)
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	_, err = agg.BuildOffOverlay(ctx, 2, to, from)
	assert.ErrorIs(t, err, ErrInvalidRange)

	storageErr := errors.New("timeout")
	offs.err = storageErr
	_, err = agg.BuildOffOverlay(ctx, 2, from, to)
	assert.ErrorIs(t, err, storageErr)
}
