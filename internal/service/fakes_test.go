package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
)

var errStore = errors.New("store unavailable")

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

type fakeBookings struct {
	mu       sync.Mutex
	bookings []*model.Booking
	requests *fakeRequests

	// сколько строк "вернёт" база при сохранении; -1 значит все
	scheduleLimit int
	linkLimit     int
	createErr     error
	created       []model.Occurrence
}

func newFakeBookings(requests *fakeRequests) *fakeBookings {
	return &fakeBookings{requests: requests, scheduleLimit: -1, linkLimit: -1}
}

func (f *fakeBookings) FindOverlapping(_ context.Context, trainerID int64, d civil.Date, start, end model.TimeCode) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.TrainerID == trainerID && b.Date == d && b.RequestStatus != model.PTRequestStatusRejected &&
			scheduling.Overlaps(b.StartTime, b.EndTime, start, end) {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) ListByTrainer(_ context.Context, trainerID int64, from, to civil.Date) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Booking
	for _, b := range f.bookings {
		if b.TrainerID == trainerID && !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) CreateForRequest(_ context.Context, requestID int64, occs []model.Occurrence) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return 0, 0, f.createErr
	}
	schedules, links := f.counts(len(occs))
	f.link(f.requests.byID[requestID], occs[:links])
	return schedules, links, nil
}

// CreateRequestWithSchedules повторяет откат транзакции: при ошибке или нуле связей
// ни заявка, ни занятия не сохраняются
func (f *fakeBookings) CreateRequestWithSchedules(_ context.Context, req *model.PTRequest, occs []model.Occurrence) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return 0, 0, f.createErr
	}
	schedules, links := f.counts(len(occs))
	if links == 0 {
		return 0, 0, scheduling.ErrScheduleCreationFailedAll
	}

	if err := f.requests.Create(context.Background(), req); err != nil {
		return 0, 0, err
	}
	f.link(req, occs[:links])
	return schedules, links, nil
}

func (f *fakeBookings) counts(n int) (int, int) {
	schedules, links := n, n
	if f.scheduleLimit >= 0 {
		schedules = f.scheduleLimit
	}
	if f.linkLimit >= 0 {
		links = min(f.linkLimit, n)
	}
	return schedules, links
}

func (f *fakeBookings) link(req *model.PTRequest, occs []model.Occurrence) {
	f.created = append(f.created, occs...)
	for _, occ := range occs {
		f.bookings = append(f.bookings, &model.Booking{
			ID:            int64(len(f.bookings) + 1),
			RequestID:     req.ID,
			TrainerID:     req.TrainerID,
			MemberID:      req.MemberID,
			Date:          occ.Date,
			StartTime:     occ.StartTime,
			EndTime:       occ.EndTime,
			RequestStatus: req.Status,
		})
	}
}

type fakeRequests struct {
	byID   map[int64]*model.PTRequest
	nextID int64
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{byID: make(map[int64]*model.PTRequest)}
}

func (f *fakeRequests) Create(_ context.Context, req *model.PTRequest) error {
	f.nextID++
	req.ID = f.nextID
	f.byID[req.ID] = req
	return nil
}

func (f *fakeRequests) GetByID(_ context.Context, id int64) (*model.PTRequest, error) {
	return f.byID[id], nil
}

func (f *fakeRequests) UpdateStatus(_ context.Context, id int64, status model.PTRequestStatus) error {
	req, ok := f.byID[id]
	if !ok || !req.IsPending() {
		return errors.New("pt request not updated")
	}
	req.Status = status
	return nil
}

type fakeRecords struct {
	counts map[int64]int
	err    error
}

func (f *fakeRecords) HasAnyRecord(_ context.Context, bookingID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.counts[bookingID] > 0, nil
}

func (f *fakeRecords) CountByBookings(_ context.Context, ids []int64) (map[int64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[int64]int, len(ids))
	for _, id := range ids {
		if n, ok := f.counts[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

type fakeOverlay struct {
	offs  []model.OffInterval
	err   error
	calls int
}

func (f *fakeOverlay) BuildOffOverlay(_ context.Context, _ int64, from, to civil.Date) ([]model.OffInterval, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.OffInterval
	for _, off := range f.offs {
		if !off.Date.Before(from) && !off.Date.After(to) {
			out = append(out, off)
		}
	}
	return out, nil
}
