package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"lashdiary/internal/domain"
	"lashdiary/internal/pkg/slotlock"
)

// fakeStore is an in-memory stand-in for the storage layer that enforces
// the same uniqueness rule as the partial index: at most one non-cancelled
// booking per slot.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.ShowcaseBooking
	projects map[string]*domain.Project
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: make(map[int64]*domain.ShowcaseBooking),
		projects: make(map[string]*domain.Project),
	}
}

func (f *fakeStore) addProject(token string, id int64) {
	f.projects[token] = &domain.Project{
		ID: id, Kind: domain.ProjectWebsiteBuild, Name: fmt.Sprintf("Project %d", id),
		InviteToken: token, Status: domain.ProjectPending,
	}
}

func (f *fakeStore) Create(ctx context.Context, b *domain.ShowcaseBooking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.SlotDate == b.SlotDate && existing.SlotMinutes == b.SlotMinutes &&
			existing.Status != domain.BookingCancelled {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	b.ID = f.nextID
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeStore) CountActiveAtSlot(ctx context.Context, slotDate string, slotMinutes int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.SlotDate == slotDate && b.SlotMinutes == slotMinutes && b.Status != domain.BookingCancelled {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*domain.ShowcaseBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) GetActiveByProjectID(ctx context.Context, projectID int64) (*domain.ShowcaseBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ProjectID == projectID && b.Status != domain.BookingCancelled {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListByDate(ctx context.Context, slotDate string) ([]domain.ShowcaseBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ShowcaseBooking
	for _, b := range f.bookings {
		if b.SlotDate == slotDate {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) CancelWithReason(ctx context.Context, id int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = domain.BookingCancelled
	b.CancellationReason = reason
	return nil
}

func (f *fakeStore) GetByToken(ctx context.Context, token string) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[token]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) AttachShowcaseBooking(ctx context.Context, projectID, bookingID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == projectID {
			id := bookingID
			p.ShowcaseBookingID = &id
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStore) DetachShowcaseBooking(ctx context.Context, projectID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == projectID {
			p.ShowcaseBookingID = nil
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeConsults struct{}

func (fakeConsults) CountActiveAtSlot(ctx context.Context, slotDate string, slotMinutes int) (int64, error) {
	return 0, nil
}

type fakeOutbox struct{}

func (fakeOutbox) Enqueue(ctx context.Context, actionType string, payload any) error { return nil }

// projectRepoAdapter maps the fake store onto the ProjectRepository shape.
type projectRepoAdapter struct{ *fakeStore }

func (a projectRepoAdapter) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return a.GetProjectByID(ctx, id)
}

// Many clients racing for the same slot: exactly one wins, everyone else
// gets a conflict.
func TestService_CreateShowcase_ConcurrentSameSlot(t *testing.T) {
	store := newFakeStore()
	const n = 20
	for i := 0; i < n; i++ {
		store.addProject(fmt.Sprintf("tok-%d", i), int64(i+1))
	}

	loc := time.FixedZone("EAT", 3*60*60)
	service := NewService(store, fakeConsults{}, projectRepoAdapter{store}, fakeOutbox{}, slotlock.New(), loc, 45*time.Minute, "hello@lashdiary.co.ke")

	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := CreateShowcaseRequest{
				Token:       fmt.Sprintf("tok-%d", i),
				ClientName:  fmt.Sprintf("Client %d", i),
				ClientEmail: fmt.Sprintf("client%d@example.com", i),
				Date:        "2024-07-15",
				Time:        "2:30 PM",
			}
			_, err := service.CreateShowcase(context.Background(), req)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrOverbooking):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)

	cnt, err := store.CountActiveAtSlot(context.Background(), "2024-07-15", 14*60+30)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

// After a cancellation the slot is bookable again.
func TestService_CreateShowcase_CancelledSlotReopens(t *testing.T) {
	store := newFakeStore()
	store.addProject("tok-first", 1)
	store.addProject("tok-second", 2)

	loc := time.FixedZone("EAT", 3*60*60)
	service := NewService(store, fakeConsults{}, projectRepoAdapter{store}, fakeOutbox{}, slotlock.New(), loc, 45*time.Minute, "hello@lashdiary.co.ke")

	first, err := service.CreateShowcase(context.Background(), CreateShowcaseRequest{
		Token: "tok-first", ClientName: "A", ClientEmail: "a@example.com",
		Date: "2024-07-15", Time: "10:00 AM",
	})
	assert.NoError(t, err)

	_, err = service.CreateShowcase(context.Background(), CreateShowcaseRequest{
		Token: "tok-second", ClientName: "B", ClientEmail: "b@example.com",
		Date: "2024-07-15", Time: "10:00 AM",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)

	_, err = service.CancelShowcase(context.Background(), first.ID, "reschedule")
	assert.NoError(t, err)

	second, err := service.CreateShowcase(context.Background(), CreateShowcaseRequest{
		Token: "tok-second", ClientName: "B", ClientEmail: "b@example.com",
		Date: "2024-07-15", Time: "10:00 AM",
	})
	assert.NoError(t, err)
	assert.Equal(t, 10*60, second.SlotMinutes)
}
