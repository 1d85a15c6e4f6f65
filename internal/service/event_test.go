package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/myevents/myevents-go/internal/model"
)

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format(time.DateOnly)
}

func pastDate() string {
	return time.Now().UTC().AddDate(0, 0, -7).Format(time.DateOnly)
}

func newTestEventService() *EventService {
	return NewEventService(newFakeEventRepo())
}

func TestEventCreate(t *testing.T) {
	svc := newTestEventService()

	resp, err := svc.Create(context.Background(), model.CreateEventRequest{
		Name:      "Conf",
		EventDate: futureDate(),
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if resp.Status != model.EventStatusDraft {
		t.Errorf("Status = %q, want draft default", resp.Status)
	}
	if resp.OrganizerID != 1 {
		t.Errorf("OrganizerID = %d, want 1", resp.OrganizerID)
	}
}

func TestEventCreatePastDate(t *testing.T) {
	svc := newTestEventService()

	_, err := svc.Create(context.Background(), model.CreateEventRequest{
		Name:      "Conf",
		EventDate: pastDate(),
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if !errors.Is(err, ErrEventDateInPast) {
		t.Errorf("Create() error = %v, want ErrEventDateInPast", err)
	}
}

func TestEventCreateMalformedDate(t *testing.T) {
	svc := newTestEventService()

	_, err := svc.Create(context.Background(), model.CreateEventRequest{
		Name:      "Conf",
		EventDate: "31-12-2030",
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if !errors.Is(err, ErrInvalidEventDate) {
		t.Errorf("Create() error = %v, want ErrInvalidEventDate", err)
	}
}

func TestEventCreateToday(t *testing.T) {
	svc := newTestEventService()

	// Today is not in the past.
	_, err := svc.Create(context.Background(), model.CreateEventRequest{
		Name:      "Conf",
		EventDate: time.Now().UTC().Format(time.DateOnly),
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if err != nil {
		t.Fatalf("Create() unexpected error for today's date: %v", err)
	}
}

func TestEventGetNotFound(t *testing.T) {
	svc := newTestEventService()

	_, err := svc.Get(context.Background(), 999)
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("Get() error = %v, want ErrEventNotFound", err)
	}
}

func TestEventUpdatePartialPatch(t *testing.T) {
	svc := newTestEventService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateEventRequest{
		Name:      "Conf",
		EventDate: futureDate(),
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	name := "GopherConf"
	resp, err := svc.Update(ctx, created.ID, model.EventPatch{Name: &name}, 1)
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if resp.Name != "GopherConf" {
		t.Errorf("Name = %q, want GopherConf", resp.Name)
	}
	if resp.Location != "Berlin" {
		t.Errorf("Location = %q, untouched field should survive the patch", resp.Location)
	}
}

func TestEventUpdateForbiddenForNonOrganizer(t *testing.T) {
	svc := newTestEventService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateEventRequest{
		Name:      "Conf",
		EventDate: futureDate(),
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	name := "Hijacked"
	_, err = svc.Update(ctx, created.ID, model.EventPatch{Name: &name}, 2)
	if !errors.Is(err, ErrNotOrganizer) {
		t.Errorf("Update() error = %v, want ErrNotOrganizer", err)
	}
}

func TestEventUpdateDateToPast(t *testing.T) {
	svc := newTestEventService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateEventRequest{
		Name:      "Conf",
		EventDate: futureDate(),
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	past := time.Now().UTC().AddDate(0, 0, -1)
	_, err = svc.Update(ctx, created.ID, model.EventPatch{EventDate: &past}, 1)
	if !errors.Is(err, ErrEventDateInPast) {
		t.Errorf("Update() error = %v, want ErrEventDateInPast", err)
	}
}

func TestEventCompletedStatusIsTerminal(t *testing.T) {
	svc := newTestEventService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateEventRequest{
		Name:      "Conf",
		EventDate: futureDate(),
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	completed := model.EventStatusCompleted
	if _, err := svc.Update(ctx, created.ID, model.EventPatch{Status: &completed}, 1); err != nil {
		t.Fatalf("Update() to completed unexpected error: %v", err)
	}

	for _, status := range []model.EventStatus{
		model.EventStatusDraft,
		model.EventStatusPublished,
		model.EventStatusCancelled,
	} {
		s := status
		_, err := svc.Update(ctx, created.ID, model.EventPatch{Status: &s}, 1)
		if !errors.Is(err, ErrEventCompleted) {
			t.Errorf("Update() to %q error = %v, want ErrEventCompleted", status, err)
		}
	}

	// Re-asserting completed is allowed.
	if _, err := svc.Update(ctx, created.ID, model.EventPatch{Status: &completed}, 1); err != nil {
		t.Errorf("Update() re-asserting completed unexpected error: %v", err)
	}
}

func TestEventDeleteForbiddenForNonOrganizer(t *testing.T) {
	svc := newTestEventService()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateEventRequest{
		Name:      "Conf",
		EventDate: futureDate(),
		Location:  "Berlin",
		Capacity:  100,
	}, 1)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, 2); !errors.Is(err, ErrNotOrganizer) {
		t.Errorf("Delete() error = %v, want ErrNotOrganizer", err)
	}
	if err := svc.Delete(ctx, created.ID, 1); err != nil {
		t.Errorf("Delete() by organizer unexpected error: %v", err)
	}
}

func TestEventListViews(t *testing.T) {
	svc := newTestEventService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, model.CreateEventRequest{
		Name: "Go Meetup", EventDate: futureDate(), Location: "Berlin", Capacity: 10,
	}, 1); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	published, err := svc.Create(ctx, model.CreateEventRequest{
		Name: "Rust Summit", EventDate: futureDate(), Location: "Paris", Capacity: 10, Status: "published",
	}, 1)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, model.CreateEventRequest{
		Name: "Other Conf", EventDate: futureDate(), Location: "Rome", Capacity: 10,
	}, 2); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	owned, err := svc.ListOwned(ctx, 1, 0, 100, "")
	if err != nil {
		t.Fatalf("ListOwned() unexpected error: %v", err)
	}
	if len(owned) != 2 {
		t.Errorf("ListOwned() returned %d events, want 2", len(owned))
	}

	public, err := svc.ListPublished(ctx, 0, 100, "")
	if err != nil {
		t.Fatalf("ListPublished() unexpected error: %v", err)
	}
	if len(public) != 1 || public[0].ID != published.ID {
		t.Errorf("ListPublished() = %+v, want only the published event", public)
	}

	// Case-insensitive substring filter.
	filtered, err := svc.ListOwned(ctx, 1, 0, 100, "go mee")
	if err != nil {
		t.Fatalf("ListOwned() unexpected error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Go Meetup" {
		t.Errorf("ListOwned() with filter = %+v, want only Go Meetup", filtered)
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		skip, limit         int
		wantSkip, wantLimit int
	}{
		{0, 50, 0, 50},
		{-5, 50, 0, 50},
		{10, 0, 10, 100},
		{0, 500, 0, 100},
	}
	for _, tt := range tests {
		gotSkip, gotLimit := normalizePage(tt.skip, tt.limit)
		if gotSkip != tt.wantSkip || gotLimit != tt.wantLimit {
			t.Errorf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.skip, tt.limit, gotSkip, gotLimit, tt.wantSkip, tt.wantLimit)
		}
	}
}
