package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNegotiator struct {
	mu           sync.Mutex
	negotiations map[string]*models.Negotiation
	failing      map[string]error
	nextID       string
	requests     []models.NegotiateRequest
}

func newFakeNegotiator() *fakeNegotiator {
	return &fakeNegotiator{
		negotiations: map[string]*models.Negotiation{},
		failing:      map[string]error{},
	}
}

func (f *fakeNegotiator) Negotiate(ctx context.Context, req *models.NegotiateRequest) (*models.NegotiateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, *req)

	id := req.NegotiationID
	if id == "" {
		id = f.nextID
	}
	return &models.NegotiateResponse{NegotiationID: id, Status: models.NegotiationActive}, nil
}

func (f *fakeNegotiator) GetNegotiation(ctx context.Context, id string) (*models.Negotiation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failing[id]; ok {
		return nil, err
	}
	n, ok := f.negotiations[id]
	if !ok {
		return nil, errors.New("HTTP error! status: 404")
	}
	return n, nil
}

type memoryRepository struct {
	ids []string
}

func (r *memoryRepository) Save(ctx context.Context, id string) error {
	for _, existing := range r.ids {
		if existing == id {
			return nil
		}
	}
	r.ids = append([]string{id}, r.ids...)
	return nil
}

func (r *memoryRepository) List(ctx context.Context) ([]models.SavedNegotiation, error) {
	out := make([]models.SavedNegotiation, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, models.SavedNegotiation{ID: id, CreatedAt: time.Now()})
	}
	return out, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	for i, existing := range r.ids {
		if existing == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestStartSavesNegotiation(t *testing.T) {
	negotiator := newFakeNegotiator()
	negotiator.nextID = "neg-1"
	repo := &memoryRepository{}
	svc := NewNegotiationService(negotiator, repo, utils.NewNopLogger())

	resp, err := svc.Start(context.Background(), "I want to rent the flat for 20000 a month")
	require.NoError(t, err)

	assert.Equal(t, "neg-1", resp.NegotiationID)
	assert.Equal(t, []string{"neg-1"}, repo.ids)
	require.Len(t, negotiator.requests, 1)
	assert.Equal(t, models.SpeakerOne, negotiator.requests[0].Speaker)
	assert.Empty(t, negotiator.requests[0].NegotiationID)
}

func TestStartWithoutIDFails(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewNegotiationService(newFakeNegotiator(), repo, utils.NewNopLogger())

	_, err := svc.Start(context.Background(), "hello there")
	assert.Error(t, err)
	assert.Empty(t, repo.ids)
}

func TestSendAlternatesSpeaker(t *testing.T) {
	tests := []struct {
		name     string
		messages []models.Message
		want     string
	}{
		{name: "no messages", want: models.SpeakerOne},
		{name: "after user1", messages: []models.Message{{Speaker: models.SpeakerOne, Message: "a"}}, want: models.SpeakerTwo},
		{name: "after user2", messages: []models.Message{{Speaker: models.SpeakerOne}, {Speaker: models.SpeakerTwo}}, want: models.SpeakerOne},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			negotiator := newFakeNegotiator()
			negotiator.negotiations["neg-1"] = &models.Negotiation{
				ID:       "neg-1",
				Status:   models.NegotiationActive,
				Messages: tt.messages,
			}
			svc := NewNegotiationService(negotiator, &memoryRepository{}, utils.NewNopLogger())

			_, err := svc.Send(context.Background(), "neg-1", "counter offer")
			require.NoError(t, err)

			require.Len(t, negotiator.requests, 1)
			assert.Equal(t, tt.want, negotiator.requests[0].Speaker)
			assert.Equal(t, "neg-1", negotiator.requests[0].NegotiationID)
		})
	}
}

func TestSendToCompletedNegotiation(t *testing.T) {
	negotiator := newFakeNegotiator()
	negotiator.negotiations["neg-1"] = &models.Negotiation{ID: "neg-1", Status: models.NegotiationCompleted}
	svc := NewNegotiationService(negotiator, &memoryRepository{}, utils.NewNopLogger())

	_, err := svc.Send(context.Background(), "neg-1", "one more thing")

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Empty(t, negotiator.requests)
}

func TestHistoryKeepsOrderAndDropsFailures(t *testing.T) {
	negotiator := newFakeNegotiator()
	repo := &memoryRepository{}
	ctx := context.Background()

	for _, id := range []string{"neg-1", "neg-2", "neg-3", "neg-4", "neg-5", "neg-6"} {
		negotiator.negotiations[id] = &models.Negotiation{ID: id, Status: models.NegotiationActive}
		require.NoError(t, repo.Save(ctx, id))
	}
	negotiator.failing["neg-2"] = errors.New("connection reset")
	negotiator.failing["neg-5"] = errors.New("HTTP error! status: 500")

	svc := NewNegotiationService(negotiator, repo, utils.NewNopLogger())
	history, err := svc.History(ctx)
	require.NoError(t, err)

	got := make([]string, 0, len(history))
	for _, n := range history {
		got = append(got, n.ID)
	}
	assert.Equal(t, []string{"neg-6", "neg-4", "neg-3", "neg-1"}, got)
}

func TestHistoryCancelled(t *testing.T) {
	negotiator := newFakeNegotiator()
	repo := &memoryRepository{}
	require.NoError(t, repo.Save(context.Background(), "neg-1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewNegotiationService(negotiator, repo, utils.NewNopLogger())
	_, err := svc.History(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForget(t *testing.T) {
	repo := &memoryRepository{ids: []string{"neg-2", "neg-1"}}
	svc := NewNegotiationService(newFakeNegotiator(), repo, utils.NewNopLogger())

	require.NoError(t, svc.Forget(context.Background(), "neg-2"))
	assert.Equal(t, []string{"neg-1"}, repo.ids)
}
