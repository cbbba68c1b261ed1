package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/vakeel-gateway/internal/models"
	"github.com/BerylCAtieno/vakeel-gateway/internal/repository"
	"github.com/BerylCAtieno/vakeel-gateway/internal/utils"
	"golang.org/x/sync/errgroup"
)

// historyConcurrency bounds the number of negotiations fetched at once.
const historyConcurrency = 4

// Negotiator talks to the negotiation backend. *client.Client satisfies it.
type Negotiator interface {
	Negotiate(ctx context.Context, req *models.NegotiateRequest) (*models.NegotiateResponse, error)
	GetNegotiation(ctx context.Context, id string) (*models.Negotiation, error)
}

type NegotiationService interface {
	Start(ctx context.Context, message string) (*models.NegotiateResponse, error)
	Send(ctx context.Context, id, message string) (*models.NegotiateResponse, error)
	Get(ctx context.Context, id string) (*models.Negotiation, error)
	History(ctx context.Context) ([]*models.Negotiation, error)
	Forget(ctx context.Context, id string) error
}

type negotiationService struct {
	negotiator Negotiator
	repo       repository.NegotiationRepository
	logger     *utils.Logger
}

func NewNegotiationService(negotiator Negotiator, repo repository.NegotiationRepository, logger *utils.Logger) NegotiationService {
	return &negotiationService{
		negotiator: negotiator,
		repo:       repo,
		logger:     logger,
	}
}

// Start opens a negotiation with user1's opening message and remembers its id.
func (s *negotiationService) Start(ctx context.Context, message string) (*models.NegotiateResponse, error) {
	resp, err := s.negotiator.Negotiate(ctx, &models.NegotiateRequest{
		Speaker: models.SpeakerOne,
		Message: message,
	})
	if err != nil {
		return nil, err
	}
	if resp.NegotiationID == "" {
		return nil, errors.New("negotiation backend returned no negotiation id")
	}

	if err := s.repo.Save(ctx, resp.NegotiationID); err != nil {
		return nil, err
	}

	s.logger.Info("Negotiation started", "negotiation_id", resp.NegotiationID)
	return resp, nil
}

// Send adds a message on behalf of whichever party speaks next.
func (s *negotiationService) Send(ctx context.Context, id, message string) (*models.NegotiateResponse, error) {
	negotiation, err := s.negotiator.GetNegotiation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load negotiation %s: %w", id, err)
	}
	if negotiation.Completed() {
		return nil, utils.NewBadRequestError("negotiation is already completed")
	}

	speaker := negotiation.NextSpeaker()
	resp, err := s.negotiator.Negotiate(ctx, &models.NegotiateRequest{
		NegotiationID: id,
		Speaker:       speaker,
		Message:       message,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Message sent", "negotiation_id", id, "speaker", speaker, "status", resp.Status)
	return resp, nil
}

func (s *negotiationService) Get(ctx context.Context, id string) (*models.Negotiation, error) {
	return s.negotiator.GetNegotiation(ctx, id)
}

// History loads every saved negotiation, newest first. Negotiations that
// fail to load are left out.
func (s *negotiationService) History(ctx context.Context) ([]*models.Negotiation, error) {
	saved, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	loaded := make([]*models.Negotiation, len(saved))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyConcurrency)

	for i, entry := range saved {
		i, entry := i, entry
		g.Go(func() error {
			negotiation, err := s.negotiator.GetNegotiation(gctx, entry.ID)
			if err != nil {
				s.logger.Warn("Skipping negotiation that failed to load",
					"negotiation_id", entry.ID,
					"error", err)
				return nil
			}
			loaded[i] = negotiation
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	history := make([]*models.Negotiation, 0, len(loaded))
	for _, negotiation := range loaded {
		if negotiation != nil {
			history = append(history, negotiation)
		}
	}
	return history, nil
}

func (s *negotiationService) Forget(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
