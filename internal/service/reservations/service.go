package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/resago/booking-service/internal/domain"
	reservationRepo "github.com/resago/booking-service/internal/infra/storage/reservation"
	"github.com/resago/booking-service/internal/service/reservations/models"
)

// Service сервис для работы с резервациями
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает резервацию по ID
// Клиент может видеть только собственную резервацию
func (s *Service) GetByID(ctx context.Context, id int64, clientID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for client=%d", id, clientID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if reservation.ClientID != clientID {
		s.logger.Warn("GetByID: access denied for client=%d to reservation id=%d", clientID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetClientReservations получает историю резерваций клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientReservations: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientReservations: successfully fetched %d reservations for client=%d",
		len(reservations), req.ClientID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет резервацию
// Клиент может отменить только собственную резервацию (cancelled_by_client)
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by client=%d", reservationID, req.ClientID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for reservation id=%d", reservationID)
		return fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if reservation.ClientID != req.ClientID {
		s.logger.Warn("Cancel: access denied for client=%d to reservation id=%d", req.ClientID, reservationID)
		return ErrAccessDenied
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, domain.StatusCancelledByClient, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}
