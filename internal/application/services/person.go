package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"person-registry-api/internal/application/ports"
	domain "person-registry-api/internal/domain/person"
	"person-registry-api/internal/infrastructure/metrics"
	"person-registry-api/internal/infrastructure/mq"
	"person-registry-api/internal/interface/api/rest/dto/person"
)

type PersonService struct {
	personRepository domain.Repository
	events           ports.EventPublisher
	mCounter         *prometheus.CounterVec
	logger           *zap.Logger
	now              func() time.Time
}

// NewPersonService wires the service. events may be nil, in which case no
// lifecycle events are emitted.
func NewPersonService(
	personRepository domain.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.PersonService {
	return &PersonService{
		personRepository: personRepository,
		events:           events,
		mCounter:         mCounter,
		logger:           logger,
		now:              time.Now,
	}
}

func (ps *PersonService) FindPersonByID(ctx context.Context, id domain.ID) (*domain.Person, error) {
	p, err := ps.personRepository.FetchPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{ID: id}
	}

	return p, nil
}

func (ps *PersonService) FindPersons(ctx context.Context, page, size int) (*domain.Page, error) {
	pg, err := ps.personRepository.FetchPersons(ctx, page, size)
	if err != nil {
		return nil, err
	}

	return pg, nil
}

func (ps *PersonService) CreatePerson(ctx context.Context, p domain.Person) (*domain.Person, error) {
	exists, err := ps.personRepository.ExistsByCPF(ctx, p.CPF)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrCPFAlreadyExists, p.CPF)
	}

	p.ID = 0
	p.LinkAddresses()

	pRet, err := ps.personRepository.CreatePerson(ctx, p)
	if err != nil {
		return nil, err
	}

	ps.emit(http.MethodPost, pRet)
	ps.mCounter.WithLabelValues(metrics.PersonCreated).Inc()

	return pRet, nil
}

// UpdatePerson replaces the stored person and its whole address set. The CPF
// can never change through an update.
func (ps *PersonService) UpdatePerson(ctx context.Context, id domain.ID, p domain.Person) (*domain.Person, error) {
	current, err := ps.FindPersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.SameCPF(current.CPF, p.CPF) {
		return nil, fmt.Errorf("%w: the CPF of a registered person cannot be changed", domain.ErrCPFMismatch)
	}

	p.ID = id
	p.LinkAddresses()

	pRet, err := ps.personRepository.UpdatePerson(ctx, p)
	if err != nil {
		return nil, err
	}
	if pRet == nil {
		// deleted between the lookup and the write
		return nil, &domain.NotFoundError{ID: id}
	}

	ps.emit(http.MethodPut, pRet)
	ps.mCounter.WithLabelValues(metrics.PersonUpdated).Inc()

	return pRet, nil
}

func (ps *PersonService) DeletePerson(ctx context.Context, id domain.ID) error {
	p, err := ps.FindPersonByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := ps.personRepository.DeletePerson(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &domain.NotFoundError{ID: id}
	}

	ps.emit(http.MethodDelete, p)
	ps.mCounter.WithLabelValues(metrics.PersonDeleted).Inc()

	return nil
}

func (ps *PersonService) CalculateAge(ctx context.Context, id domain.ID) (string, error) {
	p, err := ps.FindPersonByID(ctx, id)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("The age of %s is: %d years.", p.Name, p.AgeAt(ps.now())), nil
}

// emit never blocks. An event that does not fit in the publisher queue is
// logged and dropped.
func (ps *PersonService) emit(method string, p *domain.Person) {
	if ps.events == nil {
		return
	}

	e := mq.NewEvent(method, person.ToResponsePerson(*p))
	select {
	case ps.events.Events() <- e:
	default:
		ps.logger.Warn("person event dropped, publisher queue full",
			zap.String("event_id", e.Id.String()),
			zap.String("event_action", method),
			zap.Int64("person_id", e.PersonID),
		)
	}
}
