package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	edomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/email/domain"
	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/metrics"
	domain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/notify/domain"
)

// Dispatcher fans a rendered message out to validated recipients. Failures
// are isolated per recipient: a transport error becomes a failed Outcome and
// never aborts the rest of the batch.
//
// Concurrency <= 1 sends sequentially in input order (the safe default for
// transports with per-second caps). Higher values enable a bounded fan-out;
// outcomes stay attributable by address and keep input positions. Every
// attempt is bounded by a per-attempt timeout either way.
type Dispatcher struct {
	transport   edomain.Transport
	timeout     time.Duration
	concurrency int
}

func NewDispatcher(transport edomain.Transport, cfg config.Config) *Dispatcher {
	timeout := cfg.DispatchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	conc := cfg.DispatchConcurrency
	if conc < 1 {
		conc = 1
	}
	return &Dispatcher{transport: transport, timeout: timeout, concurrency: conc}
}

func (d *Dispatcher) Dispatch(ctx context.Context, companyID uuid.UUID, identity domain.SenderIdentity, recipients []string, msg domain.RenderedMessage, templateName string) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(recipients))

	if d.concurrency <= 1 {
		for i, to := range recipients {
			outcomes[i] = d.sendOne(ctx, companyID, identity, to, msg, templateName)
		}
		return outcomes
	}

	sem := semaphore.NewWeighted(int64(d.concurrency))
	var wg sync.WaitGroup
	for i, to := range recipients {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Caller context canceled; mark the rest failed instead of hanging.
			for j := i; j < len(recipients); j++ {
				outcomes[j] = domain.Outcome{Address: recipients[j], Success: false, Error: err.Error()}
				metrics.IncDispatchOutcome(templateName, false)
			}
			break
		}
		wg.Add(1)
		go func(i int, to string) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[i] = d.sendOne(ctx, companyID, identity, to, msg, templateName)
		}(i, to)
	}
	wg.Wait()
	return outcomes
}

func (d *Dispatcher) sendOne(ctx context.Context, companyID uuid.UUID, identity domain.SenderIdentity, to string, msg domain.RenderedMessage, templateName string) domain.Outcome {
	attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	res, err := d.transport.Send(attemptCtx, companyID, edomain.Message{
		RoutingNamespace: identity.RoutingNamespace,
		From:             identity.FromAddress,
		FromName:         identity.FromName,
		To:               to,
		Subject:          msg.Subject,
		HTML:             msg.HTML,
		Text:             msg.Text,
		Tags:             map[string]string{"template": templateName},
	})
	if err != nil {
		metrics.IncDispatchOutcome(templateName, false)
		return domain.Outcome{Address: to, Success: false, Error: err.Error()}
	}
	metrics.IncDispatchOutcome(templateName, true)
	return domain.Outcome{Address: to, Success: true, MessageID: res.MessageID}
}
