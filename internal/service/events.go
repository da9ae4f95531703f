package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/proptoken/chaincore/internal/addr"
	"github.com/proptoken/chaincore/internal/chain"
	"github.com/proptoken/chaincore/internal/contract"
)

// EventCallback receives one matching event log per invocation.
type EventCallback func(log chain.LogEntry)

// subscription is one live event listener, keyed by a generated id so that
// unsubscribing one callback never removes another identical one.
type subscription struct {
	id        string
	address   string
	eventName string
	cancel    context.CancelFunc
}

// SubscribeToEvent registers callback against the contract's event stream
// and returns an unsubscribe function that deregisters exactly this
// subscription. Listeners are long-lived background pollers; callers own
// the returned handle and must release it, or call UnsubscribeAll during
// shutdown.
func (s *Service) SubscribeToEvent(address, eventName string, callback EventCallback) (func(), error) {
	if !addr.IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %s", addr.ErrInvalidAddress, address)
	}

	ev := contract.FindEvent(s.abi, eventName)
	if ev == nil {
		return nil, fmt.Errorf("event %q not found in ABI", eventName)
	}
	topic := contract.EventTopic(ev.Signature())

	ctx, cancel := context.WithCancel(context.Background())
	sub := &subscription{
		id:        uuid.NewString(),
		address:   address,
		eventName: eventName,
		cancel:    cancel,
	}

	s.subMu.Lock()
	s.subs[sub.id] = sub
	s.subMu.Unlock()

	go s.pollEvents(ctx, sub, topic, callback)

	s.log.Debug().
		Str("subscription", sub.id).
		Str("contract", address).
		Str("event", eventName).
		Msg("event subscription registered")

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			s.subMu.Lock()
			delete(s.subs, sub.id)
			s.subMu.Unlock()
		})
	}, nil
}

// UnsubscribeAll tears down every tracked subscription. Used during
// process shutdown so no background listeners outlive the service.
func (s *Service) UnsubscribeAll() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for id, sub := range s.subs {
		sub.cancel()
		delete(s.subs, id)
	}
}

// SubscriptionCount returns the number of live subscriptions.
func (s *Service) SubscriptionCount() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

// pollEvents watches for new logs matching topic from the block height at
// subscription time onward, dispatching each to callback until cancelled.
func (s *Service) pollEvents(ctx context.Context, sub *subscription, topic string, callback EventCallback) {
	lastBlock, err := s.client.BlockNumber(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("subscription", sub.id).Msg("event poller could not read head, starting from genesis")
		lastBlock = 0
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		latest, err := s.client.BlockNumber(ctx)
		if err != nil || latest <= lastBlock {
			continue
		}

		logs, err := s.client.GetLogs(ctx, sub.address,
			[]string{topic},
			fmt.Sprintf("0x%x", lastBlock+1),
			fmt.Sprintf("0x%x", latest))
		if err != nil {
			s.log.Warn().Err(err).Str("subscription", sub.id).Msg("event poll failed")
			continue
		}

		for _, l := range logs {
			callback(l)
		}
		lastBlock = latest
	}
}

// decodeEventNames maps receipt log topics to event names from the bound
// interface definition, falling back to the raw topic hash.
func (s *Service) decodeEventNames(logs []chain.LogEntry) []string {
	known := make(map[string]string)
	for _, e := range s.abi {
		if e.Type == "event" {
			known[contract.EventTopic(e.Signature())] = e.Name
		}
	}

	names := make([]string, 0, len(logs))
	for _, l := range logs {
		if len(l.Topics) == 0 {
			continue
		}
		if name, ok := known[l.Topics[0]]; ok {
			names = append(names, name)
		} else {
			names = append(names, l.Topics[0])
		}
	}
	return names
}
