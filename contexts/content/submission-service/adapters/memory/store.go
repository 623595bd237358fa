package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainerrors "clipcast/contexts/content/submission-service/domain/errors"
	"clipcast/contexts/content/submission-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.RWMutex
	submissions map[string]ports.Submission
	outbox      []ports.OutboxMessage
}

func NewStore(seed []ports.Submission) *Store {
	submissions := make(map[string]ports.Submission, len(seed))
	for _, item := range seed {
		submissions[item.SubmissionID] = cloneSubmission(item)
	}
	return &Store{submissions: submissions}
}

func (s *Store) CreateSubmission(_ context.Context, submission ports.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; exists {
		return domainerrors.ErrInvalidRequest
	}
	s.submissions[submission.SubmissionID] = cloneSubmission(submission)
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (ports.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return ports.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return cloneSubmission(item), nil
}

func (s *Store) UpdateSubmission(_ context.Context, submission ports.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	s.submissions[submission.SubmissionID] = cloneSubmission(submission)
	return nil
}

func (s *Store) ListBySource(_ context.Context, source ports.SourceRef) ([]ports.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Submission, 0)
	for _, item := range s.submissions {
		if item.Source == source {
			items = append(items, cloneSubmission(item))
		}
	}
	sortSubmissions(items)
	return items, nil
}

func (s *Store) ListByCreator(_ context.Context, creatorID string) ([]ports.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Submission, 0)
	for _, item := range s.submissions {
		if item.CreatorID == strings.TrimSpace(creatorID) {
			items = append(items, cloneSubmission(item))
		}
	}
	sortSubmissions(items)
	return items, nil
}

func (s *Store) DeleteForCreator(_ context.Context, source ports.SourceRef, creatorID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, item := range s.submissions {
		if item.Source == source && item.CreatorID == strings.TrimSpace(creatorID) {
			delete(s.submissions, id)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := make([]byte, len(message.Payload))
	copy(payload, message.Payload)
	message.Payload = payload
	s.outbox = append(s.outbox, message)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0, limit)
	for _, message := range s.outbox {
		if message.SentAt != nil {
			continue
		}
		items = append(items, message)
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, message := range s.outbox {
		if message.OutboxID == outboxID {
			sentAt := at
			s.outbox[i].SentAt = &sentAt
			return nil
		}
	}
	return domainerrors.ErrSubmissionNotFound
}

func cloneSubmission(item ports.Submission) ports.Submission {
	clone := item
	clone.Platforms = append([]ports.PlatformEntry(nil), item.Platforms...)
	return clone
}

func sortSubmissions(items []ports.Submission) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
