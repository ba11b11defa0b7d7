package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"AvkuWeb/internal/domain/models"
	"AvkuWeb/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type fakeSource struct {
	name    string
	calls   int32
	jar     *models.Jar
	err     error
	ready   error
	release chan struct{}
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Ready() error { return f.ready }

func (f *fakeSource) FetchJar(_ context.Context, sendID string) (*models.Jar, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	j := *f.jar
	j.SendID = sendID
	return &j, nil
}

func (f *fakeSource) Calls() int { return int(atomic.LoadInt32(&f.calls)) }

type fakePublisher struct {
	mu     sync.Mutex
	got    []*models.JarSnapshot
	err    error
	closed bool
}

func (p *fakePublisher) Publish(_ context.Context, s *models.JarSnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.got = append(p.got, s)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func (p *fakePublisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.got)
}

type fakeStorage struct {
	stored []*models.JarSnapshot
	closed bool
}

func (s *fakeStorage) Init(context.Context) error { return nil }

func (s *fakeStorage) Store(_ context.Context, snap *models.JarSnapshot) error {
	s.stored = append(s.stored, snap)
	return nil
}

func (s *fakeStorage) Query(_ context.Context, sendID string, limit int) ([]*models.JarSnapshot, error) {
	var out []*models.JarSnapshot
	for i := len(s.stored) - 1; i >= 0 && len(out) < limit; i-- {
		if s.stored[i].SendID == sendID {
			out = append(out, s.stored[i])
		}
	}
	return out, nil
}

func (s *fakeStorage) Close() error {
	s.closed = true
	return nil
}

type fakeNotifier struct {
	texts []string
	err   error
}

func (n *fakeNotifier) SendMessage(_ context.Context, text string) error {
	n.texts = append(n.texts, text)
	return n.err
}

func newMetrics() *metrics.Recorder {
	return metrics.New(prometheus.NewRegistry())
}
