package summary

import (
	"context"
	"sync"

	"github.com/johnquangdev/meetscribe/pkg/ai"
	"github.com/johnquangdev/meetscribe/pkg/mailer"
)

type fakeTextGenerator struct {
	out  string
	err  error
	last ai.GenerateRequest
}

func (f *fakeTextGenerator) GenerateText(_ context.Context, req ai.GenerateRequest) (string, error) {
	f.last = req
	return f.out, f.err
}

type fakeSender struct {
	mu   sync.Mutex
	from string
	err  error
	sent []mailer.Message
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) From() string { return f.from }

type fakeDispatcher struct {
	calls []Email
	err   error
}

func (f *fakeDispatcher) Send(_ context.Context, email Email) error {
	f.calls = append(f.calls, email)
	return f.err
}

type fakeArchive struct {
	keys []string
	err  error
}

func (f *fakeArchive) Put(_ context.Context, key string, _ []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	return nil
}
