package notification

import (
	"context"
	"errors"
	"f1q1report/pkg/model"
	"f1q1report/pkg/report"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type recorder struct {
	mu       sync.Mutex
	subjects []string
	messages []string
	err      error
}

func (r *recorder) Send(_ context.Context, subject, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects = append(r.subjects, subject)
	r.messages = append(r.messages, message)
	return r.err
}

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func sampleReport(n int) report.Report {
	r := report.Report{ID: "build-1"}
	for i := 0; i < n; i++ {
		r.Results = append(r.Results, model.RaceResult{
			Driver:  model.Driver{ID: fmt.Sprintf("D%02d", i), Name: fmt.Sprintf("Driver N%02d", i), CarModel: "TEAM"},
			LapTime: 72*time.Second + time.Duration(n-i)*time.Millisecond,
		})
	}
	return r
}

func TestSummary(t *testing.T) {
	r := sampleReport(3)
	r.Skipped = []model.Skip{{Source: "start.log", Line: 2}}
	s := Summary(r)
	if !strings.Contains(s, "Drivers: 3") {
		t.Fatalf("missing driver count: %q", s)
	}
	if !strings.Contains(s, "Pole: Driver N02 (TEAM) 1:12.001") {
		t.Fatalf("the fastest driver should be on pole: %q", s)
	}
	if strings.Contains(s, "Q1 cutoff") {
		t.Fatalf("no cutoff expected for 3 drivers: %q", s)
	}
	if !strings.Contains(s, "Skipped records: 1") {
		t.Fatalf("missing skipped count: %q", s)
	}

	s = Summary(sampleReport(20))
	if !strings.Contains(s, "Q1 cutoff: Driver N05 1:12.015") {
		t.Fatalf("unexpected cutoff line: %q", s)
	}
}

func TestNotifyReport(t *testing.T) {
	rec := &recorder{}
	m := NewManager(nil, rec)
	if err := m.NotifyReport(context.Background(), sampleReport(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.subjects) != 1 || rec.subjects[0] != subject {
		t.Fatalf("unexpected subjects %v", rec.subjects)
	}

	rec.err = errors.New("down")
	if err := m.NotifyReport(context.Background(), sampleReport(2)); err == nil {
		t.Fatal("expected the delivery error")
	}
}

func TestTelegramSend(t *testing.T) {
	bot := &fakeBot{}
	tg := &Telegram{}
	tg.SetClient(bot)
	tg.AddReceivers(1, 2)

	if err := tg.Send(context.Background(), "Q1 results", "body"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bot.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(bot.sent))
	}
	if bot.sent[1].ChatID != 2 || bot.sent[1].Text != "Q1 results\n\nbody" {
		t.Fatalf("unexpected message %+v", bot.sent[1])
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tg.Send(ctx, "s", "m"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	bot.err = errors.New("forbidden")
	if err := tg.Send(context.Background(), "s", "m"); err == nil || !strings.Contains(err.Error(), "chat 1") {
		t.Fatalf("expected an error naming the chat, got %v", err)
	}
}
