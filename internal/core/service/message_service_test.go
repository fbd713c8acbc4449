package service

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pingado/messaging-system/internal/core/domain"
	"github.com/pingado/messaging-system/internal/core/ports"
)

// stubMessageRepo is the in-memory ports.MessageRepository for these tests.
type stubMessageRepo struct {
	messages map[int64]*domain.Message
	nextID   int64
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{messages: make(map[int64]*domain.Message)}
}

func cloneMessage(m *domain.Message) *domain.Message {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func (r *stubMessageRepo) Create(_ context.Context, message *domain.Message) (*domain.Message, error) {
	r.nextID++
	stored := cloneMessage(message)
	stored.ID = r.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.messages[stored.ID] = cloneMessage(stored)
	return stored, nil
}

func (r *stubMessageRepo) FindAll(_ context.Context, limit, offset int) ([]domain.Message, error) {
	all := make([]domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		all = append(all, *m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id int64) (*domain.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	return cloneMessage(m), nil
}

func (r *stubMessageRepo) Update(_ context.Context, message *domain.Message) (*domain.Message, error) {
	if _, ok := r.messages[message.ID]; !ok {
		return nil, domain.ErrMessageNotFound
	}
	stored := cloneMessage(message)
	stored.UpdatedAt = time.Now().UTC()
	r.messages[stored.ID] = cloneMessage(stored)
	return stored, nil
}

func (r *stubMessageRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.messages[id]; !ok {
		return domain.ErrMessageNotFound
	}
	delete(r.messages, id)
	return nil
}

// memoryDedup is an in-process IdempotencyChecker.
type memoryDedup struct {
	seen map[string]int64
}

func newMemoryDedup() *memoryDedup {
	return &memoryDedup{seen: make(map[string]int64)}
}

func (d *memoryDedup) Seen(_ context.Context, sub int64, key string) (int64, bool, error) {
	id, ok := d.seen[fmt.Sprintf("%d:%s", sub, key)]
	return id, ok, nil
}

func (d *memoryDedup) Mark(_ context.Context, sub int64, key string, messageID int64) error {
	d.seen[fmt.Sprintf("%d:%s", sub, key)] = messageID
	return nil
}

func TestMessageService_CreateMessage(t *testing.T) {
	users := newStubUserRepo()
	alice := seedUser(t, users, "a@a.com", "pw")
	bob := seedUser(t, users, "b@b.com", "pw")
	messages := newStubMessageRepo()
	svc := NewMessageService(messages, users, nil, zerolog.Nop())

	detail, err := svc.CreateMessage(context.Background(),
		ports.CreateMessageInput{Text: "hi bob", ToID: bob.ID},
		ports.TokenPayload{Sub: alice.ID})
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}
	if detail.Message.FromID != alice.ID || detail.Message.ToID != bob.ID {
		t.Fatalf("unexpected parties: from=%d to=%d", detail.Message.FromID, detail.Message.ToID)
	}
	if detail.Message.Read {
		t.Fatalf("new messages start unread")
	}
	if detail.Message.Date.IsZero() {
		t.Fatalf("expected send date to be set")
	}
	if detail.From.Name != alice.Name || detail.To.Name != bob.Name {
		t.Fatalf("unexpected party summaries: %+v / %+v", detail.From, detail.To)
	}
	if detail.AlreadyExisted {
		t.Fatalf("first send must not be flagged as replay")
	}
}

func TestMessageService_CreateMessage_UnknownRecipient(t *testing.T) {
	users := newStubUserRepo()
	alice := seedUser(t, users, "a@a.com", "pw")
	svc := NewMessageService(newStubMessageRepo(), users, nil, zerolog.Nop())

	_, err := svc.CreateMessage(context.Background(),
		ports.CreateMessageInput{Text: "hello?", ToID: 999},
		ports.TokenPayload{Sub: alice.ID})
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMessageService_CreateMessage_IdempotentReplay(t *testing.T) {
	users := newStubUserRepo()
	alice := seedUser(t, users, "a@a.com", "pw")
	bob := seedUser(t, users, "b@b.com", "pw")
	messages := newStubMessageRepo()
	svc := NewMessageService(messages, users, newMemoryDedup(), zerolog.Nop())

	in := ports.CreateMessageInput{Text: "once", ToID: bob.ID, IdempotencyKey: "k-1"}
	payload := ports.TokenPayload{Sub: alice.ID}

	first, err := svc.CreateMessage(context.Background(), in, payload)
	if err != nil {
		t.Fatalf("first send returned error: %v", err)
	}
	replay, err := svc.CreateMessage(context.Background(), in, payload)
	if err != nil {
		t.Fatalf("replayed send returned error: %v", err)
	}

	if replay.Message.ID != first.Message.ID {
		t.Fatalf("replay produced a new message: %d != %d", replay.Message.ID, first.Message.ID)
	}
	if !replay.AlreadyExisted {
		t.Fatalf("replay must be flagged")
	}
	if len(messages.messages) != 1 {
		t.Fatalf("expected a single stored message, got %d", len(messages.messages))
	}

	// Same key under a different sender is a distinct send.
	other, err := svc.CreateMessage(context.Background(),
		ports.CreateMessageInput{Text: "mine", ToID: alice.ID, IdempotencyKey: "k-1"},
		ports.TokenPayload{Sub: bob.ID})
	if err != nil {
		t.Fatalf("other sender returned error: %v", err)
	}
	if other.Message.ID == first.Message.ID {
		t.Fatalf("keys must be scoped per sender")
	}
}

func TestMessageService_FindAll_DefaultLimit(t *testing.T) {
	users := newStubUserRepo()
	alice := seedUser(t, users, "a@a.com", "pw")
	bob := seedUser(t, users, "b@b.com", "pw")
	messages := newStubMessageRepo()
	svc := NewMessageService(messages, users, nil, zerolog.Nop())

	for i := 0; i < 15; i++ {
		_, err := svc.CreateMessage(context.Background(),
			ports.CreateMessageInput{Text: fmt.Sprintf("msg %d", i), ToID: bob.ID},
			ports.TokenPayload{Sub: alice.ID})
		if err != nil {
			t.Fatalf("send %d returned error: %v", i, err)
		}
	}

	page, err := svc.FindAll(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(page) != 10 {
		t.Fatalf("expected default page of 10, got %d", len(page))
	}

	rest, err := svc.FindAll(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("FindAll with offset returned error: %v", err)
	}
	if len(rest) != 5 {
		t.Fatalf("expected remaining 5, got %d", len(rest))
	}
}

func TestMessageService_UpdateMessage_SenderOnly(t *testing.T) {
	users := newStubUserRepo()
	alice := seedUser(t, users, "a@a.com", "pw")
	bob := seedUser(t, users, "b@b.com", "pw")
	svc := NewMessageService(newStubMessageRepo(), users, nil, zerolog.Nop())

	detail, err := svc.CreateMessage(context.Background(),
		ports.CreateMessageInput{Text: "draft", ToID: bob.ID},
		ports.TokenPayload{Sub: alice.ID})
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}

	text := "final"
	read := true
	updated, err := svc.UpdateMessage(context.Background(), detail.Message.ID,
		ports.UpdateMessageInput{Text: &text, Read: &read},
		ports.TokenPayload{Sub: alice.ID})
	if err != nil {
		t.Fatalf("UpdateMessage returned error: %v", err)
	}
	if updated.Text != "final" || !updated.Read {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	// The recipient cannot edit.
	_, err = svc.UpdateMessage(context.Background(), detail.Message.ID,
		ports.UpdateMessageInput{Text: &text},
		ports.TokenPayload{Sub: bob.ID})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-sender, got %v", err)
	}
}

func TestMessageService_UpdateMessage_PartialPatch(t *testing.T) {
	users := newStubUserRepo()
	alice := seedUser(t, users, "a@a.com", "pw")
	bob := seedUser(t, users, "b@b.com", "pw")
	svc := NewMessageService(newStubMessageRepo(), users, nil, zerolog.Nop())

	detail, err := svc.CreateMessage(context.Background(),
		ports.CreateMessageInput{Text: "keep me", ToID: bob.ID},
		ports.TokenPayload{Sub: alice.ID})
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}

	read := true
	updated, err := svc.UpdateMessage(context.Background(), detail.Message.ID,
		ports.UpdateMessageInput{Read: &read},
		ports.TokenPayload{Sub: alice.ID})
	if err != nil {
		t.Fatalf("UpdateMessage returned error: %v", err)
	}
	if updated.Text != "keep me" {
		t.Fatalf("nil text must leave body untouched, got %q", updated.Text)
	}
	if !updated.Read {
		t.Fatalf("expected read flag set")
	}
}

func TestMessageService_DeleteMessage(t *testing.T) {
	users := newStubUserRepo()
	alice := seedUser(t, users, "a@a.com", "pw")
	bob := seedUser(t, users, "b@b.com", "pw")
	messages := newStubMessageRepo()
	svc := NewMessageService(messages, users, nil, zerolog.Nop())

	detail, err := svc.CreateMessage(context.Background(),
		ports.CreateMessageInput{Text: "oops", ToID: bob.ID},
		ports.TokenPayload{Sub: alice.ID})
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}

	_, err = svc.DeleteMessage(context.Background(), detail.Message.ID, ports.TokenPayload{Sub: bob.ID})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-sender, got %v", err)
	}

	deleted, err := svc.DeleteMessage(context.Background(), detail.Message.ID, ports.TokenPayload{Sub: alice.ID})
	if err != nil {
		t.Fatalf("DeleteMessage returned error: %v", err)
	}
	if deleted.ID != detail.Message.ID {
		t.Fatalf("expected deleted message %d, got %d", detail.Message.ID, deleted.ID)
	}
	if _, err := svc.GetMessage(context.Background(), detail.Message.ID); err != domain.ErrMessageNotFound {
		t.Fatalf("expected message gone, got %v", err)
	}
}
