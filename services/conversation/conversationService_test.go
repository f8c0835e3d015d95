package conversation

import (
	"testing"
	"time"

	messageModel "luggage-link/models/message"
	"luggage-link/models/user"
	"luggage-link/types"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Each pooled connection would otherwise get its own in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&user.User{}, &messageModel.Message{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u := user.User{
		ProviderUID: "uid-" + name,
		Email:       name + "@example.com",
		FirstName:   name,
		LastName:    "Test",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return &u
}

func seedMessage(t *testing.T, db *gorm.DB, senderID, receiverID uint, content string, at time.Time, read bool) *messageModel.Message {
	t.Helper()
	m := messageModel.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		IsRead:     read,
		CreatedAt:  at,
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}
	return &m
}

// recorder captures published events for assertions.
type recorder struct {
	events  []interface{}
	targets [][]uint
}

func (r *recorder) Publish(event interface{}, userIDs ...uint) {
	r.events = append(r.events, event)
	r.targets = append(r.targets, userIDs)
}

func TestListGroupsByCounterpart(t *testing.T) {
	db := openTestDB(t)
	svc := NewConversationService(db, nil)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	seedMessage(t, db, bob.ID, alice.ID, "hi from bob", base, false)
	seedMessage(t, db, alice.ID, bob.ID, "hi bob", base.Add(time.Minute), true)
	seedMessage(t, db, bob.ID, alice.ID, "second from bob", base.Add(2*time.Minute), false)
	seedMessage(t, db, carol.ID, alice.ID, "hello from carol", base.Add(3*time.Minute), false)

	summaries, err := svc.List(alice.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(summaries))
	}

	// Most recent conversation (carol) first.
	if summaries[0].User.ID != carol.ID {
		t.Fatalf("expected carol first, got user %d", summaries[0].User.ID)
	}
	if summaries[0].UnreadCount != 1 {
		t.Fatalf("expected 1 unread from carol, got %d", summaries[0].UnreadCount)
	}

	if summaries[1].User.ID != bob.ID {
		t.Fatalf("expected bob second, got user %d", summaries[1].User.ID)
	}
	if summaries[1].LastMessage.Content != "second from bob" {
		t.Fatalf("expected latest bob message, got %q", summaries[1].LastMessage.Content)
	}
	if summaries[1].UnreadCount != 2 {
		t.Fatalf("expected 2 unread from bob, got %d", summaries[1].UnreadCount)
	}
}

func TestListDropsMissingCounterparts(t *testing.T) {
	db := openTestDB(t)
	svc := NewConversationService(db, nil)

	alice := seedUser(t, db, "alice")
	seedMessage(t, db, 9999, alice.ID, "ghost message", time.Now(), false)

	summaries, err := svc.List(alice.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected ghost counterpart to be dropped, got %d conversations", len(summaries))
	}
}

func TestListTieBreakOnID(t *testing.T) {
	db := openTestDB(t)
	svc := NewConversationService(db, nil)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	// Identical timestamps; the higher message ID is the later one.
	at := time.Now().Truncate(time.Second)
	seedMessage(t, db, bob.ID, alice.ID, "from bob", at, false)
	seedMessage(t, db, carol.ID, alice.ID, "from carol", at, false)

	summaries, err := svc.List(alice.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(summaries))
	}
	if summaries[0].User.ID != carol.ID {
		t.Fatalf("expected carol (higher message id) first, got user %d", summaries[0].User.ID)
	}
}

func TestThreadOrdersAndMarksRead(t *testing.T) {
	db := openTestDB(t)
	svc := NewConversationService(db, nil)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	seedMessage(t, db, bob.ID, alice.ID, "one", base, false)
	seedMessage(t, db, alice.ID, bob.ID, "two", base.Add(time.Minute), false)
	seedMessage(t, db, bob.ID, alice.ID, "three", base.Add(2*time.Minute), false)

	thread, err := svc.Thread(alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Thread returned error: %v", err)
	}

	if thread.User.ID != bob.ID {
		t.Fatalf("expected counterpart bob, got %d", thread.User.ID)
	}
	if len(thread.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(thread.Messages))
	}
	for i, want := range []string{"one", "two", "three"} {
		if thread.Messages[i].Content != want {
			t.Fatalf("message %d: expected %q, got %q", i, want, thread.Messages[i].Content)
		}
	}

	// Messages addressed to alice are now read; her own remain untouched.
	var unread int64
	if err := db.Model(&messageModel.Message{}).
		Where("receiver_id = ? AND is_read = ?", alice.ID, false).
		Count(&unread).Error; err != nil {
		t.Fatalf("failed to count unread: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected 0 unread after thread fetch, got %d", unread)
	}

	var bobUnread int64
	if err := db.Model(&messageModel.Message{}).
		Where("receiver_id = ? AND is_read = ?", bob.ID, false).
		Count(&bobUnread).Error; err != nil {
		t.Fatalf("failed to count bob's unread: %v", err)
	}
	if bobUnread != 1 {
		t.Fatalf("fetching alice's thread must not mark bob's messages read, got %d unread", bobUnread)
	}
}

func TestThreadCounterpartNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewConversationService(db, nil)
	alice := seedUser(t, db, "alice")

	if _, err := svc.Thread(alice.ID, 9999); types.KindOf(err) != types.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestSend(t *testing.T) {
	db := openTestDB(t)
	rec := &recorder{}
	svc := NewConversationService(db, rec)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	msg, err := svc.Send(alice.ID, bob.ID, "hello bob")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if msg.IsRead {
		t.Fatal("new message must start unread")
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(rec.events))
	}
	event, ok := rec.events[0].(NewMessageEvent)
	if !ok {
		t.Fatalf("unexpected event type %T", rec.events[0])
	}
	if event.Type != "new_message" || event.SenderID != alice.ID || event.ReceiverID != bob.ID {
		t.Fatalf("unexpected event payload: %+v", event)
	}
	if len(rec.targets[0]) != 2 {
		t.Fatalf("expected event targeted at both participants, got %v", rec.targets[0])
	}
}

func TestSendValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewConversationService(db, nil)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	if _, err := svc.Send(alice.ID, bob.ID, "   "); types.KindOf(err) != types.KindInvalidArgument {
		t.Fatalf("expected InvalidArgument for blank content, got %v", err)
	}
	if _, err := svc.Send(alice.ID, alice.ID, "note to self"); types.KindOf(err) != types.KindInvalidArgument {
		t.Fatalf("expected InvalidArgument for self-message, got %v", err)
	}
	if _, err := svc.Send(alice.ID, 9999, "hello"); types.KindOf(err) != types.KindNotFound {
		t.Fatalf("expected NotFound for missing receiver, got %v", err)
	}
}
