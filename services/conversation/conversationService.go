package conversation

import (
	"errors"
	"sort"
	"strings"

	messageModel "luggage-link/models/message"
	"luggage-link/models/user"
	"luggage-link/types"

	"gorm.io/gorm"
)

// Notifier delivers an event to the given users' open connections. The
// realtime hub satisfies this; tests plug in a recorder.
type Notifier interface {
	Publish(event interface{}, userIDs ...uint)
}

// Service aggregates direct messages into per-counterpart conversations.
type Service struct {
	DB       *gorm.DB
	Notifier Notifier
}

// NewConversationService creates a new conversation service
func NewConversationService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{DB: db, Notifier: notifier}
}

// Summary is one conversation as shown in the inbox list.
type Summary struct {
	User        user.PublicProfile   `json:"user"`
	LastMessage messageModel.Message `json:"lastMessage"`
	UnreadCount int                  `json:"unreadCount"`
}

// Thread is the full exchange with one counterpart.
type Thread struct {
	User     user.PublicProfile     `json:"user"`
	Messages []messageModel.Message `json:"messages"`
}

// NewMessageEvent is the wire payload pushed to both participants when a
// message is sent.
type NewMessageEvent struct {
	Type       string               `json:"type"`
	Message    messageModel.Message `json:"message"`
	SenderID   uint                 `json:"senderId"`
	ReceiverID uint                 `json:"receiverId"`
}

// List groups all of the user's messages by counterpart. Each group
// carries the counterpart's public profile, the most recent message and
// the number of unread messages addressed to the user. Counterparts
// whose account no longer resolves are dropped. Conversations are
// ordered most recent first.
func (s *Service) List(userID uint) ([]Summary, error) {
	var messages []messageModel.Message
	err := s.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, types.Internal("failed to load messages", err)
	}

	type group struct {
		last   messageModel.Message
		unread int
	}
	groups := make(map[uint]*group)
	for _, msg := range messages {
		counterpart := msg.SenderID
		if counterpart == userID {
			counterpart = msg.ReceiverID
		}

		g, ok := groups[counterpart]
		if !ok {
			g = &group{}
			groups[counterpart] = g
		}
		// Messages arrive in (created_at, id) order, so the latest wins.
		g.last = msg
		if msg.ReceiverID == userID && !msg.IsRead {
			g.unread++
		}
	}

	counterpartIDs := make([]uint, 0, len(groups))
	for id := range groups {
		counterpartIDs = append(counterpartIDs, id)
	}

	var counterparts []user.User
	if len(counterpartIDs) > 0 {
		if err := s.DB.Where("id IN ?", counterpartIDs).Find(&counterparts).Error; err != nil {
			return nil, types.Internal("failed to load counterparts", err)
		}
	}
	profiles := make(map[uint]user.PublicProfile, len(counterparts))
	for i := range counterparts {
		profiles[counterparts[i].ID] = counterparts[i].Public()
	}

	summaries := make([]Summary, 0, len(groups))
	for counterpartID, g := range groups {
		profile, ok := profiles[counterpartID]
		if !ok {
			continue
		}
		summaries = append(summaries, Summary{
			User:        profile,
			LastMessage: g.last,
			UnreadCount: g.unread,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return summaries, nil
}

// Thread returns both directions of the exchange with otherID in
// chronological order and marks every unread message addressed to
// userID as read in the same transaction.
func (s *Service) Thread(userID, otherID uint) (*Thread, error) {
	var counterpart user.User
	if err := s.DB.First(&counterpart, otherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("user not found")
		}
		return nil, types.Internal("failed to load user", err)
	}

	var messages []messageModel.Message
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
			Order("created_at ASC, id ASC").
			Find(&messages).Error
		if err != nil {
			return err
		}

		err = tx.Model(&messageModel.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, userID, false).
			Update("is_read", true).Error
		if err != nil {
			return err
		}

		for i := range messages {
			if messages[i].ReceiverID == userID {
				messages[i].IsRead = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, types.Internal("failed to load thread", err)
	}

	return &Thread{User: counterpart.Public(), Messages: messages}, nil
}

// Send stores a message and pushes a new_message event to both
// participants' open connections.
func (s *Service) Send(senderID, receiverID uint, content string) (*messageModel.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, types.InvalidArgument("content must not be empty")
	}

	if senderID == receiverID {
		return nil, types.InvalidArgument("cannot message yourself")
	}

	var receiver user.User
	if err := s.DB.First(&receiver, receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("receiver not found")
		}
		return nil, types.Internal("failed to load receiver", err)
	}

	message := messageModel.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		IsRead:     false,
	}
	if err := s.DB.Create(&message).Error; err != nil {
		return nil, types.Internal("failed to store message", err)
	}

	if s.Notifier != nil {
		s.Notifier.Publish(NewMessageEvent{
			Type:       "new_message",
			Message:    message,
			SenderID:   senderID,
			ReceiverID: receiverID,
		}, senderID, receiverID)
	}

	return &message, nil
}
