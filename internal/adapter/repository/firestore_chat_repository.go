package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/service"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

const (
	chatSessionsCollection = "chat_sessions"
	chatKeysCollection     = "chat_session_keys"
	messagesCollection     = "messages"
)

type firestoreChatRepository struct {
	client *firestore.Client
	newID  func() string
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
		newID:  service.NewSessionID,
	}
}

func (r *firestoreChatRepository) sessions() *firestore.CollectionRef {
	return r.client.Collection(chatSessionsCollection)
}

func (r *firestoreChatRepository) messages(sessionID string) *firestore.CollectionRef {
	return r.sessions().Doc(sessionID).Collection(messagesCollection)
}

// sessionKey names the uniqueness record of a conversation. Participants are
// sorted so both sides of a conversation map to the same key.
func sessionKey(me string, req service.SessionRequest) string {
	parts := []string{me, req.CounterpartyID}
	sort.Strings(parts)
	raw := strings.Join(append(parts, string(req.Type), req.RelatedID), "\x00")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw)).String()
}

// FindOrCreate reads and writes the key record inside one transaction, so
// concurrent first contacts serialize on it and only one session is stored.
func (r *firestoreChatRepository) FindOrCreate(ctx context.Context, me string, req service.SessionRequest) (*entity.ChatSession, bool, error) {
	keyRef := r.client.Collection(chatKeysCollection).Doc(sessionKey(me, req))

	var (
		result  *entity.ChatSession
		created bool
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		result, created = nil, false

		var existing []*entity.ChatSession
		keyDoc, err := tx.Get(keyRef)
		switch {
		case err == nil:
			sessionID, _ := keyDoc.Data()["sessionId"].(string)
			doc, err := tx.Get(r.sessions().Doc(sessionID))
			if err != nil && status.Code(err) != codes.NotFound {
				return err
			}
			if err == nil {
				var s entity.ChatSession
				if err := doc.DataTo(&s); err != nil {
					return err
				}
				s.ID = doc.Ref.ID
				existing = append(existing, &s)
			}
		case status.Code(err) != codes.NotFound:
			return err
		}

		session, _, isNew := service.FindOrCreateSession(existing, me, req, r.newID, time.Now())
		result, created = session, isNew
		if !isNew {
			return nil
		}

		if err := tx.Create(r.sessions().Doc(session.ID), session); err != nil {
			return err
		}
		return tx.Set(keyRef, map[string]interface{}{
			"sessionId": session.ID,
			"createdAt": session.CreatedAt,
		})
	})
	if err != nil {
		logger.Error("FindOrCreate chat session for %s: %v", me, err)
		return nil, false, errors.Internal("Failed to open chat session", err)
	}
	return result, created, nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.ChatSession, error) {
	doc, err := r.sessions().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat session", err)
		}
		return nil, errors.Internal("Failed to get chat session", err)
	}

	var session entity.ChatSession
	if err := doc.DataTo(&session); err != nil {
		return nil, errors.Internal("Failed to parse chat session data", err)
	}
	session.ID = doc.Ref.ID
	return &session, nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string, sessionType entity.SessionType, limit, offset int) ([]*entity.ChatSession, int64, error) {
	query := r.sessions().Where("participants", "array-contains", userID)
	if sessionType != "" {
		query = query.Where("type", "==", string(sessionType))
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching chat sessions for user %s: %v", userID, err)
		return nil, 0, errors.Internal("Failed to fetch chat sessions", err)
	}

	// One query, paged in memory.
	start, end := pageBounds(len(allDocs), limit, offset)
	sessions := make([]*entity.ChatSession, 0, end-start)
	for _, doc := range allDocs[start:end] {
		var session entity.ChatSession
		if err := doc.DataTo(&session); err != nil {
			logger.Warn("Skipping malformed chat session %s: %v", doc.Ref.ID, err)
			continue
		}
		session.ID = doc.Ref.ID
		sessions = append(sessions, &session)
	}

	return sessions, int64(len(allDocs)), nil
}

func (r *firestoreChatRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	_, err := r.sessions().Doc(id).Update(ctx, []firestore.Update{
		{Path: "isBlocked", Value: blocked},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Chat session", err)
		}
		return errors.Internal("Failed to update chat session", err)
	}
	return nil
}

func (r *firestoreChatRepository) AppendMessage(ctx context.Context, sessionID string, msg *entity.Message) error {
	if msg.ID == "" {
		msg.ID = service.NewMessageID()
	}
	sessionRef := r.sessions().Doc(sessionID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(sessionRef)
		if err != nil {
			return err
		}

		var session entity.ChatSession
		if err := doc.DataTo(&session); err != nil {
			return err
		}

		msg.SessionID = sessionID
		msg.Seq = session.MessageCount + 1

		if err := tx.Create(r.messages(sessionID).Doc(msg.ID), msg); err != nil {
			return err
		}
		return tx.Update(sessionRef, []firestore.Update{
			{Path: "lastMessage", Value: msg.Text},
			{Path: "messageCount", Value: msg.Seq},
			{Path: "updatedAt", Value: msg.Timestamp},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Chat session", err)
		}
		return errors.Internal("Failed to append message", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, sessionID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.messages(sessionID).OrderBy("seq", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while counting messages for session %s: %v", sessionID, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}
