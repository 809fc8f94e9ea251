package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/campaignhq/campaign-backend/internal/models"
	"github.com/campaignhq/campaign-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository implements the repositories.ConversationRepository
// interface over two collections: conversations and their messages.
type ConversationRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *mongo.Database) repositories.ConversationRepository {
	return &ConversationRepository{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("conversation_messages"),
	}
}

// FindByID finds a conversation by ID
func (r *ConversationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.conversations.FindOne(ctx, bson.M{"_id": id}).Decode(&conversation)
	if err != nil {
		return nil, translateErr(err)
	}
	return &conversation, nil
}

// FindByBusiness finds conversations for a business, most recent first
func (r *ConversationRepository) FindByBusiness(ctx context.Context, businessID primitive.ObjectID, page, limit int) ([]*models.Conversation, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"lastMessageAt": -1})

	cursor, err := r.conversations.Find(ctx, bson.M{"businessId": businessID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var conversations []*models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	if conversations == nil {
		conversations = []*models.Conversation{}
	}
	return conversations, nil
}

// FindOrCreate returns the conversation for a (business, lead) pair,
// creating it on first contact
func (r *ConversationRepository) FindOrCreate(ctx context.Context, businessID, leadID primitive.ObjectID, phone string) (*models.Conversation, error) {
	filter := bson.M{"businessId": businessID, "leadId": leadID}

	var conversation models.Conversation
	err := r.conversations.FindOne(ctx, filter).Decode(&conversation)
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	conversation = models.Conversation{
		BusinessID: businessID,
		LeadID:     leadID,
		Phone:      phone,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	result, err := r.conversations.InsertOne(ctx, conversation)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		conversation.ID = oid
	}
	return &conversation, nil
}

// AppendMessage stores a message and refreshes the conversation summary
func (r *ConversationRepository) AppendMessage(ctx context.Context, message *models.ConversationMessage) error {
	message.CreatedAt = time.Now()
	result, err := r.messages.InsertOne(ctx, message)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}

	update := bson.M{
		"$set": bson.M{
			"lastMessage":   message.Content,
			"lastMessageAt": message.CreatedAt,
			"updatedAt":     time.Now(),
		},
	}
	if message.Direction == models.MessageInbound {
		update["$inc"] = bson.M{"unreadCount": 1}
	}
	_, err = r.conversations.UpdateOne(ctx, bson.M{"_id": message.ConversationID}, update)
	return err
}

// FindMessages lists a conversation's messages, oldest first
func (r *ConversationRepository) FindMessages(ctx context.Context, conversationID primitive.ObjectID, page, limit int) ([]*models.ConversationMessage, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": 1})

	cursor, err := r.messages.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*models.ConversationMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*models.ConversationMessage{}
	}
	return messages, nil
}

// MarkRead clears the unread counter
func (r *ConversationRepository) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"unreadCount": 0, "updatedAt": time.Now()}}
	_, err := r.conversations.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
