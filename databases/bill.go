package databases

// go generate: mockery --name BillDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtworks/jis-api/models"
)

const billCollectionName = "bills"

// BillDatabase contains the methods to use with the bill database
type BillDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Bill, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Bill, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, bill models.Bill) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	EnsureIndexes(ctx context.Context) error
}

type billDatabase struct {
	db DatabaseHelper
}

// NewBillDatabase initializes a new instance of bill database with the provided db connection
func NewBillDatabase(db DatabaseHelper) BillDatabase {
	return &billDatabase{
		db: db,
	}
}

func (b *billDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Bill, error) {
	bill := &models.Bill{}
	err := b.db.Collection(billCollectionName).FindOne(ctx, filter).Decode(bill)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func (b *billDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Bill, error) {
	var bills []models.Bill
	curr, err := b.db.Collection(billCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &bills)
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (b *billDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return b.db.Collection(billCollectionName).CountDocuments(ctx, filter, opts...)
}

func (b *billDatabase) InsertOne(ctx context.Context, bill models.Bill) error {
	_, err := b.db.Collection(billCollectionName).InsertOne(ctx, bill)
	return err
}

func (b *billDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return b.db.Collection(billCollectionName).UpdateOne(ctx, filter, update, opts...)
}

// EnsureIndexes creates the unique (lawyerID, cin) index that guards the
// bill-per-view dedup against concurrent identical requests.
func (b *billDatabase) EnsureIndexes(ctx context.Context) error {
	unique := true
	_, err := b.db.Collection(billCollectionName).CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "lawyerID", Value: 1}, {Key: "cin", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	})
	return err
}
