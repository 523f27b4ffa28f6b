// Package mongodb implementa el Record Store sobre MongoDB: una colección de documentos
// Category con sus subcategorías embebidas.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MrEshunOfficial/category-api/pkg/config"
)

// Connect abre el cliente, verifica la conexión y asegura los índices únicos de la colección.
// El llamador es dueño del cliente y debe cerrarlo con Disconnect.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Collection, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	if err := EnsureIndexes(ctx, coll); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, coll, nil
}

// EnsureIndexes crea (idempotente) los índices únicos sobre id y name, y el de orden por createdAt.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_id")},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_name")},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("created_at_desc")},
	})
	if err != nil {
		return fmt.Errorf("crear índices: %w", err)
	}
	return nil
}
