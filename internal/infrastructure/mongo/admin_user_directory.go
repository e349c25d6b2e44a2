package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminUserDirectory checks admin membership against its own collection.
type AdminUserDirectory struct {
	admins *mongo.Collection
}

// NewAdminUserDirectory binds the admin user collection.
func NewAdminUserDirectory(db *mongo.Database, collection string) *AdminUserDirectory {
	return &AdminUserDirectory{admins: db.Collection(collection)}
}

// IsAdmin reports whether the user appears in the admin collection.
func (d *AdminUserDirectory) IsAdmin(ctx context.Context, userID string) (bool, error) {
	count, err := d.admins.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
