package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/vibhive/pkg/apperror"
)

// notFound maps a missing document onto the NotFound kind for resource and
// passes any other error through.
func notFound(err error, resource string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NotFound(resource)
	}
	return err
}
