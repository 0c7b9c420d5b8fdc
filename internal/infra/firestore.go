// README: Firestore client initialisation from service-account credentials.
package infra

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// NewFirestore creates a Firestore client for projectID. If credsJSON is
// non-empty it is used as the service-account material; otherwise
// application-default credentials apply.
func NewFirestore(ctx context.Context, projectID string, credsJSON []byte) (*firestore.Client, error) {
	opts := []option.ClientOption{}
	if len(credsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(credsJSON))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.NewClient: %w", err)
	}
	return client, nil
}
