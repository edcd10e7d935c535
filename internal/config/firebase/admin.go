package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"

	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/session"
)

// Options selects the Firebase project resources.
type Options struct {
	DatabaseURL     string
	CredentialsFile string
	StorageBucket   string
}

// Clients holds the Admin SDK clients used by the server.
type Clients struct {
	App      *firebase.App
	Database *db.Client
	Auth     *auth.Client
	Storage  *storage.Client
}

// Initialize initializes the Firebase Admin SDK. Without a credentials file the
// application default credentials are used.
func Initialize(ctx context.Context, opts Options) (*Clients, error) {
	logger := logging.GetGlobalLogger()
	logger.Info("Initializing Firebase (database=%s)", opts.DatabaseURL)

	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL:   opts.DatabaseURL,
		StorageBucket: opts.StorageBucket,
	}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	database, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Realtime Database client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	clients := &Clients{App: app, Database: database, Auth: authClient}
	if opts.StorageBucket != "" {
		clients.Storage, err = app.Storage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Firebase Storage client: %w", err)
		}
	}

	logger.Info("Firebase clients initialized")
	return clients, nil
}

// TokenVerifier adapts the Auth client to the session identity.
type TokenVerifier struct {
	Client *auth.Client
}

// Verify checks a Firebase ID token and returns the identity it was issued to.
func (v TokenVerifier) Verify(ctx context.Context, idToken string) (*session.Identity, error) {
	if v.Client == nil {
		return nil, fmt.Errorf("Firebase Auth client not initialized")
	}
	token, err := v.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}
	return IdentityFromClaims(token.UID, token.Claims), nil
}

// IdentityFromClaims builds an identity from a verified token's uid and claims.
func IdentityFromClaims(uid string, claims map[string]interface{}) *session.Identity {
	identity := &session.Identity{UID: uid}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.DisplayName = name
	}
	return identity
}
