package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	authorizer "github.com/localnerve/authorizer-go"
	"github.com/localnerve/sitebuilder/internal/config"
	"github.com/localnerve/sitebuilder/internal/utils"
)

var (
	authClient *authorizer.AuthorizerClient
	authMu     sync.Mutex
)

// SessionUser is the part of a validated session the service relies on
type SessionUser struct {
	ID string
}

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	authMu.Lock()
	defer authMu.Unlock()
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client once. A failed attempt is
// retried on the next call, so a late-starting Authorizer is picked up.
func InitAuthorizer(ctx context.Context, cfg *config.Config, requestProtocol, requestHost string) error {
	authMu.Lock()
	defer authMu.Unlock()

	if authClient != nil {
		return nil
	}

	// Ping the Authorizer service first
	if err := utils.PingAuthorizer(ctx, cfg.AuthzURL); err != nil {
		return fmt.Errorf("authorizer ping failed: %w", err)
	}

	redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
	log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
		cfg.AuthzURL, cfg.AuthzClientID, redirectURL)

	client, err := authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create authorizer client: %w", err)
	}
	authClient = client

	return nil
}

// ValidateSession validates a session cookie for the given roles
func ValidateSession(cookie string, roles []string) (*SessionUser, error) {
	authMu.Lock()
	client := authClient
	authMu.Unlock()

	if client == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}

	// Check if session is valid
	if res == nil || !res.IsValid || res.User == nil {
		return nil, fmt.Errorf("session is not valid")
	}

	return &SessionUser{ID: res.User.ID}, nil
}
