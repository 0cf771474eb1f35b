/**
 * @description
 * Identity provider (Privy) session verification.
 * Validates session JWTs against Privy's JWKS and extracts the user object
 * (DID, email, wallet address, Google profile fields) from claims.
 *
 * @dependencies
 * - github.com/golang-jwt/jwt/v5: JWT parsing
 * - github.com/MicahParks/keyfunc/v2: JWKS fetching and caching
 * - github.com/ethereum/go-ethereum: wallet address validation and EIP-55 display
 *
 * @notes
 * - The provider itself (login modal, session issuance) is an external
 *   collaborator; this package only consumes its tokens.
 * - JWKS keys are cached and refreshed hourly to avoid hammering the endpoint.
 */

package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"

	"github.com/weather-project/webapp/internal/config"
	"github.com/weather-project/webapp/internal/logger"
)

var (
	// ErrNotAuthenticated means no valid session token was presented.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// User is the identity provider's user object as carried in session claims.
// Every field except ID is optional.
type User struct {
	ID            string // Privy DID, e.g. "did:privy:..."
	Email         string
	Wallet        string // EIP-55 checksummed when present
	GoogleName    string
	GooglePicture string
}

// DisplayName picks the best available name for greeting the user.
func (u User) DisplayName() string {
	switch {
	case u.GoogleName != "":
		return u.GoogleName
	case u.Email != "":
		return u.Email
	case u.Wallet != "":
		return ShortWallet(u.Wallet)
	}
	return "Anonymous"
}

// Verifier validates Privy session tokens.
type Verifier struct {
	jwks  *keyfunc.JWKS
	appID string
}

// NewVerifier initializes the JWKS cache from the configured endpoint.
func NewVerifier(cfg *config.Config) (*Verifier, error) {
	if cfg.Identity.JWKSURL == "" {
		logger.Info("Warning: PRIVY_JWKS_URL is empty. Session validation will fail if not mocked.")
		return &Verifier{appID: cfg.Identity.AppID}, nil
	}

	jwks, err := keyfunc.Get(cfg.Identity.JWKSURL, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			logger.Error("JWKS refresh error: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching identity JWKS: %w", err)
	}

	logger.Info("Identity verifier initialized with JWKS")
	return &Verifier{jwks: jwks, appID: cfg.Identity.AppID}, nil
}

// NewVerifierWithJWKS wires a pre-built JWKS, used in tests.
func NewVerifierWithJWKS(jwks *keyfunc.JWKS, appID string) *Verifier {
	return &Verifier{jwks: jwks, appID: appID}
}

// Verify parses and validates a session token, returning the user it names.
func (v *Verifier) Verify(tokenString string) (*User, error) {
	if v.jwks == nil {
		return nil, errors.New("identity verifier not initialized")
	}
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrNotAuthenticated
	}

	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc)
	if err != nil || !token.Valid {
		return nil, ErrNotAuthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	if v.appID != "" {
		aud, _ := claims.GetAudience()
		if !containsAudience(aud, v.appID) {
			return nil, ErrNotAuthenticated
		}
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrNotAuthenticated
	}

	user := &User{
		ID:            sub,
		Email:         stringClaim(claims, "email"),
		GoogleName:    stringClaim(claims, "google_name"),
		GooglePicture: stringClaim(claims, "google_picture"),
	}

	if wallet := stringClaim(claims, "wallet_address"); wallet != "" {
		if common.IsHexAddress(wallet) {
			user.Wallet = common.HexToAddress(wallet).Hex()
		} else {
			user.Wallet = wallet
		}
	}

	return user, nil
}

// ShortWallet abbreviates a wallet address for display: 0x1234...abcd.
func ShortWallet(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

func containsAudience(aud jwt.ClaimStrings, appID string) bool {
	for _, a := range aud {
		if a == appID {
			return true
		}
	}
	return false
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
