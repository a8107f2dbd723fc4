package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/paylinkhq/router-core/internal/domain/repositories"
	apierrors "github.com/paylinkhq/router-core/pkg/errors"
)

const defaultSecretKeyPrefix = "whsec_verification"

// Verifier checks an inbound webhook's signature header against a secret
// resolved per (adapter, merchant) from the key-value store, rather than a
// single statically configured secret (spec §4.5). The signing scheme
// mirrors the Stripe-Signature header: HMAC-SHA256 over "<t>.<body>",
// compared in constant time against the hex-decoded v1 value.
type Verifier struct {
	secrets      repositories.KeyValueStore
	secretPrefix string
}

// NewVerifier constructs a Verifier. An empty secretKeyPrefix falls back to
// defaultSecretKeyPrefix.
func NewVerifier(secrets repositories.KeyValueStore, secretKeyPrefix string) *Verifier {
	prefix := secretKeyPrefix
	if prefix == "" {
		prefix = defaultSecretKeyPrefix
	}
	return &Verifier{secrets: secrets, secretPrefix: prefix}
}

func (v *Verifier) secretKey(adapterID, merchantID string) string {
	return fmt.Sprintf("%s_%s_%s", v.secretPrefix, adapterID, merchantID)
}

// Verify parses the signature header, resolves the merchant's webhook
// secret, and rejects unless the body's HMAC matches the v1 signature.
func (v *Verifier) Verify(ctx context.Context, adapterID, merchantID string, body []byte, signatureHeader string) error {
	parsed, err := ParseSignatureHeader(signatureHeader)
	if err != nil {
		return err
	}

	secret, err := v.secrets.GetKey(ctx, v.secretKey(adapterID, merchantID))
	if err != nil {
		return apierrors.NewConnectorError(apierrors.WebhookVerificationSecretNotFound, "no webhook secret configured for merchant", err)
	}

	expected := hmac.New(sha256.New, secret)
	expected.Write([]byte(parsed.Timestamp))
	expected.Write([]byte("."))
	expected.Write(body)

	given, err := hex.DecodeString(parsed.Values["v1"])
	if err != nil {
		return apierrors.NewConnectorError(apierrors.WebhookSourceVerificationFailed, "v1 signature is not valid hex", err)
	}

	if !hmac.Equal(expected.Sum(nil), given) {
		return apierrors.NewConnectorError(apierrors.WebhookSourceVerificationFailed, "signature mismatch", nil)
	}

	return nil
}
