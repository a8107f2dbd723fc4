package webhook

import (
	"fmt"
	"strings"

	apierrors "github.com/paylinkhq/router-core/pkg/errors"
)

// ParsedSignatureHeader is the parsed shape of a Stripe-style signature
// header: t=<unix_ts>,v1=<hex_hmac>[,v0=…] (spec §4.5).
type ParsedSignatureHeader struct {
	Timestamp string
	Values    map[string]string
}

// ParseSignatureHeader parses the comma-separated key=value header
// strictly: duplicate keys and empty keys/values are rejected. The source
// this spec was distilled from leaves its own tolerance here unspecified
// (spec §9); this implementation chooses strict.
func ParseSignatureHeader(header string) (*ParsedSignatureHeader, error) {
	if strings.TrimSpace(header) == "" {
		return nil, apierrors.NewConnectorError(apierrors.WebhookSignatureNotFound, "missing signature header", nil)
	}

	pairs := strings.Split(header, ",")
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, apierrors.NewConnectorError(apierrors.WebhookSignatureNotFound, fmt.Sprintf("malformed signature component %q", pair), nil)
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		if key == "" || value == "" {
			return nil, apierrors.NewConnectorError(apierrors.WebhookSignatureNotFound, "empty key or value in signature header", nil)
		}
		if _, duplicate := values[key]; duplicate {
			return nil, apierrors.NewConnectorError(apierrors.WebhookSignatureNotFound, fmt.Sprintf("duplicate signature key %q", key), nil)
		}
		values[key] = value
	}

	timestamp, ok := values["t"]
	if !ok {
		return nil, apierrors.NewConnectorError(apierrors.WebhookSignatureNotFound, "signature header missing t", nil)
	}
	if _, ok := values["v1"]; !ok {
		return nil, apierrors.NewConnectorError(apierrors.WebhookSignatureNotFound, "signature header missing v1", nil)
	}

	return &ParsedSignatureHeader{Timestamp: timestamp, Values: values}, nil
}
